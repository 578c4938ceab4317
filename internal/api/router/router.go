package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/GovindxSharma/bookmyglow/internal/appointments"
	"github.com/GovindxSharma/bookmyglow/internal/attendance"
	"github.com/GovindxSharma/bookmyglow/internal/auth"
	"github.com/GovindxSharma/bookmyglow/internal/catalog"
	"github.com/GovindxSharma/bookmyglow/internal/customers"
	"github.com/GovindxSharma/bookmyglow/internal/employees"
	httpmiddleware "github.com/GovindxSharma/bookmyglow/internal/http/middleware"
	"github.com/GovindxSharma/bookmyglow/internal/payments"
	"github.com/GovindxSharma/bookmyglow/internal/reports"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Config holds router configuration. Nil handlers leave their routes
// unmounted.
type Config struct {
	Logger *logging.Logger

	AuthHandler         *auth.Handler
	AppointmentsHandler *appointments.Handler
	CustomersHandler    *customers.Handler
	EmployeesHandler    *employees.Handler
	CatalogHandler      *catalog.Handler
	PaymentsHandler     *payments.Handler
	ReportsHandler      *reports.Handler
	AttendanceHandler   *attendance.Handler

	MetricsHandler http.Handler

	// JWTSecret enables authentication on the staff surface. Booking
	// creation stays public so the online widget can reach it.
	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimiter        *httpmiddleware.RateLimiter
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.AuthHandler != nil {
			public.Mount("/auth", cfg.AuthHandler.PublicRoutes())
		}
		if cfg.AppointmentsHandler != nil {
			// Online bookings come in unauthenticated.
			public.Post("/appointments", cfg.AppointmentsHandler.Create)
		}
	})

	// Staff endpoints.
	r.Group(func(staff chi.Router) {
		if cfg.JWTSecret != "" {
			staff.Use(httpmiddleware.AuthJWT(cfg.JWTSecret))
		}
		if cfg.AuthHandler != nil {
			staff.Post("/auth/logout", cfg.AuthHandler.Logout)
			staff.Put("/auth/{id}", cfg.AuthHandler.UpdateUser)
			staff.With(httpmiddleware.RequireRole("admin", "super_admin")).
				Delete("/auth/{id}", cfg.AuthHandler.DeleteUser)
		}
		if cfg.AppointmentsHandler != nil {
			staff.Get("/appointments", cfg.AppointmentsHandler.List)
			staff.Get("/appointments/{id}", cfg.AppointmentsHandler.Get)
			staff.Put("/appointments/{id}", cfg.AppointmentsHandler.Update)
			staff.Delete("/appointments/{id}", cfg.AppointmentsHandler.Delete)
		}
		if cfg.CustomersHandler != nil {
			staff.Get("/customers/search", cfg.CustomersHandler.SearchByPhone)
		}
		if cfg.EmployeesHandler != nil {
			staff.Mount("/employees", cfg.EmployeesHandler.Routes())
		}
		if cfg.CatalogHandler != nil {
			staff.Mount("/services", cfg.CatalogHandler.Routes())
		}
		if cfg.PaymentsHandler != nil {
			staff.Mount("/payments", cfg.PaymentsHandler.Routes())
		}
		if cfg.ReportsHandler != nil {
			staff.Mount("/reports", cfg.ReportsHandler.Routes())
		}
		if cfg.AttendanceHandler != nil {
			staff.Mount("/attendance", cfg.AttendanceHandler.Routes())
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
