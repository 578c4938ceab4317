package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/GovindxSharma/bookmyglow/internal/api/router"
	"github.com/GovindxSharma/bookmyglow/internal/appointments"
	"github.com/GovindxSharma/bookmyglow/internal/attendance"
	"github.com/GovindxSharma/bookmyglow/internal/auth"
	"github.com/GovindxSharma/bookmyglow/internal/cache"
	"github.com/GovindxSharma/bookmyglow/internal/catalog"
	appconfig "github.com/GovindxSharma/bookmyglow/internal/config"
	"github.com/GovindxSharma/bookmyglow/internal/customers"
	"github.com/GovindxSharma/bookmyglow/internal/employees"
	httpmiddleware "github.com/GovindxSharma/bookmyglow/internal/http/middleware"
	"github.com/GovindxSharma/bookmyglow/internal/observability/metrics"
	"github.com/GovindxSharma/bookmyglow/internal/payments"
	"github.com/GovindxSharma/bookmyglow/internal/reports"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting bookmyglow API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create db pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}

	// Reporting queries run over database/sql.
	reportsDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open reports db", "error", err)
		os.Exit(1)
	}
	defer reportsDB.Close()

	// Optional Redis-backed report cache.
	var reportCache *cache.Cache
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, report cache disabled", "error", err)
		} else {
			reportCache = cache.New(client, cfg.ReportCacheTTL, logger)
		}
	}

	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Stores.
	customerStore := customers.NewPostgresStore(pool)
	employeeStore := employees.NewPostgresStore(pool)
	catalogStore := catalog.NewPostgresStore(pool)
	appointmentStore := appointments.NewPostgresStore(pool)
	var paymentStore payments.Store = payments.NewPostgresStore(pool)
	if reportCache != nil {
		// Drop the cached rollup whenever a payment is written.
		paymentStore = payments.NewInvalidatingStore(paymentStore, reportCache, reports.GroupedPaymentsCacheKey)
	}
	authStore := auth.NewPostgresStore(pool)
	attendanceStore := attendance.NewPostgresStore(pool)

	// Services.
	resolver := customers.NewResolver(customerStore, logger)
	pricing := appointments.NewPricingEngine(catalogStore, employeeStore)
	bookingService := appointments.NewBookingService(
		appointmentStore, resolver, customerStore, pricing, paymentStore, bookingMetrics, logger)
	authService := auth.NewService(authStore, cfg.JWTSecret, cfg.JWTExpiry, logger)
	reportsRepo := reports.NewRepository(reportsDB)

	routerCfg := &router.Config{
		Logger:              logger,
		AuthHandler:         auth.NewHandler(authService, logger.Component("auth")),
		AppointmentsHandler: appointments.NewHandler(bookingService, customerStore, logger.Component("appointments")),
		CustomersHandler:    customers.NewHandler(customerStore, logger.Component("customers")),
		EmployeesHandler:    employees.NewHandler(employeeStore, logger.Component("employees")),
		CatalogHandler:      catalog.NewHandler(catalogStore, logger.Component("catalog")),
		PaymentsHandler:     payments.NewHandler(paymentStore, logger.Component("payments")),
		ReportsHandler:      reports.NewHandler(reportsRepo, reportCache, logger.Component("reports")),
		AttendanceHandler:   attendance.NewHandler(attendanceStore, logger.Component("attendance")),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		JWTSecret:           cfg.JWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimiter:         httpmiddleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
