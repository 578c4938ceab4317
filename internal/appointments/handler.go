package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/internal/catalog"
	"github.com/GovindxSharma/bookmyglow/internal/customers"
	"github.com/GovindxSharma/bookmyglow/internal/employees"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Handler handles HTTP requests for appointments.
type Handler struct {
	service  *BookingService
	contacts customers.Store
	logger   *logging.Logger
}

// NewHandler creates an appointments handler. contacts enriches listing
// responses with the linked customer record.
func NewHandler(service *BookingService, contacts customers.Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, contacts: contacts, logger: logger}
}

// Routes mounts the appointment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// Create handles POST /appointments requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	confirmation, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "failed to create appointment")
		return
	}

	writeJSON(w, http.StatusCreated, confirmation)
}

// AppointmentView is a listing entry enriched with the linked customer.
type AppointmentView struct {
	*Appointment
	Customer *customers.Customer `json:"customer,omitempty"`
}

// ListAppointmentsResponse is the response for listing appointments.
type ListAppointmentsResponse struct {
	Count        int                `json:"count"`
	Appointments []*AppointmentView `json:"appointments"`
}

// List handles GET /appointments. Supported query parameters:
// range=today|week|month (creation-time window), date_start/date_end
// (scheduled-date window, YYYY-MM-DD) and for_notification=true|false
// (confirmation filter).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter ListFilter

	if raw := q.Get("for_notification"); raw != "" {
		confirmed := raw != "true"
		filter.Confirmed = &confirmed
	}

	if keyword := q.Get("range"); keyword != "" {
		win, err := KeywordWindow(keyword, h.service.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter.CreatedWindow = &win
	} else if q.Get("date_start") != "" || q.Get("date_end") != "" {
		start, err1 := time.Parse("2006-01-02", q.Get("date_start"))
		end, err2 := time.Parse("2006-01-02", q.Get("date_end"))
		if err1 != nil || err2 != nil {
			http.Error(w, ErrInvalidRange.Error(), http.StatusBadRequest)
			return
		}
		win := RangeWindow(start, end)
		filter.DateWindow = &win
	}

	appts, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	views := make([]*AppointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, h.buildView(r, a))
	}
	writeJSON(w, http.StatusOK, ListAppointmentsResponse{Count: len(views), Appointments: views})
}

// Get handles GET /appointments/{id} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "failed to fetch appointment")
		return
	}
	writeJSON(w, http.StatusOK, h.buildView(r, appt))
}

// Update handles PUT /appointments/{id} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	var req UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "failed to update appointment")
		return
	}
	writeJSON(w, http.StatusOK, h.buildView(r, appt))
}

// Delete handles DELETE /appointments/{id} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to delete appointment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted"})
}

func (h *Handler) buildView(r *http.Request, a *Appointment) *AppointmentView {
	view := &AppointmentView{Appointment: a}
	if h.contacts != nil {
		customer, err := h.contacts.GetByID(r.Context(), a.CustomerID)
		if err != nil {
			h.logger.Warn("customer lookup failed", "appointment_id", a.ID, "customer_id", a.CustomerID, "error", err)
		} else {
			view.Customer = customer
		}
	}
	return view
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrEmployeeUnassigned),
		errors.Is(err, ErrInvalidRange),
		errors.Is(err, customers.ErrMissingName),
		errors.Is(err, customers.ErrMissingPhone):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, employees.ErrEmployeeNotFound),
		errors.Is(err, customers.ErrCustomerNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error(fallback, "error", err)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
