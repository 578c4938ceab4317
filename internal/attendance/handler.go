package attendance

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Handler handles HTTP requests for attendance.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates an attendance handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes mounts the attendance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Mark)
	r.Get("/", h.List)
	r.Get("/employee/{id}", h.ListByEmployee)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// Mark handles POST /attendance requests.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	var req MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.store.Mark(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidDate), errors.Is(err, ErrAlreadyMarked):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to mark attendance", "error", err)
			http.Error(w, "failed to mark attendance", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("attendance marked", "employee_id", rec.EmployeeID, "date", rec.Date, "status", rec.Status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// ListAttendanceResponse is the response for listing attendance records.
type ListAttendanceResponse struct {
	Count   int       `json:"count"`
	Records []*Record `json:"records"`
}

// List handles GET /attendance requests with an optional date filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Error("failed to list attendance", "error", err)
		http.Error(w, "failed to list attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListAttendanceResponse{Count: len(records), Records: records})
}

// ListByEmployee handles GET /attendance/employee/{id} requests.
func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	records, err := h.store.ListByEmployee(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list attendance", "employee_id", id, "error", err)
		http.Error(w, "failed to list attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListAttendanceResponse{Count: len(records), Records: records})
}

// Update handles PUT /attendance/{id} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update attendance", "error", err)
		http.Error(w, "failed to update attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// Delete handles DELETE /attendance/{id} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete attendance", "error", err)
		http.Error(w, "failed to delete attendance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "attendance record deleted"})
}
