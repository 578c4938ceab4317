package employees

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Handler handles HTTP requests for employees.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates an employees handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes mounts the employee CRUD endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// Create handles POST /employees requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	employee, err := h.store.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrDuplicatePhone):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create employee", "error", err)
			http.Error(w, "failed to create employee", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("employee created", "id", employee.ID, "name", employee.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

// ListEmployeesResponse is the response for listing employees.
type ListEmployeesResponse struct {
	Count     int         `json:"count"`
	Employees []*Employee `json:"employees"`
}

// List handles GET /employees requests with an optional status filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var status *bool
	if raw := r.URL.Query().Get("status"); raw != "" {
		active := raw == "true"
		status = &active
	}

	employees, err := h.store.List(r.Context(), status)
	if err != nil {
		h.logger.Error("failed to list employees", "error", err)
		http.Error(w, "failed to list employees", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListEmployeesResponse{Count: len(employees), Employees: employees})
}

// Get handles GET /employees/{id} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	employee, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load employee", "error", err, "id", id)
		http.Error(w, "failed to load employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

// Update handles PUT /employees/{id} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	var req UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	employee, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update employee", "error", err, "id", id)
		http.Error(w, "failed to update employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

// Delete handles DELETE /employees/{id} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			http.Error(w, "employee not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete employee", "error", err, "id", id)
		http.Error(w, "failed to delete employee", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "employee deleted"})
}
