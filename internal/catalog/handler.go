package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Handler handles HTTP requests for the service catalog.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a catalog handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes mounts the service catalog endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

// Create handles POST /services requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	service, err := h.store.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingName), errors.Is(err, ErrMissingSubServices):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create service", "error", err)
			http.Error(w, "failed to create service", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("service created", "id", service.ID, "name", service.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(service)
}

// List handles GET /services requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", "error", err)
		http.Error(w, "failed to list services", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

// Get handles GET /services/{id} requests.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	service, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load service", "error", err, "id", id)
		http.Error(w, "failed to load service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// Update handles PUT /services/{id} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	var req UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	service, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update service", "error", err, "id", id)
		http.Error(w, "failed to update service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// Delete handles DELETE /services/{id} requests.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid service id", http.StatusBadRequest)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete service", "error", err, "id", id)
		http.Error(w, "failed to delete service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "service deleted"})
}
