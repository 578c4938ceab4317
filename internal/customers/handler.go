package customers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Handler serves the customer lookup endpoint.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a customers handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// SearchByPhone handles GET /appointments/customer/search?phone= requests.
func (h *Handler) SearchByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "phone number is required", http.StatusBadRequest)
		return
	}

	customer, err := h.store.FindByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			http.Error(w, "no existing customer found", http.StatusNotFound)
			return
		}
		h.logger.Error("customer search failed", "error", err)
		http.Error(w, "failed to search customer", http.StatusInternalServerError)
		return
	}

	// Receptionists poll this while typing; results must never be cached.
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customer)
}
