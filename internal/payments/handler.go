package payments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Handler handles HTTP requests for manual payment entries.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a payments handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes mounts the payment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/date/{date}", h.ListByDate)
	r.Put("/{id}", h.Update)
	return r
}

// Create handles POST /payments requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.store.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create payment", "error", err)
		http.Error(w, "failed to create payment", http.StatusInternalServerError)
		return
	}

	h.logger.Info("payment recorded", "id", payment.ID, "amount", payment.Amount, "mode", payment.PaymentMode)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

// ListPaymentsResponse is the response for listing payments.
type ListPaymentsResponse struct {
	Count    int        `json:"count"`
	Payments []*Payment `json:"payments"`
}

// List handles GET /payments requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list payments", "error", err)
		http.Error(w, "failed to list payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListPaymentsResponse{Count: len(payments), Payments: payments})
}

// ListByDate handles GET /payments/date/{date} requests (YYYY-MM-DD).
func (h *Handler) ListByDate(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	payments, err := h.store.ListByDate(r.Context(), day)
	if err != nil {
		h.logger.Error("failed to list payments by date", "error", err)
		http.Error(w, "failed to list payments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListPaymentsResponse{Count: len(payments), Payments: payments})
}

// Update handles PUT /payments/{id} requests.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)
		return
	}

	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update payment", "error", err)
		http.Error(w, "failed to update payment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}
