package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GovindxSharma/bookmyglow/internal/cache"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// GroupedPaymentsCacheKey is where the monthly rollup is cached. Payment
// writers invalidate it so the report never serves stale totals.
const GroupedPaymentsCacheKey = "reports:payments:grouped"

// Handler handles HTTP requests for reports.
type Handler struct {
	repo   *Repository
	cache  *cache.Cache
	logger *logging.Logger
}

// NewHandler creates a reports handler. cache may be nil.
func NewHandler(repo *Repository, c *cache.Cache, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, cache: c, logger: logger}
}

// Routes mounts the report endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/employees/{id}/earnings", h.EmployeeEarnings)
	r.Get("/employees/{id}/performance", h.EmployeePerformance)
	r.Get("/payments/grouped", h.GroupedPayments)
	return r
}

// EmployeeEarnings handles GET /reports/employees/{id}/earnings?date=YYYY-MM-DD.
// Without a date parameter it reports on today.
func (h *Handler) EmployeeEarnings(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			http.Error(w, ErrInvalidWindow.Error(), http.StatusBadRequest)
			return
		}
	}

	earnings, err := h.repo.EmployeeDayEarnings(r.Context(), id, day)
	if err != nil {
		if errors.Is(err, ErrNoEarnings) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to compute earnings", "employee_id", id, "error", err)
		http.Error(w, "failed to compute earnings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(earnings)
}

// EmployeePerformance handles GET /reports/employees/{id}/performance?start=&end=.
func (h *Handler) EmployeePerformance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	start, err1 := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	end, err2 := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err1 != nil || err2 != nil || end.Before(start) {
		http.Error(w, ErrInvalidWindow.Error(), http.StatusBadRequest)
		return
	}

	perf, err := h.repo.EmployeePerformance(r.Context(), id, start, end)
	if err != nil {
		h.logger.Error("failed to compute performance", "employee_id", id, "error", err)
		http.Error(w, "failed to compute performance", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(perf)
}

// GroupedPaymentsResponse is the month-bucketed payment report.
type GroupedPaymentsResponse struct {
	Months []MonthBucket `json:"months"`
}

// GroupedPayments handles GET /reports/payments/grouped. Results are served
// from the cache when warm.
func (h *Handler) GroupedPayments(w http.ResponseWriter, r *http.Request) {
	var resp GroupedPaymentsResponse
	if h.cache.Get(r.Context(), GroupedPaymentsCacheKey, &resp) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		json.NewEncoder(w).Encode(resp)
		return
	}

	months, err := h.repo.GroupedPayments(r.Context())
	if err != nil {
		h.logger.Error("failed to group payments", "error", err)
		http.Error(w, "failed to group payments", http.StatusInternalServerError)
		return
	}

	resp = GroupedPaymentsResponse{Months: months}
	h.cache.Set(r.Context(), GroupedPaymentsCacheKey, resp)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
