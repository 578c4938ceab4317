package customers

import (
	"context"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Resolver finds or creates the customer a booking belongs to.
type Resolver struct {
	store  Store
	logger *logging.Logger
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve normalizes the phone and delegates to the store's upsert. At most
// one write happens per call.
func (r *Resolver) Resolve(ctx context.Context, req *ResolveRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	customer, err := r.store.Upsert(ctx, req)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("customer resolved", "customer_id", customer.ID, "phone", customer.Phone)
	return customer, nil
}
