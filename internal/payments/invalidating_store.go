package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportCache is the slice of the report cache payment writes need to drop.
type ReportCache interface {
	Invalidate(ctx context.Context, keys ...string)
}

// InvalidatingStore wraps a Store and drops the given cached report keys
// after every successful write. Without it the grouped payments report
// serves stale totals until the cache TTL runs out.
type InvalidatingStore struct {
	Store
	cache ReportCache
	keys  []string
}

// NewInvalidatingStore decorates store so writes invalidate keys.
func NewInvalidatingStore(store Store, cache ReportCache, keys ...string) *InvalidatingStore {
	return &InvalidatingStore{Store: store, cache: cache, keys: keys}
}

func (s *InvalidatingStore) RecordBooking(ctx context.Context, appointmentID, customerID uuid.UUID, amount float64, mode string, at time.Time) (bool, error) {
	created, err := s.Store.RecordBooking(ctx, appointmentID, customerID, amount, mode, at)
	if err == nil && created {
		s.cache.Invalidate(ctx, s.keys...)
	}
	return created, err
}

func (s *InvalidatingStore) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	p, err := s.Store.Create(ctx, req)
	if err == nil {
		s.cache.Invalidate(ctx, s.keys...)
	}
	return p, err
}

func (s *InvalidatingStore) Update(ctx context.Context, id uuid.UUID, req *UpdatePaymentRequest) (*Payment, error) {
	p, err := s.Store.Update(ctx, id, req)
	if err == nil {
		s.cache.Invalidate(ctx, s.keys...)
	}
	return p, err
}
