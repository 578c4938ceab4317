package payments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines payment persistence. RecordBooking satisfies the booking
// flow's ledger dependency and must be idempotent per appointment.
type Store interface {
	// RecordBooking writes the booking-generated payment for an appointment
	// unless one already exists. created reports whether this call wrote it.
	RecordBooking(ctx context.Context, appointmentID, customerID uuid.UUID, amount float64, mode string, at time.Time) (created bool, err error)

	Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdatePaymentRequest) (*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
	ListByDate(ctx context.Context, day time.Time) ([]*Payment, error)
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*Payment
	now      func() time.Time
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		payments: make(map[uuid.UUID]*Payment),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordBooking writes at most one booking payment per appointment.
func (s *InMemoryStore) RecordBooking(ctx context.Context, appointmentID, customerID uuid.UUID, amount float64, mode string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.Origin == OriginBooking && p.AppointmentID != nil && *p.AppointmentID == appointmentID {
			return false, nil
		}
	}

	now := s.now()
	apptID := appointmentID
	custID := customerID
	p := &Payment{
		ID:            uuid.New(),
		AppointmentID: &apptID,
		CustomerID:    &custID,
		Amount:        amount,
		PaymentMode:   mode,
		Origin:        OriginBooking,
		Date:          at,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.payments[p.ID] = p
	return true, nil
}

// Create records a manual payment entry.
func (s *InMemoryStore) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	p := &Payment{
		ID:          uuid.New(),
		CustomerID:  req.CustomerID,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Origin:      OriginManual,
		Date:        date,
		Note:        req.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.payments[p.ID] = p
	copied := *p
	return &copied, nil
}

// Update applies the non-nil fields of req.
func (s *InMemoryStore) Update(ctx context.Context, id uuid.UUID, req *UpdatePaymentRequest) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	if req.Amount != nil {
		p.Amount = *req.Amount
	}
	if req.PaymentMode != nil {
		p.PaymentMode = *req.PaymentMode
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	if req.Note != nil {
		p.Note = *req.Note
	}
	p.UpdatedAt = s.now()
	copied := *p
	return &copied, nil
}

// List returns all payments, newest payment date first.
func (s *InMemoryStore) List(ctx context.Context) ([]*Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Payment, 0, len(s.payments))
	for _, p := range s.payments {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ListByDate returns payments dated within the UTC day containing day.
func (s *InMemoryStore) ListByDate(ctx context.Context, day time.Time) ([]*Payment, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Payment
	for _, p := range s.payments {
		if p.Date.Before(start) || !p.Date.Before(end) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
