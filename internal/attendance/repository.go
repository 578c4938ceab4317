package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines attendance persistence. At most one record exists per
// employee and date.
type Store interface {
	Mark(ctx context.Context, req *MarkRequest) (*Record, error)
	List(ctx context.Context, date string) ([]*Record, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Record, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	now     func() time.Time
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[uuid.UUID]*Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Mark creates the day's record for an employee, rejecting duplicates.
func (s *InMemoryStore) Mark(ctx context.Context, req *MarkRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.EmployeeID == req.EmployeeID && rec.Date == req.Date {
			return nil, ErrAlreadyMarked
		}
	}

	now := s.now()
	rec := &Record{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
		Note:       req.Note,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.records[rec.ID] = rec
	copied := *rec
	return &copied, nil
}

// List returns records, optionally limited to one date, newest date first.
func (s *InMemoryStore) List(ctx context.Context, date string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, rec := range s.records {
		if date != "" && rec.Date != date {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// ListByEmployee returns an employee's records, newest date first.
func (s *InMemoryStore) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, rec := range s.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Update applies the non-nil fields of req.
func (s *InMemoryStore) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	if req.Status != nil {
		rec.Status = *req.Status
	}
	if req.Note != nil {
		rec.Note = *req.Note
	}
	rec.UpdatedAt = s.now()
	copied := *rec
	return &copied, nil
}

// Delete removes a record.
func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.records, id)
	return nil
}
