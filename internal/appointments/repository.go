package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows and orders an appointment listing. CreatedWindow
// filters on creation time, DateWindow on the scheduled date; results are
// sorted descending by whichever timestamp the filter references
// (creation time by default).
type ListFilter struct {
	Confirmed     *bool
	CreatedWindow *Window
	DateWindow    *Window
}

// Store defines appointment persistence.
type Store interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]*Appointment, error)
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]*Appointment
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{appointments: make(map[uuid.UUID]*Appointment)}
}

func cloneAppointment(a *Appointment) *Appointment {
	copied := *a
	copied.Services = make([]ServiceLine, len(a.Services))
	copy(copied.Services, a.Services)
	return &copied
}

// Create stores a new appointment.
func (s *InMemoryStore) Create(ctx context.Context, a *Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[a.ID] = cloneAppointment(a)
	return nil
}

// GetByID retrieves an appointment by id.
func (s *InMemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

// Update overwrites an existing appointment.
func (s *InMemoryStore) Update(ctx context.Context, a *Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[a.ID]; !ok {
		return ErrAppointmentNotFound
	}
	s.appointments[a.ID] = cloneAppointment(a)
	return nil
}

// Delete removes an appointment.
func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(s.appointments, id)
	return nil
}

// List returns appointments matching the filter, newest first.
func (s *InMemoryStore) List(ctx context.Context, filter ListFilter) ([]*Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Appointment
	for _, a := range s.appointments {
		if filter.Confirmed != nil && a.ConfirmationStatus != *filter.Confirmed {
			continue
		}
		if filter.CreatedWindow != nil && !filter.CreatedWindow.Contains(a.CreatedAt) {
			continue
		}
		if filter.DateWindow != nil && !filter.DateWindow.Contains(a.Date) {
			continue
		}
		out = append(out, cloneAppointment(a))
	}

	ref := func(a *Appointment) time.Time { return a.CreatedAt }
	if filter.DateWindow != nil && filter.CreatedWindow == nil {
		ref = func(a *Appointment) time.Time { return a.Date }
	}
	sort.Slice(out, func(i, j int) bool { return ref(out[i]).After(ref(out[j])) })
	return out, nil
}
