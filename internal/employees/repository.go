package employees

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines the employee persistence interface.
type Store interface {
	Create(ctx context.Context, req *CreateEmployeeRequest) (*Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context, status *bool) ([]*Employee, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateEmployeeRequest) (*Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu        sync.RWMutex
	employees map[uuid.UUID]*Employee
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{employees: make(map[uuid.UUID]*Employee)}
}

func (s *InMemoryStore) Create(ctx context.Context, req *CreateEmployeeRequest) (*Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.employees {
		if e.Phone == req.Phone {
			return nil, ErrDuplicatePhone
		}
	}

	now := time.Now().UTC()
	e := &Employee{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Gender:    req.Gender,
		DOB:       req.DOB,
		Address:   req.Address,
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.employees[e.ID] = e
	copied := *e
	return &copied, nil
}

func (s *InMemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

func (s *InMemoryStore) List(ctx context.Context, status *bool) ([]*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if status != nil && e.Status != *status {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(ctx context.Context, id uuid.UUID, req *UpdateEmployeeRequest) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Gender != nil {
		e.Gender = *req.Gender
	}
	if req.DOB != nil {
		dob := *req.DOB
		e.DOB = &dob
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	e.UpdatedAt = time.Now().UTC()
	copied := *e
	return &copied, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return ErrEmployeeNotFound
	}
	delete(s.employees, id)
	return nil
}
