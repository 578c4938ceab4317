package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines the catalog persistence interface.
type Store interface {
	Create(ctx context.Context, req *CreateServiceRequest) (*Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequest) (*Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*Service
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{services: make(map[uuid.UUID]*Service)}
}

func (s *InMemoryStore) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &Service{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		BasePrice:   req.BasePrice,
		Status:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, sub := range req.SubServices {
		svc.SubServices = append(svc.SubServices, SubService{ID: uuid.New(), Name: sub.Name, Price: sub.Price})
	}

	s.mu.Lock()
	s.services[svc.ID] = svc
	s.mu.Unlock()

	copied := cloneService(svc)
	return copied, nil
}

func (s *InMemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return cloneService(svc), nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]*Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, cloneService(svc))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequest) (*Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.Discount != nil {
		svc.Discount = *req.Discount
	}
	if req.BasePrice != nil {
		price := *req.BasePrice
		svc.BasePrice = &price
	}
	if req.Status != nil {
		svc.Status = *req.Status
	}
	if req.SubServices != nil {
		svc.SubServices = nil
		for _, sub := range req.SubServices {
			svc.SubServices = append(svc.SubServices, SubService{ID: uuid.New(), Name: sub.Name, Price: sub.Price})
		}
	}
	svc.UpdatedAt = time.Now().UTC()
	return cloneService(svc), nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(s.services, id)
	return nil
}

func cloneService(svc *Service) *Service {
	copied := *svc
	copied.SubServices = append([]SubService(nil), svc.SubServices...)
	if svc.BasePrice != nil {
		price := *svc.BasePrice
		copied.BasePrice = &price
	}
	return &copied
}
