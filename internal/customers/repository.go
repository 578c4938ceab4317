package customers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines the customer persistence interface consumed by the booking
// flow and the search endpoint.
type Store interface {
	// Upsert inserts a customer keyed on normalized phone, or backfills the
	// existing record (name overwritten when different, gender/address/dob
	// only when currently empty). Atomic at the storage layer, so two
	// concurrent bookings for a new phone resolve to one record.
	Upsert(ctx context.Context, req *ResolveRequest) (*Customer, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// ApplyEdit overwrites the non-nil fields of edit. Used by the
	// appointment-update path, which is less conservative than Upsert.
	ApplyEdit(ctx context.Context, id uuid.UUID, edit FieldEdit) (*Customer, error)
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*Customer
	now       func() time.Time
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		customers: make(map[uuid.UUID]*Customer),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upsert mirrors the SQL upsert's backfill semantics.
func (s *InMemoryStore) Upsert(ctx context.Context, req *ResolveRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	phone := NormalizePhone(req.Phone)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Phone != phone {
			continue
		}
		if req.Name != "" && req.Name != c.Name {
			c.Name = req.Name
		}
		if c.Email == "" && req.Email != "" {
			c.Email = req.Email
		}
		if c.Gender == "" && req.Gender != "" {
			c.Gender = req.Gender
		}
		if c.Address == "" && req.Address != "" {
			c.Address = req.Address
		}
		if c.DOB == nil && req.DOB != nil {
			dob := *req.DOB
			c.DOB = &dob
		}
		c.UpdatedAt = s.now()
		copied := *c
		return &copied, nil
	}

	now := s.now()
	c := &Customer{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     phone,
		Gender:    req.Gender,
		DOB:       req.DOB,
		Address:   req.Address,
		Note:      req.Note,
		Source:    req.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.customers[c.ID] = c
	copied := *c
	return &copied, nil
}

// GetByID retrieves a customer by id.
func (s *InMemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

// FindByPhone retrieves a customer by normalized phone.
func (s *InMemoryStore) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	phone = NormalizePhone(phone)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Phone == phone {
			copied := *c
			return &copied, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// ApplyEdit overwrites the supplied fields.
func (s *InMemoryStore) ApplyEdit(ctx context.Context, id uuid.UUID, edit FieldEdit) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	if edit.Name != nil {
		c.Name = *edit.Name
	}
	if edit.Email != nil {
		c.Email = *edit.Email
	}
	if edit.Phone != nil {
		c.Phone = NormalizePhone(*edit.Phone)
	}
	if edit.Gender != nil {
		c.Gender = *edit.Gender
	}
	if edit.DOB != nil {
		dob := *edit.DOB
		c.DOB = &dob
	}
	if edit.Address != nil {
		c.Address = *edit.Address
	}
	if edit.Note != nil {
		c.Note = *edit.Note
	}
	c.UpdatedAt = s.now()
	copied := *c
	return &copied, nil
}
