package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store defines staff-account persistence.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	SetToken(ctx context.Context, id uuid.UUID, token string) error
	Update(ctx context.Context, id uuid.UUID, upd *UserUpdate) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryStore is a map-backed Store used in tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[uuid.UUID]*User)}
}

// Create stores a new account, rejecting duplicate emails.
func (s *InMemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicateEmail
		}
	}
	copied := *u
	s.users[u.ID] = &copied
	return nil
}

// FindByEmail retrieves an account by email, case-insensitively.
func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

// Update applies a partial edit to an account.
func (s *InMemoryStore) Update(ctx context.Context, id uuid.UUID, upd *UserUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if upd.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && strings.EqualFold(other.Email, *upd.Email) {
				return nil, ErrDuplicateEmail
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	copied := *u
	return &copied, nil
}

// Delete removes an account.
func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// SetToken stores or clears the account's active session token.
func (s *InMemoryStore) SetToken(ctx context.Context, id uuid.UUID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Token = token
	u.UpdatedAt = time.Now().UTC()
	return nil
}
