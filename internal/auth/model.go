package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account that can sign in to the backend.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the request body for creating a staff account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks required registration fields.
func (r *RegisterRequest) Validate() error {
	if r.Name == "" || r.Email == "" || r.Password == "" {
		return ErrMissingFields
	}
	return nil
}

// UpdateUserRequest carries partial account edits; nil fields are untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// UserUpdate is the persisted form of an account edit, with the password
// already hashed.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	PasswordHash *string
}

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the signed-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
