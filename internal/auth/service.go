package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GovindxSharma/bookmyglow/internal/http/middleware"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

// Service implements registration and session handling for staff accounts.
type Service struct {
	store     Store
	jwtSecret string
	jwtExpiry time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

// NewService creates an auth service. expiry is the issued token lifetime.
func NewService(store Store, jwtSecret string, jwtExpiry time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if jwtExpiry <= 0 {
		jwtExpiry = 7 * 24 * time.Hour
	}
	return &Service{
		store:     store,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a staff account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password failed: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	now := s.now()
	u := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("staff account created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}

// Login verifies credentials and issues a signed JWT. The token is also
// stored on the account so logout can revoke the session.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := middleware.StaffClaims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("auth: sign token failed: %w", err)
	}

	if err := s.store.SetToken(ctx, u.ID, token); err != nil {
		return nil, err
	}

	s.logger.Info("staff signed in", "user_id", u.ID, "email", u.Email)
	return &LoginResponse{Token: token, User: u}, nil
}

// UpdateUser applies a partial account edit, hashing the password when one
// is supplied.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	upd := &UserUpdate{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password failed: %w", err)
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}

	u, err := s.store.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info("staff account updated", "user_id", id)
	return u, nil
}

// DeleteUser removes a staff account.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("staff account deleted", "user_id", id)
	return nil
}

// Logout clears the stored session token for the user.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.SetToken(ctx, userID, ""); err != nil {
		return err
	}
	s.logger.Info("staff signed out", "user_id", userID)
	return nil
}
