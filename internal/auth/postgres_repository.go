package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXQuerier is the subset of pgxpool.Pool the repository needs.
type PGXQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists staff accounts in Postgres.
type PostgresStore struct {
	db PGXQuerier
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("auth: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create stores a new account; a duplicate email maps to ErrDuplicateEmail.
func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, lower($3), $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("auth: insert user failed: %w", err)
	}
	return nil
}

// FindByEmail retrieves an account by email.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, COALESCE(token, ''), created_at, updated_at
		FROM users WHERE email = lower($1)`, email)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Token, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: select user failed: %w", err)
	}
	return &u, nil
}

// Update applies a partial edit; a duplicate email maps to ErrDuplicateEmail.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, upd *UserUpdate) (*User, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE users SET
			name          = COALESCE($2, name),
			email         = COALESCE(lower($3), email),
			role          = COALESCE($4, role),
			password_hash = COALESCE($5, password_hash),
			updated_at    = now()
		WHERE id = $1
		RETURNING id, name, email, password_hash, role, COALESCE(token, ''), created_at, updated_at`,
		id, upd.Name, upd.Email, upd.Role, upd.PasswordHash)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Token, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("auth: update user failed: %w", err)
	}
	return &u, nil
}

// Delete removes an account.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("auth: delete user failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetToken stores or clears the account's active session token.
func (s *PostgresStore) SetToken(ctx context.Context, id uuid.UUID, token string) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE users SET token = NULLIF($2, ''), updated_at = now() WHERE id = $1", id, token)
	if err != nil {
		return fmt.Errorf("auth: set token failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
