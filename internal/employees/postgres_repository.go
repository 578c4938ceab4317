package employees

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
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists employees in Postgres.
type PostgresStore struct {
	db PGXQuerier
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("employees: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

const employeeColumns = "id, name, phone, gender, dob, address, status, created_at, updated_at"

func (s *PostgresStore) Create(ctx context.Context, req *CreateEmployeeRequest) (*Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO employees (id, name, phone, gender, dob, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		ON CONFLICT (phone) DO NOTHING
		RETURNING ` + employeeColumns

	row := s.db.QueryRow(ctx, query, uuid.New(), req.Name, req.Phone, req.Gender, req.DOB, req.Address)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("employees: insert failed: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	row := s.db.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("employees: select failed: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, status *bool) ([]*Employee, error) {
	query := "SELECT " + employeeColumns + " FROM employees"
	var args []any
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("employees: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("employees: scan failed: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, req *UpdateEmployeeRequest) (*Employee, error) {
	query := `
		UPDATE employees SET
			name       = COALESCE($2, name),
			phone      = COALESCE($3, phone),
			gender     = COALESCE($4, gender),
			dob        = COALESCE($5, dob),
			address    = COALESCE($6, address),
			status     = COALESCE($7, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + employeeColumns

	row := s.db.QueryRow(ctx, query, id, req.Name, req.Phone, req.Gender, req.DOB, req.Address, req.Status)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("employees: update failed: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("employees: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Phone,
		&e.Gender,
		&e.DOB,
		&e.Address,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}
