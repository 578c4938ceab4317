package attendance

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

// PostgresStore persists attendance in Postgres. A unique constraint on
// (employee_id, date) enforces one record per employee per day.
type PostgresStore struct {
	db PGXQuerier
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("attendance: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = "id, employee_id, to_char(date, 'YYYY-MM-DD'), status, note, created_at, updated_at"

// Mark creates the day's record; a conflicting insert maps to ErrAlreadyMarked.
func (s *PostgresStore) Mark(ctx context.Context, req *MarkRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO attendance (id, employee_id, date, status, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING `+recordColumns,
		uuid.New(), req.EmployeeID, req.Date, req.Status, req.Note)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAlreadyMarked
		}
		return nil, fmt.Errorf("attendance: insert failed: %w", err)
	}
	return rec, nil
}

// List returns records, optionally limited to one date, newest date first.
func (s *PostgresStore) List(ctx context.Context, date string) ([]*Record, error) {
	query := "SELECT " + recordColumns + " FROM attendance ORDER BY date DESC"
	args := []any{}
	if date != "" {
		query = "SELECT " + recordColumns + " FROM attendance WHERE date = $1 ORDER BY date DESC"
		args = append(args, date)
	}
	return s.queryRecords(ctx, query, args...)
}

// ListByEmployee returns an employee's records, newest date first.
func (s *PostgresStore) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*Record, error) {
	return s.queryRecords(ctx,
		"SELECT "+recordColumns+" FROM attendance WHERE employee_id = $1 ORDER BY date DESC",
		employeeID)
}

// Update applies the non-nil fields of req.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Record, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE attendance SET
			status = COALESCE($2, status),
			note = COALESCE($3, note),
			updated_at = now()
		WHERE id = $1
		RETURNING `+recordColumns,
		id, req.Status, req.Note)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("attendance: update failed: %w", err)
	}
	return rec, nil
}

// Delete removes a record.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("attendance: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *PostgresStore) queryRecords(ctx context.Context, query string, args ...any) ([]*Record, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("attendance: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("attendance: scan failed: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendance: list failed: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
