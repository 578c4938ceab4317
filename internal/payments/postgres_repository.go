package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

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

// PostgresStore persists payments in Postgres. A partial unique index on
// appointment_id for booking-origin rows makes RecordBooking race-safe.
type PostgresStore struct {
	db PGXQuerier
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("payments: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

const paymentColumns = "id, appointment_id, customer_id, amount, payment_mode, origin, date, note, created_at, updated_at"

// RecordBooking inserts the booking payment for an appointment; the
// conflict clause turns a concurrent duplicate into a no-op.
func (s *PostgresStore) RecordBooking(ctx context.Context, appointmentID, customerID uuid.UUID, amount float64, mode string, at time.Time) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO payments (id, appointment_id, customer_id, amount, payment_mode, origin, date)
		VALUES ($1, $2, $3, $4, $5, 'booking', $6)
		ON CONFLICT (appointment_id) WHERE origin = 'booking' DO NOTHING`,
		uuid.New(), appointmentID, customerID, amount, mode, at)
	if err != nil {
		return false, fmt.Errorf("payments: record booking failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Create records a manual payment entry.
func (s *PostgresStore) Create(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO payments (id, customer_id, amount, payment_mode, origin, date, note)
		VALUES ($1, $2, $3, $4, 'manual', $5, $6)
		RETURNING `+paymentColumns,
		uuid.New(), req.CustomerID, req.Amount, req.PaymentMode, date, req.Note)
	p, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("payments: insert failed: %w", err)
	}
	return p, nil
}

// Update applies the non-nil fields of req.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, req *UpdatePaymentRequest) (*Payment, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE payments SET
			amount = COALESCE($2, amount),
			payment_mode = COALESCE($3, payment_mode),
			date = COALESCE($4, date),
			note = COALESCE($5, note),
			updated_at = now()
		WHERE id = $1
		RETURNING `+paymentColumns,
		id, req.Amount, req.PaymentMode, req.Date, req.Note)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("payments: update failed: %w", err)
	}
	return p, nil
}

// List returns all payments, newest payment date first.
func (s *PostgresStore) List(ctx context.Context) ([]*Payment, error) {
	return s.queryPayments(ctx, "SELECT "+paymentColumns+" FROM payments ORDER BY date DESC")
}

// ListByDate returns payments dated within the UTC day containing day.
func (s *PostgresStore) ListByDate(ctx context.Context, day time.Time) ([]*Payment, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE date >= $1 AND date < $2 ORDER BY date DESC",
		start, end)
}

func (s *PostgresStore) queryPayments(ctx context.Context, query string, args ...any) ([]*Payment, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("payments: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("payments: scan failed: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payments: list failed: %w", err)
	}
	return out, nil
}

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	if err := row.Scan(&p.ID, &p.AppointmentID, &p.CustomerID, &p.Amount, &p.PaymentMode,
		&p.Origin, &p.Date, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
