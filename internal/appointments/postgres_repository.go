package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXPool is the subset of pgxpool.Pool the repository needs.
type PGXPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists appointments and their service lines in Postgres.
type PostgresStore struct {
	db PGXPool
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXPool) *PostgresStore {
	return &PostgresStore{db: db}
}

const appointmentColumns = "id, customer_id, date, appointment_time, confirmation_status, rating, feedback, amount, payment_status, payment_mode, note, source, created_at, updated_at"

// Create writes the appointment and its lines in one transaction.
func (s *PostgresStore) Create(ctx context.Context, a *Appointment) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("appointments: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO appointments (id, customer_id, date, appointment_time, confirmation_status,
			rating, feedback, amount, payment_status, payment_mode, note, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ID, a.CustomerID, a.Date, a.AppointmentTime, a.ConfirmationStatus,
		a.Rating, a.Feedback, a.Amount, a.PaymentStatus, a.PaymentMode, a.Note, a.Source,
		a.CreatedAt, a.UpdatedAt); err != nil {
		return fmt.Errorf("appointments: insert failed: %w", err)
	}

	if err := insertLines(ctx, tx, a.ID, a.Services); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("appointments: commit failed: %w", err)
	}
	return nil
}

// GetByID loads an appointment with its service lines.
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := s.db.QueryRow(ctx, "SELECT "+appointmentColumns+" FROM appointments WHERE id = $1", id)
	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	if err := s.loadLines(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update overwrites the appointment row and replaces its lines.
func (s *PostgresStore) Update(ctx context.Context, a *Appointment) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("appointments: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE appointments SET date = $2, appointment_time = $3, confirmation_status = $4,
			rating = $5, feedback = $6, amount = $7, payment_status = $8, payment_mode = $9,
			note = $10, source = $11, updated_at = $12
		WHERE id = $1`,
		a.ID, a.Date, a.AppointmentTime, a.ConfirmationStatus,
		a.Rating, a.Feedback, a.Amount, a.PaymentStatus, a.PaymentMode,
		a.Note, a.Source, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("appointments: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}

	if _, err := tx.Exec(ctx, "DELETE FROM appointment_services WHERE appointment_id = $1", a.ID); err != nil {
		return fmt.Errorf("appointments: clear lines failed: %w", err)
	}
	if err := insertLines(ctx, tx, a.ID, a.Services); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("appointments: commit failed: %w", err)
	}
	return nil
}

// Delete removes the appointment; lines go with it via ON DELETE CASCADE.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM appointments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("appointments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// List returns appointments matching the filter, newest first by the
// filter's reference timestamp.
func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]*Appointment, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Confirmed != nil {
		conds = append(conds, "confirmation_status = "+arg(*filter.Confirmed))
	}
	if filter.CreatedWindow != nil {
		conds = append(conds, "created_at >= "+arg(filter.CreatedWindow.Start))
		conds = append(conds, "created_at <= "+arg(filter.CreatedWindow.End))
	}
	if filter.DateWindow != nil {
		conds = append(conds, "date >= "+arg(filter.DateWindow.Start))
		conds = append(conds, "date <= "+arg(filter.DateWindow.End))
	}

	query := "SELECT " + appointmentColumns + " FROM appointments"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	orderBy := "created_at"
	if filter.DateWindow != nil && filter.CreatedWindow == nil {
		orderBy = "date"
	}
	query += " ORDER BY " + orderBy + " DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}

	for _, a := range out {
		if err := s.loadLines(ctx, a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostgresStore) loadLines(ctx context.Context, a *Appointment) error {
	rows, err := s.db.Query(ctx,
		"SELECT service_id, sub_service_id, employee_id, price, duration FROM appointment_services WHERE appointment_id = $1 ORDER BY position",
		a.ID)
	if err != nil {
		return fmt.Errorf("appointments: load lines failed: %w", err)
	}
	defer rows.Close()

	a.Services = nil
	for rows.Next() {
		var line ServiceLine
		if err := rows.Scan(&line.ServiceID, &line.SubServiceID, &line.EmployeeID, &line.Price, &line.Duration); err != nil {
			return fmt.Errorf("appointments: scan line failed: %w", err)
		}
		a.Services = append(a.Services, line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("appointments: load lines failed: %w", err)
	}
	return nil
}

func insertLines(ctx context.Context, tx pgx.Tx, appointmentID uuid.UUID, lines []ServiceLine) error {
	for i, line := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO appointment_services (appointment_id, position, service_id, sub_service_id, employee_id, price, duration)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			appointmentID, i, line.ServiceID, line.SubServiceID, line.EmployeeID, line.Price, line.Duration); err != nil {
			return fmt.Errorf("appointments: insert line failed: %w", err)
		}
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(&a.ID, &a.CustomerID, &a.Date, &a.AppointmentTime, &a.ConfirmationStatus,
		&a.Rating, &a.Feedback, &a.Amount, &a.PaymentStatus, &a.PaymentMode, &a.Note, &a.Source,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
