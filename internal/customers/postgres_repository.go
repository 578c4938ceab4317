package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXQuerier is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type PGXQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists customers in Postgres.
type PostgresStore struct {
	db PGXQuerier
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("customers: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXQuerier) *PostgresStore {
	return &PostgresStore{db: db}
}

const customerColumns = "id, name, email, phone, gender, dob, address, note, source, created_at, updated_at"

// Upsert inserts or backfills a customer keyed on phone. The conflict clause
// encodes the backfill rules: name follows the request, email/gender/address/
// dob only fill empty slots.
func (s *PostgresStore) Upsert(ctx context.Context, req *ResolveRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO customers (id, name, email, phone, gender, dob, address, note, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (phone) DO UPDATE SET
			name       = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE customers.name END,
			email      = CASE WHEN customers.email = '' THEN EXCLUDED.email ELSE customers.email END,
			gender     = CASE WHEN customers.gender = '' THEN EXCLUDED.gender ELSE customers.gender END,
			address    = CASE WHEN customers.address = '' THEN EXCLUDED.address ELSE customers.address END,
			dob        = COALESCE(customers.dob, EXCLUDED.dob),
			updated_at = now()
		RETURNING ` + customerColumns

	row := s.db.QueryRow(ctx, query,
		uuid.New(),
		req.Name,
		req.Email,
		NormalizePhone(req.Phone),
		req.Gender,
		req.DOB,
		req.Address,
		req.Note,
		req.Source,
	)
	c, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("customers: upsert failed: %w", err)
	}
	return c, nil
}

// GetByID fetches a customer by id.
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	row := s.db.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customers: select by id failed: %w", err)
	}
	return c, nil
}

// FindByPhone fetches a customer by normalized phone.
func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	row := s.db.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE phone = $1", NormalizePhone(phone))
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customers: select by phone failed: %w", err)
	}
	return c, nil
}

// ApplyEdit overwrites the non-nil fields of edit.
func (s *PostgresStore) ApplyEdit(ctx context.Context, id uuid.UUID, edit FieldEdit) (*Customer, error) {
	var phone *string
	if edit.Phone != nil {
		normalized := NormalizePhone(*edit.Phone)
		phone = &normalized
	}

	query := `
		UPDATE customers SET
			name       = COALESCE($2, name),
			email      = COALESCE($3, email),
			phone      = COALESCE($4, phone),
			gender     = COALESCE($5, gender),
			dob        = COALESCE($6, dob),
			address    = COALESCE($7, address),
			note       = COALESCE($8, note),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + customerColumns

	row := s.db.QueryRow(ctx, query, id, edit.Name, edit.Email, phone, edit.Gender, edit.DOB, edit.Address, edit.Note)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customers: update failed: %w", err)
	}
	return c, nil
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Gender,
		&c.DOB,
		&c.Address,
		&c.Note,
		&c.Source,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
