package catalog

import (
	"context"
	"errors"
	"fmt"

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

// PostgresStore persists the service catalog in Postgres.
type PostgresStore struct {
	db PGXPool
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for tests.
func NewPostgresStoreWithDB(db PGXPool) *PostgresStore {
	return &PostgresStore{db: db}
}

const serviceColumns = "id, name, description, duration, discount, base_price, status, created_at, updated_at"

func (s *PostgresStore) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO services (id, name, description, duration, base_price, status)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING `+serviceColumns,
		uuid.New(), req.Name, req.Description, req.Duration, req.BasePrice)
	svc, err := scanService(row)
	if err != nil {
		return nil, fmt.Errorf("catalog: insert service failed: %w", err)
	}

	for _, sub := range req.SubServices {
		item := SubService{ID: uuid.New(), Name: sub.Name, Price: sub.Price}
		if _, err := tx.Exec(ctx,
			"INSERT INTO sub_services (id, service_id, name, price) VALUES ($1, $2, $3, $4)",
			item.ID, svc.ID, item.Name, item.Price); err != nil {
			return nil, fmt.Errorf("catalog: insert sub-service failed: %w", err)
		}
		svc.SubServices = append(svc.SubServices, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("catalog: commit failed: %w", err)
	}
	return svc, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	row := s.db.QueryRow(ctx, "SELECT "+serviceColumns+" FROM services WHERE id = $1", id)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: select failed: %w", err)
	}
	if err := s.loadSubServices(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Service, error) {
	rows, err := s.db.Query(ctx, "SELECT "+serviceColumns+" FROM services ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("catalog: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan failed: %w", err)
		}
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list failed: %w", err)
	}

	for _, svc := range out {
		if err := s.loadSubServices(ctx, svc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, req *UpdateServiceRequest) (*Service, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE services SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			duration    = COALESCE($4, duration),
			discount    = COALESCE($5, discount),
			base_price  = COALESCE($6, base_price),
			status      = COALESCE($7, status),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+serviceColumns,
		id, req.Name, req.Description, req.Duration, req.Discount, req.BasePrice, req.Status)
	svc, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("catalog: update failed: %w", err)
	}

	if req.SubServices != nil {
		if _, err := tx.Exec(ctx, "DELETE FROM sub_services WHERE service_id = $1", id); err != nil {
			return nil, fmt.Errorf("catalog: replace sub-services failed: %w", err)
		}
		for _, sub := range req.SubServices {
			item := SubService{ID: uuid.New(), Name: sub.Name, Price: sub.Price}
			if _, err := tx.Exec(ctx,
				"INSERT INTO sub_services (id, service_id, name, price) VALUES ($1, $2, $3, $4)",
				item.ID, id, item.Name, item.Price); err != nil {
				return nil, fmt.Errorf("catalog: insert sub-service failed: %w", err)
			}
			svc.SubServices = append(svc.SubServices, item)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("catalog: commit failed: %w", err)
		}
		return svc, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("catalog: commit failed: %w", err)
	}
	if err := s.loadSubServices(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM services WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("catalog: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (s *PostgresStore) loadSubServices(ctx context.Context, svc *Service) error {
	rows, err := s.db.Query(ctx,
		"SELECT id, name, price FROM sub_services WHERE service_id = $1 ORDER BY name", svc.ID)
	if err != nil {
		return fmt.Errorf("catalog: load sub-services failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sub SubService
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Price); err != nil {
			return fmt.Errorf("catalog: scan sub-service failed: %w", err)
		}
		svc.SubServices = append(svc.SubServices, sub)
	}
	return rows.Err()
}

func scanService(row pgx.Row) (*Service, error) {
	var svc Service
	if err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.Duration,
		&svc.Discount,
		&svc.BasePrice,
		&svc.Status,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &svc, nil
}
