package customers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresStore_UpsertNormalizesPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "phone", "gender", "dob", "address", "note", "source", "created_at", "updated_at",
	}).AddRow(id, "Priya", "", "9876543210", "", nil, "", "", "walk-in", now, now)

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs(pgxmock.AnyArg(), "Priya", "", "9876543210", "", pgxmock.AnyArg(), "", "", "walk-in").
		WillReturnRows(rows)

	store := NewPostgresStoreWithDB(mock)
	c, err := store.Upsert(context.Background(), &ResolveRequest{
		Name:   "Priya",
		Phone:  "98 765 43210",
		Source: "walk-in",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if c.ID != id || c.Phone != "9876543210" {
		t.Fatalf("unexpected customer: %+v", c)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStore_FindByPhoneNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT .* FROM customers WHERE phone").
		WithArgs("9876543210").
		WillReturnError(errors.New("no rows in result set"))

	store := NewPostgresStoreWithDB(mock)
	_, err = store.FindByPhone(context.Background(), "9876543210")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresStore_UpsertRejectsMissingPhone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	store := NewPostgresStoreWithDB(mock)
	_, err = store.Upsert(context.Background(), &ResolveRequest{Name: "Priya"})
	if !errors.Is(err, ErrMissingPhone) {
		t.Fatalf("expected ErrMissingPhone, got %v", err)
	}
}
