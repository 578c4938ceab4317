package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresStore_RecordBookingConflictIsNoOp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	apptID := uuid.New()
	custID := uuid.New()
	at := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), apptID, custID, 500.0, "cash", at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), apptID, custID, 500.0, "cash", at).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	store := NewPostgresStoreWithDB(mock)
	ctx := context.Background()

	created, err := store.RecordBooking(ctx, apptID, custID, 500, "cash", at)
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if !created {
		t.Error("first record should report created")
	}

	created, err = store.RecordBooking(ctx, apptID, custID, 500, "cash", at)
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if created {
		t.Error("conflicting record must report not created")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStore_CreateManual(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	id := uuid.New()
	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "appointment_id", "customer_id", "amount", "payment_mode", "origin", "date", "note", "created_at", "updated_at",
	}).AddRow(id, nil, nil, 250.0, "cash", OriginManual, now, "walk-in sale", now, now)

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 250.0, "cash", pgxmock.AnyArg(), "walk-in sale").
		WillReturnRows(rows)

	store := NewPostgresStoreWithDB(mock)
	p, err := store.Create(context.Background(), &CreatePaymentRequest{
		Amount:      250,
		PaymentMode: "cash",
		Note:        "walk-in sale",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != id || p.Origin != OriginManual {
		t.Fatalf("unexpected payment: %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
