package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type recordingCache struct {
	dropped []string
}

func (c *recordingCache) Invalidate(ctx context.Context, keys ...string) {
	c.dropped = append(c.dropped, keys...)
}

func TestInvalidatingStore_DropsKeysOnWrites(t *testing.T) {
	rc := &recordingCache{}
	store := NewInvalidatingStore(NewInMemoryStore(), rc, "reports:payments:grouped")
	ctx := context.Background()

	p, err := store.Create(ctx, &CreatePaymentRequest{Amount: 300, PaymentMode: "cash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(rc.dropped) != 1 {
		t.Fatalf("dropped = %d keys after create, want 1", len(rc.dropped))
	}

	note := "corrected"
	if _, err := store.Update(ctx, p.ID, &UpdatePaymentRequest{Note: &note}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(rc.dropped) != 2 {
		t.Fatalf("dropped = %d keys after update, want 2", len(rc.dropped))
	}

	at := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	created, err := store.RecordBooking(ctx, uuid.New(), uuid.New(), 500, "upi", at)
	if err != nil || !created {
		t.Fatalf("record booking: created=%v err=%v", created, err)
	}
	if len(rc.dropped) != 3 {
		t.Fatalf("dropped = %d keys after booking payment, want 3", len(rc.dropped))
	}
}

func TestInvalidatingStore_FailedWritesKeepCache(t *testing.T) {
	rc := &recordingCache{}
	store := NewInvalidatingStore(NewInMemoryStore(), rc, "reports:payments:grouped")
	ctx := context.Background()

	if _, err := store.Create(ctx, &CreatePaymentRequest{Amount: 0, PaymentMode: "cash"}); err == nil {
		t.Fatal("expected validation error")
	}
	note := "x"
	if _, err := store.Update(ctx, uuid.New(), &UpdatePaymentRequest{Note: &note}); err == nil {
		t.Fatal("expected not-found error")
	}
	if len(rc.dropped) != 0 {
		t.Fatalf("dropped = %d keys after failed writes, want 0", len(rc.dropped))
	}

	at := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	apptID := uuid.New()
	if _, err := store.RecordBooking(ctx, apptID, uuid.New(), 500, "cash", at); err != nil {
		t.Fatalf("record booking: %v", err)
	}
	rc.dropped = nil
	// The duplicate is a no-op, so nothing changed and the cache stays warm.
	if _, err := store.RecordBooking(ctx, apptID, uuid.New(), 500, "cash", at); err != nil {
		t.Fatalf("duplicate booking: %v", err)
	}
	if len(rc.dropped) != 0 {
		t.Fatalf("dropped = %d keys, want 0 for failed or no-op writes", len(rc.dropped))
	}
}
