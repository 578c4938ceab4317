package customers

import (
	"context"
	"testing"
	"time"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"987 654 3210", "9876543210"},
		{"  987\t654 3210\n", "9876543210"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_CreatesNewCustomer(t *testing.T) {
	resolver := NewResolver(NewInMemoryStore(), logging.Default())

	c, err := resolver.Resolve(context.Background(), &ResolveRequest{
		Name:   "Priya",
		Phone:  "98 765 43210",
		Source: "walk-in",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Phone != "9876543210" {
		t.Errorf("expected normalized phone, got %q", c.Phone)
	}
	if c.Name != "Priya" {
		t.Errorf("expected name Priya, got %q", c.Name)
	}
}

func TestResolve_WhitespaceVariantsSameCustomer(t *testing.T) {
	resolver := NewResolver(NewInMemoryStore(), logging.Default())
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, &ResolveRequest{Name: "Priya", Phone: "9876543210", Source: "walk-in"})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := resolver.Resolve(ctx, &ResolveRequest{Name: "Priya", Phone: " 98 765 432 10 ", Source: "online"})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same customer, got %s and %s", first.ID, second.ID)
	}
}

func TestResolve_BackfillSemantics(t *testing.T) {
	store := NewInMemoryStore()
	resolver := NewResolver(store, logging.Default())
	ctx := context.Background()

	dob := time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC)
	first, err := resolver.Resolve(ctx, &ResolveRequest{
		Name:    "Priya",
		Phone:   "9876543210",
		Gender:  "female",
		Address: "12 MG Road",
		Source:  "walk-in",
	})
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	// Name overwritten, gender and address kept, dob backfilled.
	updated, err := resolver.Resolve(ctx, &ResolveRequest{
		Name:    "Priya S",
		Phone:   "9876543210",
		Gender:  "other",
		Address: "99 New Street",
		DOB:     &dob,
		Source:  "online",
	})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	if updated.ID != first.ID {
		t.Fatal("expected same customer record")
	}
	if updated.Name != "Priya S" {
		t.Errorf("name should be overwritten, got %q", updated.Name)
	}
	if updated.Gender != "female" {
		t.Errorf("gender should not be overwritten, got %q", updated.Gender)
	}
	if updated.Address != "12 MG Road" {
		t.Errorf("address should not be overwritten, got %q", updated.Address)
	}
	if updated.DOB == nil || !updated.DOB.Equal(dob) {
		t.Errorf("dob should be backfilled, got %v", updated.DOB)
	}
}

func TestResolve_MissingPhone(t *testing.T) {
	resolver := NewResolver(NewInMemoryStore(), logging.Default())

	_, err := resolver.Resolve(context.Background(), &ResolveRequest{Name: "Priya", Phone: "   "})
	if err != ErrMissingPhone {
		t.Fatalf("expected ErrMissingPhone, got %v", err)
	}
}

func TestResolve_MissingName(t *testing.T) {
	resolver := NewResolver(NewInMemoryStore(), logging.Default())

	_, err := resolver.Resolve(context.Background(), &ResolveRequest{Phone: "9876543210"})
	if err != ErrMissingName {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestApplyEdit_OverwritesSuppliedFields(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	c, err := store.Upsert(ctx, &ResolveRequest{Name: "Priya", Phone: "9876543210", Gender: "female"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	name := "Priya Sharma"
	phone := "91 234 56789"
	edited, err := store.ApplyEdit(ctx, c.ID, FieldEdit{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if edited.Name != "Priya Sharma" {
		t.Errorf("expected name overwritten, got %q", edited.Name)
	}
	if edited.Phone != "9123456789" {
		t.Errorf("expected normalized phone overwrite, got %q", edited.Phone)
	}
	if edited.Gender != "female" {
		t.Errorf("unsupplied field must not change, got %q", edited.Gender)
	}
}
