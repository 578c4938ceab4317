package customers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

func TestSearchByPhone_Found(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Upsert(context.Background(), &ResolveRequest{Name: "Priya", Phone: "9876543210"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	handler := NewHandler(store, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/appointments/customer/search?phone=98%20765%2043210", nil)
	w := httptest.NewRecorder()

	handler.SearchByPhone(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store cache header, got %q", got)
	}

	var c Customer
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Phone != "9876543210" {
		t.Errorf("expected stored phone, got %q", c.Phone)
	}
}

func TestSearchByPhone_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryStore(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/appointments/customer/search?phone=000", nil)
	w := httptest.NewRecorder()

	handler.SearchByPhone(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSearchByPhone_MissingParam(t *testing.T) {
	handler := NewHandler(NewInMemoryStore(), logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/appointments/customer/search", nil)
	w := httptest.NewRecorder()

	handler.SearchByPhone(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
