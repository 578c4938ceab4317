package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("fourth request should be rejected")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first IP should be allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatal("second IP has its own bucket")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("first IP should now be limited")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatal("bucket should be empty")
	}

	now = now.Add(2 * time.Second)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("bucket should refill after the interval")
	}
}

func TestRateLimiter_LimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	req.RemoteAddr = "192.168.1.5:4711"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got == "" {
		t.Fatal("expected a Retry-After header on 429")
	}
}
