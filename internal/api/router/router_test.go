package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GovindxSharma/bookmyglow/internal/appointments"
	"github.com/GovindxSharma/bookmyglow/internal/auth"
	"github.com/GovindxSharma/bookmyglow/internal/catalog"
	"github.com/GovindxSharma/bookmyglow/internal/customers"
	"github.com/GovindxSharma/bookmyglow/internal/employees"
	"github.com/GovindxSharma/bookmyglow/pkg/logging"
)

const testSecret = "router-test-secret"

type routerFixture struct {
	srv     *httptest.Server
	service *catalog.Service
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	logger := logging.Default()
	ctx := t.Context()

	cat := catalog.NewInMemoryStore()
	base := 500.0
	svc, err := cat.Create(ctx, &catalog.CreateServiceRequest{
		Name:        "Haircut",
		Duration:    "30 min",
		BasePrice:   &base,
		SubServices: []catalog.SubServiceRequest{{Name: "Standard", Price: 500}},
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	staff := employees.NewInMemoryStore()
	contacts := customers.NewInMemoryStore()
	booking := appointments.NewBookingService(
		appointments.NewInMemoryStore(),
		customers.NewResolver(contacts, logger),
		contacts,
		appointments.NewPricingEngine(cat, staff),
		nil, nil, logger)

	authService := auth.NewService(auth.NewInMemoryStore(), testSecret, time.Hour, logger)

	handler := New(&Config{
		Logger:              logger,
		JWTSecret:           testSecret,
		AuthHandler:         auth.NewHandler(authService, logger),
		AppointmentsHandler: appointments.NewHandler(booking, contacts, logger),
		CustomersHandler:    customers.NewHandler(contacts, logger),
		EmployeesHandler:    employees.NewHandler(staff, logger),
		CatalogHandler:      catalog.NewHandler(cat, logger),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &routerFixture{srv: srv, service: svc}
}

func (f *routerFixture) login(t *testing.T) string {
	t.Helper()
	register, _ := json.Marshal(map[string]string{
		"name": "Admin", "email": "admin@example.com", "password": "s3cret",
	})
	resp, err := http.Post(f.srv.URL+"/auth/register", "application/json", bytes.NewReader(register))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	resp.Body.Close()

	login, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "s3cret"})
	resp, err = http.Post(f.srv.URL+"/auth/login", "application/json", bytes.NewReader(login))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	var body auth.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return body.Token
}

// loginAs registers an account with the given role and returns its id and
// a session token.
func (f *routerFixture) loginAs(t *testing.T, email, role string) (string, string) {
	t.Helper()
	register, _ := json.Marshal(map[string]string{
		"name": "Staffer", "email": email, "password": "s3cret", "role": role,
	})
	resp, err := http.Post(f.srv.URL+"/auth/register", "application/json", bytes.NewReader(register))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	var user auth.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	resp.Body.Close()

	login, _ := json.Marshal(map[string]string{"email": email, "password": "s3cret"})
	resp, err = http.Post(f.srv.URL+"/auth/login", "application/json", bytes.NewReader(login))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer resp.Body.Close()

	var body auth.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return user.ID.String(), body.Token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, f.srv.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestHealthIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	resp, err := http.Get(f.srv.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestBookingCreationIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	raw, _ := json.Marshal(map[string]any{
		"name":     "Priya",
		"phone":    "9876543210",
		"source":   "online",
		"services": []map[string]any{{"service_id": f.service.ID}},
	})
	resp, err := http.Post(f.srv.URL+"/appointments", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201 without a token", resp.StatusCode)
	}
}

func TestStaffSurfaceRequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	resp, err := http.Get(f.srv.URL + "/appointments")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a token", resp.StatusCode)
	}

	token := f.login(t)
	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/appointments", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 with a token", resp.StatusCode)
	}
}

func TestEmployeesMountedBehindAuth(t *testing.T) {
	f := newRouterFixture(t)
	token := f.login(t)

	raw, _ := json.Marshal(map[string]string{"name": "Asha", "phone": "9000000001"})
	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/employees", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
}

func TestUserUpdateAllowsSelfOnly(t *testing.T) {
	f := newRouterFixture(t)
	selfID, selfToken := f.loginAs(t, "staff1@example.com", "staff")
	otherID, _ := f.loginAs(t, "staff2@example.com", "staff")

	raw, _ := json.Marshal(map[string]string{"name": "Renamed"})
	resp := f.do(t, http.MethodPut, "/auth/"+selfID, selfToken, raw)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("self update: status = %d, want 200", resp.StatusCode)
	}

	resp = f.do(t, http.MethodPut, "/auth/"+otherID, selfToken, raw)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("other update: status = %d, want 403", resp.StatusCode)
	}
}

func TestUserDeletionRequiresAdminRole(t *testing.T) {
	f := newRouterFixture(t)
	targetID, _ := f.loginAs(t, "target@example.com", "staff")
	_, staffToken := f.loginAs(t, "staff@example.com", "staff")
	_, adminToken := f.loginAs(t, "admin2@example.com", "admin")

	resp := f.do(t, http.MethodDelete, "/auth/"+targetID, staffToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("staff delete: status = %d, want 403", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/auth/"+targetID, adminToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("admin delete: status = %d, want 200", resp.StatusCode)
	}

	resp = f.do(t, http.MethodDelete, "/auth/"+targetID, adminToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("repeat delete: status = %d, want 404", resp.StatusCode)
	}
}
