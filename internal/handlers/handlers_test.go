package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/halaqahq/halaqa/internal/auth"
	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/service"
	"github.com/halaqahq/halaqa/internal/storage/sqlite"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := NewRouter(
		NewAuthHandler(service.NewAuthService(authenticator, jwtManager, store, slog.Default())),
		NewGroupHandler(service.NewGroupService(store)),
		NewPaymentHandler(service.NewPaymentService(store)),
		jwtManager,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// doJSON posts or gets JSON with an optional Bearer token and decodes
// the response body into out (if non-nil).
func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

type session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func register(t *testing.T, server *httptest.Server, name, email string) session {
	t.Helper()

	var s session
	status := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "",
		map[string]string{"name": name, "email": email, "password": "password123"}, &s)
	if status != http.StatusCreated {
		t.Fatalf("register %s: status = %d, want 201", email, status)
	}
	if s.Token == "" || s.User.ID == "" {
		t.Fatalf("register %s: missing token or user id", email)
	}
	return s
}

func TestAPIFlow(t *testing.T) {
	server := setupServer(t)

	alice := register(t, server, "Alice", "alice@example.com")
	bob := register(t, server, "Bob", "bob@example.com")

	// Protected routes reject missing tokens.
	if status := doJSON(t, http.MethodPost, server.URL+"/api/groups", "",
		map[string]any{"name": "x"}, nil); status != http.StatusUnauthorized {
		t.Errorf("unauthenticated create: status = %d, want 401", status)
	}

	// Alice creates a two-member manual group.
	var group models.Group
	status := doJSON(t, http.MethodPost, server.URL+"/api/groups", alice.Token,
		map[string]any{
			"name":            "Pair",
			"description":     "two of us",
			"monthly_amount":  40.0,
			"duration_months": 2,
			"total_members":   2,
			"payout_order":    "manual",
		}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group: status = %d, want 201", status)
	}
	if group.Status != models.GroupStatusPending || len(group.AvailableSlots) != 2 {
		t.Fatalf("created group = %+v", group)
	}

	// The group shows up as available.
	var available []models.Group
	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups/available", bob.Token, nil, &available); status != http.StatusOK {
		t.Fatalf("list available: status = %d, want 200", status)
	}
	if len(available) != 1 || available[0].ID != group.ID {
		t.Errorf("available = %+v, want the new group", available)
	}

	// Alice takes slot 2; manual order makes that payout cycle 2.
	var mAlice models.GroupMembership
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/"+group.ID+"/join", alice.Token,
		map[string]any{"preferred_slot": 2}, &mAlice)
	if status != http.StatusCreated {
		t.Fatalf("alice join: status = %d, want 201", status)
	}
	if mAlice.SlotNumber != 2 || mAlice.PayoutCycle != 2 {
		t.Errorf("alice membership = slot %d cycle %d, want 2/2", mAlice.SlotNumber, mAlice.PayoutCycle)
	}

	// Bob asks for the same slot and gets a conflict.
	var errBody map[string]string
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/"+group.ID+"/join", bob.Token,
		map[string]any{"preferred_slot": 2}, &errBody)
	if status != http.StatusConflict {
		t.Errorf("bob duplicate slot: status = %d, want 409", status)
	}

	// Bob joins without preference and fills the group.
	var mBob models.GroupMembership
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/"+group.ID+"/join", bob.Token,
		map[string]any{}, &mBob)
	if status != http.StatusCreated {
		t.Fatalf("bob join: status = %d, want 201", status)
	}
	if mBob.SlotNumber != 1 || mBob.PayoutCycle != 1 {
		t.Errorf("bob membership = slot %d cycle %d, want 1/1", mBob.SlotNumber, mBob.PayoutCycle)
	}

	var fetched models.Group
	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups/"+group.ID, bob.Token, nil, &fetched); status != http.StatusOK {
		t.Fatalf("get group: status = %d, want 200", status)
	}
	if fetched.Status != models.GroupStatusActive || len(fetched.AvailableSlots) != 0 {
		t.Errorf("group after fill = status %s, slots %v", fetched.Status, fetched.AvailableSlots)
	}

	// A third member bounces off the full group.
	carol := register(t, server, "Carol", "carol@example.com")
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/"+group.ID+"/join", carol.Token,
		map[string]any{}, &errBody)
	if status != http.StatusConflict {
		t.Errorf("join full group: status = %d, want 409", status)
	}

	// Bob pays cycle 1 at the group's monthly amount.
	var payment models.CyclePayment
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/"+group.ID+"/payments", bob.Token,
		map[string]any{"cycle_number": 1}, &payment)
	if status != http.StatusCreated {
		t.Fatalf("payment: status = %d, want 201", status)
	}
	if payment.Amount != 40.0 || payment.Status != models.PaymentStatusPaid {
		t.Errorf("payment = %+v", payment)
	}

	var payments []models.CyclePayment
	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups/"+group.ID+"/payments", bob.Token, nil, &payments); status != http.StatusOK {
		t.Fatalf("list payments: status = %d, want 200", status)
	}
	if len(payments) != 1 {
		t.Errorf("payments = %d, want 1", len(payments))
	}

	// Bob's group list holds the joined group.
	var myGroups []models.Group
	if status := doJSON(t, http.MethodGet, server.URL+"/api/me/groups", bob.Token, nil, &myGroups); status != http.StatusOK {
		t.Fatalf("my groups: status = %d, want 200", status)
	}
	if len(myGroups) != 1 || myGroups[0].ID != group.ID {
		t.Errorf("my groups = %+v, want the joined group", myGroups)
	}

	// Memberships list both members.
	var memberships []models.GroupMembership
	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups/"+group.ID+"/memberships", alice.Token, nil, &memberships); status != http.StatusOK {
		t.Fatalf("memberships: status = %d, want 200", status)
	}
	if len(memberships) != 2 {
		t.Errorf("memberships = %d, want 2", len(memberships))
	}
}

func TestAPIErrors(t *testing.T) {
	server := setupServer(t)
	alice := register(t, server, "Alice", "alice@example.com")

	// Duplicate registration conflicts.
	var errBody map[string]string
	status := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "",
		map[string]string{"name": "Alice2", "email": "alice@example.com", "password": "password123"}, &errBody)
	if status != http.StatusConflict {
		t.Errorf("duplicate register: status = %d, want 409", status)
	}

	// Wrong password is unauthorized.
	status = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "",
		map[string]string{"email": "alice@example.com", "password": "wrong-password"}, &errBody)
	if status != http.StatusUnauthorized {
		t.Errorf("bad login: status = %d, want 401", status)
	}

	// Unknown group keys map to 404 for joins and payments.
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/nope/join", alice.Token,
		map[string]any{}, &errBody)
	if status != http.StatusNotFound {
		t.Errorf("join missing group: status = %d, want 404", status)
	}
	status = doJSON(t, http.MethodPost, server.URL+"/api/groups/nope/payments", alice.Token,
		map[string]any{"cycle_number": 1}, &errBody)
	if status != http.StatusNotFound {
		t.Errorf("pay missing group: status = %d, want 404", status)
	}

	// Short passwords are a bad request.
	status = doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "",
		map[string]string{"name": "Dee", "email": "dee@example.com", "password": "short"}, &errBody)
	if status != http.StatusBadRequest {
		t.Errorf("weak password: status = %d, want 400", status)
	}

	// Current user reflects the token subject.
	var me models.User
	status = doJSON(t, http.MethodGet, server.URL+"/api/auth/me", alice.Token, nil, &me)
	if status != http.StatusOK {
		t.Fatalf("me: status = %d, want 200", status)
	}
	if me.ID != alice.User.ID || me.Email != "alice@example.com" {
		t.Errorf("me = %+v, want alice", me)
	}
}
