package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testGroup(id string) *models.Group {
	return &models.Group{
		ID:             id,
		Name:           "Test Halaqa",
		Description:    "test",
		MonthlyAmount:  100,
		DurationMonths: 3,
		TotalMembers:   3,
		CurrentMembers: 0,
		Status:         models.GroupStatusPending,
		CreatedBy:      "creator",
		CurrentCycle:   0,
		PayoutOrder:    models.PayoutOrderAuto,
		CreatedAt:      1700000000,
		AvailableSlots: []int{1, 2, 3},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("NextID is durable and strictly increasing", func(t *testing.T) {
		for want := uint64(1); want <= 3; want++ {
			got, err := store.NextID(ctx)
			if err != nil {
				t.Fatalf("NextID failed: %v", err)
			}
			if got != want {
				t.Errorf("NextID = %d, want %d", got, want)
			}
		}
	})

	t.Run("group round-trip with slot pool", func(t *testing.T) {
		group := testGroup("g-1")
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != group.Name || got.MonthlyAmount != group.MonthlyAmount {
			t.Errorf("group mismatch: %+v", got)
		}
		if got.Status != models.GroupStatusPending || got.PayoutOrder != models.PayoutOrderAuto {
			t.Errorf("enum round-trip mismatch: status=%s order=%s", got.Status, got.PayoutOrder)
		}
		if len(got.AvailableSlots) != 3 {
			t.Fatalf("slots = %v, want 3 ascending slots", got.AvailableSlots)
		}
		for i, slot := range got.AvailableSlots {
			if slot != i+1 {
				t.Errorf("slots not ascending: %v", got.AvailableSlots)
				break
			}
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetGroup = %v, want storage.ErrNotFound", err)
		}
	})

	t.Run("user round-trip and email lookup", func(t *testing.T) {
		user := &models.User{
			ID:           "u-1",
			Name:         "Amina",
			Email:        "amina@example.com",
			PasswordHash: "hash",
			IsActive:     true,
			CreatedAt:    1700000000,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byID, err := store.GetUser(ctx, "u-1")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if byID.Email != user.Email || !byID.IsActive {
			t.Errorf("user mismatch: %+v", byID)
		}
		if len(byID.JoinedGroups) != 0 {
			t.Errorf("fresh user joined groups = %v, want empty", byID.JoinedGroups)
		}

		byEmail, err := store.GetUserByEmail(ctx, "amina@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != "u-1" {
			t.Errorf("GetUserByEmail ID = %s, want u-1", byEmail.ID)
		}

		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetUserByEmail = %v, want storage.ErrNotFound", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := &models.User{
			ID:        "u-2",
			Name:      "Other",
			Email:     "amina@example.com",
			CreatedAt: 1700000000,
		}
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected unique-email violation")
		}
	})

	t.Run("CreateMembership applies the whole join", func(t *testing.T) {
		group, err := store.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}

		group.CurrentMembers = 1
		membership := &models.GroupMembership{
			ID:          "m-1",
			UserID:      "u-1",
			GroupID:     "g-1",
			SlotNumber:  1,
			PayoutCycle: 1,
			Status:      models.MembershipStatusActive,
			JoinedAt:    1700000100,
		}
		if err := store.CreateMembership(ctx, group, membership); err != nil {
			t.Fatalf("CreateMembership failed: %v", err)
		}

		got, err := store.GetGroup(ctx, "g-1")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.CurrentMembers != 1 {
			t.Errorf("current_members = %d, want 1", got.CurrentMembers)
		}
		if len(got.AvailableSlots) != 2 {
			t.Errorf("slots = %v, want slot 1 removed", got.AvailableSlots)
		}

		memberships, err := store.ListGroupMemberships(ctx, "g-1")
		if err != nil {
			t.Fatalf("ListGroupMemberships failed: %v", err)
		}
		if len(memberships) != 1 || memberships[0].ID != "m-1" {
			t.Fatalf("memberships = %+v, want the inserted record", memberships)
		}

		user, err := store.GetUser(ctx, "u-1")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if len(user.JoinedGroups) != 1 || user.JoinedGroups[0] != "g-1" {
			t.Errorf("joined groups = %v, want [g-1]", user.JoinedGroups)
		}
	})

	t.Run("ListOpenGroups filters full and non-pending groups", func(t *testing.T) {
		full := testGroup("g-full")
		full.TotalMembers = 1
		full.CurrentMembers = 1
		full.Status = models.GroupStatusActive
		full.AvailableSlots = nil
		if err := store.CreateGroup(ctx, full); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		open, err := store.ListOpenGroups(ctx)
		if err != nil {
			t.Fatalf("ListOpenGroups failed: %v", err)
		}
		for _, g := range open {
			if g.ID == "g-full" {
				t.Error("full group listed as open")
			}
		}
	})

	t.Run("GetGroupsByIDs keeps order and skips missing", func(t *testing.T) {
		extra := testGroup("g-2")
		if err := store.CreateGroup(ctx, extra); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		groups, err := store.GetGroupsByIDs(ctx, []string{"g-2", "missing", "g-1", "g-2"})
		if err != nil {
			t.Fatalf("GetGroupsByIDs failed: %v", err)
		}
		if len(groups) != 3 {
			t.Fatalf("groups = %d, want 3 (missing skipped, duplicate kept)", len(groups))
		}
		if groups[0].ID != "g-2" || groups[1].ID != "g-1" || groups[2].ID != "g-2" {
			t.Errorf("order mismatch: %s %s %s", groups[0].ID, groups[1].ID, groups[2].ID)
		}
	})

	t.Run("payment round-trip with nullable paid_at", func(t *testing.T) {
		paidAt := int64(1700000200)
		paid := &models.CyclePayment{
			ID: "p-1", GroupID: "g-1", UserID: "u-1", CycleNumber: 1,
			Amount: 100, Status: models.PaymentStatusPaid,
			PaidAt: &paidAt, CreatedAt: 1700000200,
		}
		pending := &models.CyclePayment{
			ID: "p-2", GroupID: "g-1", UserID: "u-1", CycleNumber: 2,
			Amount: 100, Status: models.PaymentStatusPending,
			CreatedAt: 1700000300,
		}
		if err := store.CreatePayment(ctx, paid); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}
		if err := store.CreatePayment(ctx, pending); err != nil {
			t.Fatalf("CreatePayment failed: %v", err)
		}

		payments, err := store.ListUserPayments(ctx, "u-1", "g-1")
		if err != nil {
			t.Fatalf("ListUserPayments failed: %v", err)
		}
		if len(payments) != 2 {
			t.Fatalf("payments = %d, want 2", len(payments))
		}
		if payments[0].PaidAt == nil || *payments[0].PaidAt != paidAt {
			t.Errorf("paid payment paid_at = %v, want %d", payments[0].PaidAt, paidAt)
		}
		if payments[1].PaidAt != nil {
			t.Errorf("pending payment paid_at = %v, want nil", payments[1].PaidAt)
		}
	})
}

func TestNextIDSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if _, err := store.NextID(ctx); err != nil {
		t.Fatalf("NextID failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.NextID(ctx)
	if err != nil {
		t.Fatalf("NextID failed: %v", err)
	}
	if got != 2 {
		t.Errorf("NextID after reopen = %d, want 2", got)
	}
}
