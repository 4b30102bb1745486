package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halaqahq/halaqa/internal/models"
	"github.com/halaqahq/halaqa/internal/rotation"
	"github.com/halaqahq/halaqa/internal/storage"
)

// ErrGroupFull means the group already has all its members.
var ErrGroupFull = errors.New("group is full")

// CreateGroupInput carries the caller-supplied fields for a new group.
type CreateGroupInput struct {
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	MonthlyAmount  float64            `json:"monthly_amount"`
	DurationMonths int                `json:"duration_months"`
	TotalMembers   int                `json:"total_members"`
	PayoutOrder    models.PayoutOrder `json:"payout_order"`
}

// GroupService owns the group lifecycle: creation, the join sequence
// with slot assignment, and the group-centric read queries.
type GroupService struct {
	store storage.Store
	ids   *IDGenerator
	locks *keyedLocks
	now   func() time.Time
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{
		store: store,
		ids:   NewIDGenerator(store),
		locks: newKeyedLocks(),
		now:   time.Now,
	}
}

// CreateGroup builds and persists a new group in pending status with
// every rotation slot available.
//
// Inputs are taken structurally: a zero member count or non-positive
// duration is stored as-is, yielding a group nobody can join.
func (s *GroupService) CreateGroup(ctx context.Context, creatorID string, in CreateGroupInput) (*models.Group, error) {
	slog.Info("CreateGroup request received",
		"name", in.Name,
		"total_members", in.TotalMembers,
		"payout_order", in.PayoutOrder,
	)

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	slots := make([]int, 0, in.TotalMembers)
	for i := 1; i <= in.TotalMembers; i++ {
		slots = append(slots, i)
	}

	group := &models.Group{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		MonthlyAmount:  in.MonthlyAmount,
		DurationMonths: in.DurationMonths,
		TotalMembers:   in.TotalMembers,
		CurrentMembers: 0,
		Status:         models.GroupStatusPending,
		CreatedBy:      creatorID,
		CurrentCycle:   0,
		PayoutOrder:    in.PayoutOrder,
		CreatedAt:      s.now().Unix(),
		AvailableSlots: slots,
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, nil
}

// JoinGroup runs the join sequence for one user:
//
//  1. resolve the group (storage.ErrNotFound if absent)
//  2. reject if full, regardless of slot preference
//  3. allocate a slot and its payout cycle
//  4. increment the member count, remove the slot, flip pending to
//     active exactly when the group fills
//  5. persist the group, the new membership and the user's
//     joined-groups append as one transaction
//
// Calls for the same group are serialized; a failure at any step
// leaves the group unchanged.
func (s *GroupService) JoinGroup(ctx context.Context, userID, groupID string, preferredSlot *int) (*models.GroupMembership, error) {
	lock := s.locks.acquire(groupID)
	defer lock.Unlock()

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if group.CurrentMembers >= group.TotalMembers {
		return nil, ErrGroupFull
	}

	slot, err := rotation.AssignSlot(group.AvailableSlots, preferredSlot)
	if err != nil {
		return nil, err
	}
	payoutCycle := rotation.PayoutCycle(slot, group.PayoutOrder, group.DurationMonths)

	group.CurrentMembers++
	group.AvailableSlots = rotation.RemoveSlot(group.AvailableSlots, slot)
	if group.CurrentMembers == group.TotalMembers {
		group.Status = models.GroupStatusActive
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	membership := &models.GroupMembership{
		ID:                id,
		UserID:            userID,
		GroupID:           groupID,
		SlotNumber:        slot,
		PayoutCycle:       payoutCycle,
		Status:            models.MembershipStatusActive,
		JoinedAt:          s.now().Unix(),
		TotalPaid:         0,
		HasReceivedPayout: false,
	}

	if err := s.store.CreateMembership(ctx, group, membership); err != nil {
		slog.Error("JoinGroup failed to persist", "group_id", groupID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to apply join: %w", err)
	}

	slog.Info("Member joined group",
		"group_id", groupID,
		"user_id", userID,
		"slot", slot,
		"payout_cycle", payoutCycle,
		"group_status", group.Status,
	)
	return membership, nil
}

// GetGroup retrieves a group by key.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListAvailableGroups returns all groups still accepting members.
func (s *GroupService) ListAvailableGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListOpenGroups(ctx)
}

// GetGroupMemberships returns all memberships of a group.
func (s *GroupService) GetGroupMemberships(ctx context.Context, groupID string) ([]*models.GroupMembership, error) {
	return s.store.ListGroupMemberships(ctx, groupID)
}

// GetUserGroups resolves the user's joined-groups list to groups, in
// join order. An unknown user yields an empty list, not an error, and
// a user who joined the same group twice sees it twice.
func (s *GroupService) GetUserGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.store.GetGroupsByIDs(ctx, user.JoinedGroups)
}
