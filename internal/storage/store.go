// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/halaqahq/halaqa/internal/models"
)

// ErrNotFound is returned when a key does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for Halaqa persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer, and lets the services be
// tested against a throwaway database.
//
// Mutating methods that touch multiple records apply all their writes
// in one transaction; a failure leaves nothing applied.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by key, including the ordered list of
	// joined groups. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound if
	// absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateGroup persists a new group together with its available
	// slot pool.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by key, with AvailableSlots in
	// ascending order. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListOpenGroups returns all groups still accepting members
	// (status pending and not yet full).
	ListOpenGroups(ctx context.Context) ([]*models.Group, error)

	// GetGroupsByIDs resolves group keys in the given order, skipping
	// keys that do not resolve. Duplicate keys yield duplicate entries.
	GetGroupsByIDs(ctx context.Context, groupIDs []string) ([]*models.Group, error)

	// CreateMembership applies a completed join in one transaction:
	// it rewrites the group row and slot pool, inserts the membership,
	// and appends the group key to the user's joined-groups list.
	CreateMembership(ctx context.Context, group *models.Group, membership *models.GroupMembership) error

	// ListGroupMemberships returns all memberships of a group in join
	// order.
	ListGroupMemberships(ctx context.Context, groupID string) ([]*models.GroupMembership, error)

	// CreatePayment persists a new cycle payment.
	CreatePayment(ctx context.Context, payment *models.CyclePayment) error

	// ListUserPayments returns all payments by a user toward a group
	// in creation order.
	ListUserPayments(ctx context.Context, userID, groupID string) ([]*models.CyclePayment, error)

	// NextID durably increments the ID counter and returns the new
	// value. Values are strictly increasing across restarts.
	NextID(ctx context.Context) (uint64, error)

	// Close releases any resources held by the store.
	Close() error
}
