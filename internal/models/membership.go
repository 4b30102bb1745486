package models

// MembershipStatus tracks a member's standing within a group.
type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusInactive MembershipStatus = "inactive"
	MembershipStatusExpelled MembershipStatus = "expelled"
	MembershipStatusLeft     MembershipStatus = "left"
)

// GroupMembership binds a user to a group with an assigned rotation
// slot and the cycle in which that slot receives the pooled payout.
//
// Nothing prevents the same user from holding two memberships in the
// same group; each join creates a fresh record.
type GroupMembership struct {
	// ID is the unique membership key, generated from the durable ID counter.
	ID string `json:"id"`

	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`

	// SlotNumber is the rotation position, unique within the group and
	// drawn from the group's available slots at join time.
	SlotNumber int `json:"slot_number"`

	// PayoutCycle is the 1-based cycle in which this member receives
	// the pooled payout.
	PayoutCycle int `json:"payout_cycle"`

	Status MembershipStatus `json:"status"`

	// JoinedAt is the Unix timestamp of the successful join.
	JoinedAt int64 `json:"joined_at"`

	// TotalPaid accumulates contributions. Reserved: no operation
	// writes it yet.
	TotalPaid float64 `json:"total_paid"`

	// HasReceivedPayout flags whether the member took their payout.
	// Reserved: no operation writes it yet.
	HasReceivedPayout bool `json:"has_received_payout"`
}
