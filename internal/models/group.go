package models

// GroupStatus tracks where a group is in its lifecycle.
type GroupStatus string

const (
	// GroupStatusPending means the group was created and is still
	// accepting members.
	GroupStatusPending GroupStatus = "pending"

	// GroupStatusActive means all slots are taken and the contribution
	// cycle is running.
	GroupStatusActive GroupStatus = "active"

	// GroupStatusFull is reserved; no operation currently sets it.
	GroupStatusFull GroupStatus = "full"

	// GroupStatusCompleted is reserved for when every member has
	// received a payout.
	GroupStatusCompleted GroupStatus = "completed"

	// GroupStatusCancelled is reserved for group cancellation.
	GroupStatusCancelled GroupStatus = "cancelled"
)

// PayoutOrder controls how a slot number maps to a payout cycle.
type PayoutOrder string

const (
	// PayoutOrderAuto distributes payout turns cyclically across the
	// group duration: cycle = ((slot-1) mod duration) + 1.
	PayoutOrderAuto PayoutOrder = "auto"

	// PayoutOrderManual makes the slot number the payout cycle, so
	// members picking a slot pick their payout turn directly.
	PayoutOrderManual PayoutOrder = "manual"
)

// Group represents one rotating savings group.
//
// Invariant: CurrentMembers + len(AvailableSlots) == TotalMembers, and
// AvailableSlots only ever holds distinct values from 1..TotalMembers.
type Group struct {
	// ID is the unique group key, generated from the durable ID counter.
	ID string `json:"id"`

	Name        string `json:"name"`
	Description string `json:"description"`

	// MonthlyAmount is the fixed contribution each member pays per cycle.
	MonthlyAmount float64 `json:"monthly_amount"`

	// DurationMonths is the number of contribution cycles.
	DurationMonths int `json:"duration_months"`

	// TotalMembers is the member count the group needs to start.
	TotalMembers int `json:"total_members"`

	// CurrentMembers is how many members have joined so far.
	CurrentMembers int `json:"current_members"`

	Status GroupStatus `json:"status"`

	// CreatedBy is the user key of the creator.
	CreatedBy string `json:"created_by"`

	// CurrentCycle is the running cycle index, starting at 0.
	CurrentCycle int `json:"current_cycle"`

	PayoutOrder PayoutOrder `json:"payout_order"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`

	// AvailableSlots holds the rotation slot numbers not yet assigned,
	// in ascending order.
	AvailableSlots []int `json:"available_slots"`
}
