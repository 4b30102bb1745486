package models

// PaymentStatus tracks the state of a cycle contribution.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// CyclePayment records one contribution by a user toward a group cycle.
// Payments are immutable once created; there is no edit or void path.
type CyclePayment struct {
	// ID is the unique payment key, generated from the durable ID counter.
	ID string `json:"id"`

	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`

	// CycleNumber is the 1-based cycle the payment is for, as stated by
	// the caller. It is not cross-checked against the group's current
	// cycle or the caller's membership.
	CycleNumber int `json:"cycle_number"`

	// Amount is copied from the group's monthly contribution at the
	// time of payment.
	Amount float64 `json:"amount"`

	Status PaymentStatus `json:"status"`

	// PaidAt is the Unix timestamp of the payment, nil while pending.
	PaidAt *int64 `json:"paid_at,omitempty"`

	// CreatedAt is the Unix timestamp when the record was created.
	CreatedAt int64 `json:"created_at"`
}
