// Package order persists buyer orders and their payment lifecycle.
package order

import "time"

// Status is the lifecycle state of an order, tracking the Mercado Pago
// payment status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusInProcess Status = "in_process"
	StatusRefunded  Status = "refunded"
)

// IsTerminal reports whether the status can no longer change from the
// buyer's side.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled || s == StatusRefunded
}

func (s Status) String() string { return string(s) }

// FromPaymentStatus maps a Mercado Pago payment status onto the order
// lifecycle. Unknown statuses map to pending.
func FromPaymentStatus(mpStatus string) Status {
	switch mpStatus {
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	case "cancelled":
		return StatusCancelled
	case "in_process":
		return StatusInProcess
	case "refunded":
		return StatusRefunded
	default:
		return StatusPending
	}
}

// Order records one purchase attempt. Created when the buyer starts the
// checkout, updated as Mercado Pago reports the payment state.
type Order struct {
	ID        string
	FirstName string
	LastName  string
	Document  string
	Email     string

	ItemID    string
	ItemTitle string
	Price     float64

	PaymentID    string
	PreferenceID string
	Status       Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the buyer's name parts for display and emails.
func (o Order) FullName() string {
	return o.FirstName + " " + o.LastName
}
