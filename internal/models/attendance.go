package models

// Attendance represents one athlete's relationship to one event.
// It is unique per (EventID, AthleteID) and is the aggregate root for ledger rows.
type Attendance struct {
	// ID is the unique identifier for the attendance (UUID format).
	ID string

	EventID   string
	AthleteID string

	// Confirmed is true once the athlete confirmed, or once any payment was recorded.
	Confirmed bool

	// ConfirmedAt is the Unix timestamp of the latest confirmation. Zero if never confirmed.
	ConfirmedAt int64

	// Items are the ledger rows under this attendance.
	// Only populated by listing calls that request the ledger.
	Items []AthletePaymentItem

	// CreatedAt is the Unix timestamp when the attendance was created.
	CreatedAt int64
}

// AthletePaymentItem is a ledger row: what one athlete confirmed and paid for one item.
// It is unique per (AttendanceID, PaymentItemID).
type AthletePaymentItem struct {
	AttendanceID  string
	PaymentItemID string

	// ConfirmedQuantity is how many units the athlete intends to take.
	ConfirmedQuantity int

	// PaidQuantity is how many units staff recorded as paid.
	PaidQuantity int

	// Paid is set once any payment was recorded for the row.
	Paid bool

	// PaidAt is the Unix timestamp of the latest payment. Zero if unpaid.
	PaidAt int64
}
