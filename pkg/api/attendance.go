package api

// LedgerRow is one athlete payment item as seen by clients.
type LedgerRow struct {
	PaymentItemID     string `json:"payment_item_id"`
	Name              string `json:"name"`
	Required          bool   `json:"required"`
	ConfirmedQuantity int32  `json:"confirmed_quantity"`
	PaidQuantity      int32  `json:"paid_quantity"`
	Paid              bool   `json:"paid"`
	PaidAt            int64  `json:"paid_at,omitempty"`
	HasDiscrepancy    bool   `json:"has_discrepancy"`
}

// Attendance is an athlete's confirmation record for an event with its ledger.
type Attendance struct {
	ID          string      `json:"id"`
	EventID     string      `json:"event_id"`
	AthleteID   string      `json:"athlete_id"`
	Confirmed   bool        `json:"confirmed"`
	ConfirmedAt int64       `json:"confirmed_at,omitempty"`
	Items       []LedgerRow `json:"items"`
}

// ConfirmAttendanceRequest confirms an athlete for an event with the selected quantities.
// Quantities maps payment item IDs to units; 0 on an optional item removes it.
type ConfirmAttendanceRequest struct {
	EventID    string           `json:"event_id"`
	AthleteID  string           `json:"athlete_id"`
	Quantities map[string]int32 `json:"quantities,omitempty"`
}

type ConfirmAttendanceResponse struct {
	Attendance *Attendance `json:"attendance"`

	// Skipped counts request entries that were ignored.
	Skipped int32 `json:"skipped"`
}

// RecordPaymentRequest records staff-verified payment of the given quantities.
type RecordPaymentRequest struct {
	EventID    string           `json:"event_id"`
	AthleteID  string           `json:"athlete_id"`
	Quantities map[string]int32 `json:"quantities"`
}

type RecordPaymentResponse struct {
	Attendance *Attendance `json:"attendance"`
	Skipped    int32       `json:"skipped"`
}

type GetAttendanceRequest struct {
	EventID   string `json:"event_id"`
	AthleteID string `json:"athlete_id"`
}

type GetAttendanceResponse struct {
	// Attendance is nil when the athlete never confirmed or paid.
	Attendance *Attendance `json:"attendance"`
}
