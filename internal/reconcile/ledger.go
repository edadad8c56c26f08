// Package reconcile decides, per athlete and per payable item, what quantity was
// confirmed and what quantity was paid. It is pure: callers load the payment plan
// and existing ledger rows, run Confirm or Pay, and persist the returned mutations.
package reconcile

import (
	"sort"

	"github.com/mmynk/clubledger/internal/models"
)

// Key identifies a ledger row.
type Key struct {
	AttendanceID  string
	PaymentItemID string
}

// KeyOf returns the key of a ledger row.
func KeyOf(row models.AthletePaymentItem) Key {
	return Key{AttendanceID: row.AttendanceID, PaymentItemID: row.PaymentItemID}
}

// Ledger holds ledger rows keyed by (attendance, payment item).
// It stands in for the relational unique constraint so the engine can run
// without a database.
type Ledger map[Key]models.AthletePaymentItem

// NewLedger indexes the given rows. Later duplicates replace earlier ones.
func NewLedger(rows []models.AthletePaymentItem) Ledger {
	l := make(Ledger, len(rows))
	for _, row := range rows {
		l[KeyOf(row)] = row
	}
	return l
}

// Get returns the row for (attendanceID, itemID).
func (l Ledger) Get(attendanceID, itemID string) (models.AthletePaymentItem, bool) {
	row, ok := l[Key{AttendanceID: attendanceID, PaymentItemID: itemID}]
	return row, ok
}

// Put inserts or replaces a row.
func (l Ledger) Put(row models.AthletePaymentItem) {
	l[KeyOf(row)] = row
}

// Delete removes the row for (attendanceID, itemID) if present.
func (l Ledger) Delete(attendanceID, itemID string) {
	delete(l, Key{AttendanceID: attendanceID, PaymentItemID: itemID})
}

// Apply writes a mutation into the ledger: upserts first, then deletes.
func (l Ledger) Apply(m Mutation) {
	for _, row := range m.Upserts {
		l.Put(row)
	}
	for _, itemID := range m.Deletes {
		l.Delete(m.AttendanceID, itemID)
	}
}

// Rows returns all rows ordered by attendance then item ID.
func (l Ledger) Rows() []models.AthletePaymentItem {
	rows := make([]models.AthletePaymentItem, 0, len(l))
	for _, row := range l {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AttendanceID != rows[j].AttendanceID {
			return rows[i].AttendanceID < rows[j].AttendanceID
		}
		return rows[i].PaymentItemID < rows[j].PaymentItemID
	})
	return rows
}

// Quantities maps payment item IDs to requested quantities.
type Quantities map[string]int

// Mutation is the set of ledger writes produced for one attendance.
type Mutation struct {
	AttendanceID string

	// Upserts are full rows to create or overwrite.
	Upserts []models.AthletePaymentItem

	// Deletes are payment item IDs whose rows must be removed.
	Deletes []string
}

// Empty reports whether the mutation writes nothing.
func (m Mutation) Empty() bool {
	return len(m.Upserts) == 0 && len(m.Deletes) == 0
}
