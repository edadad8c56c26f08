package reconcile

import (
	"time"

	"github.com/mmynk/clubledger/internal/models"
)

// ConfirmResult is the outcome of Confirm.
type ConfirmResult struct {
	Mutation

	// AttendanceConfirmed is always true: confirming marks the attendance confirmed
	// even when no ledger row changes.
	AttendanceConfirmed bool

	// ConfirmedAt is the Unix timestamp to store on the attendance.
	ConfirmedAt int64

	// Skipped counts request entries left untouched: unknown item IDs,
	// required items requested below 1 and negative quantities.
	Skipped int
}

// Confirm computes the ledger writes for an athlete confirming the given quantities.
//
// For each plan item, with qty = requested[item.ID]:
//   - qty > 0: upsert the row with ConfirmedQuantity = qty, keeping paid fields
//   - qty == 0 on an optional item: delete the row if it exists
//   - required item with qty < 1: skipped, the prior row stays as is
//   - negative qty on an optional item: skipped
//   - IDs absent from the plan: skipped
//
// Callers must reject requests failing ValidateSelection before calling Confirm.
func Confirm(attendanceID string, plan []models.PaymentItem, ledger Ledger, requested Quantities, now time.Time) ConfirmResult {
	result := ConfirmResult{
		Mutation:            Mutation{AttendanceID: attendanceID},
		AttendanceConfirmed: true,
		ConfirmedAt:         now.Unix(),
	}
	result.Skipped = countUnknown(plan, requested)

	for _, item := range plan {
		qty := requested[item.ID]

		switch {
		case item.Required && qty < 1:
			result.Skipped++
		case qty > 0:
			row, ok := ledger.Get(attendanceID, item.ID)
			if !ok {
				row = models.AthletePaymentItem{
					AttendanceID:  attendanceID,
					PaymentItemID: item.ID,
				}
			}
			row.ConfirmedQuantity = qty
			result.Upserts = append(result.Upserts, row)
		case qty == 0:
			if _, ok := ledger.Get(attendanceID, item.ID); ok {
				result.Deletes = append(result.Deletes, item.ID)
			}
		default:
			result.Skipped++
		}
	}

	return result
}
