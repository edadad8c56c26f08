package reconcile

import (
	"time"

	"github.com/mmynk/clubledger/internal/models"
)

// PayResult is the outcome of Pay.
type PayResult struct {
	Mutation

	// Skipped counts requested entries ignored because the item is unknown
	// or the final quantity is not positive.
	Skipped int
}

// Pay computes the ledger writes for staff recording payment of the given quantities.
//
// Each requested item is resolved against the plan (unknown IDs are skipped),
// required items are coerced to at least 1, and non-positive quantities are
// skipped. Paid rows get Paid = true, PaidQuantity and PaidAt. New rows also
// inherit the paid quantity as their confirmed quantity; existing rows keep theirs.
//
// Rows are produced in plan order. Pay never deletes.
func Pay(attendanceID string, plan []models.PaymentItem, ledger Ledger, requested Quantities, now time.Time) PayResult {
	result := PayResult{
		Mutation: Mutation{AttendanceID: attendanceID},
		Skipped:  countUnknown(plan, requested),
	}

	for _, item := range plan {
		qty, ok := requested[item.ID]
		if !ok {
			continue
		}

		finalQty := CoerceRequiredQuantity(item, qty)
		if finalQty <= 0 {
			result.Skipped++
			continue
		}

		var existing *models.AthletePaymentItem
		row, found := ledger.Get(attendanceID, item.ID)
		if found {
			existing = &row
		} else {
			row = models.AthletePaymentItem{
				AttendanceID:  attendanceID,
				PaymentItemID: item.ID,
			}
		}

		row.ConfirmedQuantity = InheritConfirmedOnFirstPayment(existing, finalQty)
		row.Paid = true
		row.PaidQuantity = finalQty
		row.PaidAt = now.Unix()
		result.Upserts = append(result.Upserts, row)
	}

	return result
}

// countUnknown counts requested IDs that are not items of the plan.
func countUnknown(plan []models.PaymentItem, requested Quantities) int {
	known := make(map[string]bool, len(plan))
	for _, item := range plan {
		known[item.ID] = true
	}
	n := 0
	for itemID := range requested {
		if !known[itemID] {
			n++
		}
	}
	return n
}
