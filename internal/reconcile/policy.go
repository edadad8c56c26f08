package reconcile

import "github.com/mmynk/clubledger/internal/models"

// CoerceRequiredQuantity raises a required item's quantity to 1.
// Optional items keep the requested quantity, including zero or negative values.
func CoerceRequiredQuantity(item models.PaymentItem, qty int) int {
	if item.Required && qty < 1 {
		return 1
	}
	return qty
}

// InheritConfirmedOnFirstPayment returns the confirmed quantity a row should carry
// after a payment of paidQty. A brand-new row (existing == nil) takes the paid
// quantity as its confirmation; an existing row keeps its own confirmed quantity,
// which is how paid and confirmed counters drift apart.
func InheritConfirmedOnFirstPayment(existing *models.AthletePaymentItem, paidQty int) int {
	if existing == nil {
		return paidQty
	}
	return existing.ConfirmedQuantity
}

// AllRequiredSelected reports whether every required item in the plan is
// requested with quantity >= 1. A plan without required items always passes.
func AllRequiredSelected(plan []models.PaymentItem, requested Quantities) bool {
	return len(MissingRequiredItems(plan, requested)) == 0
}

// MissingRequiredItems returns the required items not requested with quantity >= 1.
func MissingRequiredItems(plan []models.PaymentItem, requested Quantities) []models.PaymentItem {
	var missing []models.PaymentItem
	for _, item := range plan {
		if item.Required && requested[item.ID] < 1 {
			missing = append(missing, item)
		}
	}
	return missing
}

// ValidateSelection gates confirm and pay requests on required items.
func ValidateSelection(plan []models.PaymentItem, requested Quantities) error {
	missing := MissingRequiredItems(plan, requested)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, item := range missing {
		names[i] = item.Name
	}
	return &MissingRequiredItemsError{Items: names}
}

// HasActivity reports whether a row has anything confirmed or paid.
func HasActivity(row models.AthletePaymentItem) bool {
	return row.ConfirmedQuantity > 0 || row.PaidQuantity > 0
}

// HasDiscrepancy reports whether an active row's confirmed and paid quantities disagree.
func HasDiscrepancy(row models.AthletePaymentItem) bool {
	return HasActivity(row) && row.ConfirmedQuantity != row.PaidQuantity
}

// SelectionWithLedger returns the selection a pay request is gated on: the
// requested quantities plus items already active in the ledger, so staff can
// record a later payment without re-sending items settled before.
func SelectionWithLedger(attendanceID string, ledger Ledger, requested Quantities) Quantities {
	selection := make(Quantities, len(requested))
	for id, qty := range requested {
		selection[id] = qty
	}
	for _, row := range ledger {
		if row.AttendanceID != attendanceID || !HasActivity(row) {
			continue
		}
		if selection[row.PaymentItemID] < 1 {
			selection[row.PaymentItemID] = max(row.ConfirmedQuantity, row.PaidQuantity)
		}
	}
	return selection
}
