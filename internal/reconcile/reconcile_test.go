package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/clubledger/internal/models"
)

const att = "att-1"

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// scenarioPlan is one required flat item and one optional quantity item.
func scenarioPlan() []models.PaymentItem {
	return []models.PaymentItem{
		{ID: "inscription", Name: "Inscription", Value: decimal.NewFromInt(50), Required: true},
		{ID: "cafe", Name: "Café", Value: decimal.NewFromInt(10), QuantityEnabled: true},
	}
}

func TestConfirm_ScenarioA(t *testing.T) {
	ledger := NewLedger(nil)

	result := Confirm(att, scenarioPlan(), ledger, Quantities{"inscription": 1, "cafe": 3}, now)
	ledger.Apply(result.Mutation)

	assert.True(t, result.AttendanceConfirmed)
	assert.Equal(t, now.Unix(), result.ConfirmedAt)

	required, ok := ledger.Get(att, "inscription")
	require.True(t, ok)
	assert.Equal(t, 1, required.ConfirmedQuantity)
	assert.Equal(t, 0, required.PaidQuantity)
	assert.False(t, required.Paid)

	optional, ok := ledger.Get(att, "cafe")
	require.True(t, ok)
	assert.Equal(t, 3, optional.ConfirmedQuantity)
	assert.False(t, optional.Paid)
}

func TestPay_ScenarioB(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.Apply(Confirm(att, scenarioPlan(), ledger, Quantities{"inscription": 1, "cafe": 3}, now).Mutation)

	result := Pay(att, scenarioPlan(), ledger, Quantities{"inscription": 1}, now)
	ledger.Apply(result.Mutation)

	required, _ := ledger.Get(att, "inscription")
	assert.True(t, required.Paid)
	assert.Equal(t, 1, required.PaidQuantity)
	assert.Equal(t, now.Unix(), required.PaidAt)

	optional, _ := ledger.Get(att, "cafe")
	assert.False(t, optional.Paid)
	assert.Equal(t, 0, optional.PaidQuantity)
	assert.Equal(t, 3, optional.ConfirmedQuantity)
}

func TestPay_ScenarioC_NewRowInheritsConfirmed(t *testing.T) {
	ledger := NewLedger(nil)

	result := Pay(att, scenarioPlan(), ledger, Quantities{"cafe": 5}, now)
	require.Len(t, result.Upserts, 1)

	row := result.Upserts[0]
	assert.Equal(t, 5, row.ConfirmedQuantity)
	assert.Equal(t, 5, row.PaidQuantity)
	assert.True(t, row.Paid)
	assert.False(t, HasDiscrepancy(row))
}

func TestPay_ScenarioD_ExistingRowKeepsConfirmed(t *testing.T) {
	ledger := NewLedger([]models.AthletePaymentItem{
		{AttendanceID: att, PaymentItemID: "cafe", ConfirmedQuantity: 1},
	})

	result := Pay(att, scenarioPlan(), ledger, Quantities{"cafe": 4}, now)
	require.Len(t, result.Upserts, 1)

	row := result.Upserts[0]
	assert.Equal(t, 4, row.PaidQuantity)
	assert.Equal(t, 1, row.ConfirmedQuantity)
	assert.True(t, HasDiscrepancy(row))
}

func TestConfirm_Rules(t *testing.T) {
	tests := []struct {
		name        string
		existing    []models.AthletePaymentItem
		requested   Quantities
		wantUpserts map[string]int // item -> confirmed quantity
		wantDeletes []string
		wantSkipped int
	}{
		{
			name:        "optional zero without row is a no-op",
			requested:   Quantities{"inscription": 1, "cafe": 0},
			wantUpserts: map[string]int{"inscription": 1},
		},
		{
			name: "optional zero with row deletes it",
			existing: []models.AthletePaymentItem{
				{AttendanceID: att, PaymentItemID: "cafe", ConfirmedQuantity: 2},
			},
			requested:   Quantities{"inscription": 1},
			wantUpserts: map[string]int{"inscription": 1},
			wantDeletes: []string{"cafe"},
		},
		{
			name: "required below one leaves prior row untouched",
			existing: []models.AthletePaymentItem{
				{AttendanceID: att, PaymentItemID: "inscription", ConfirmedQuantity: 1},
			},
			requested:   Quantities{"cafe": 2},
			wantUpserts: map[string]int{"cafe": 2},
			wantSkipped: 1,
		},
		{
			name:        "negative optional quantity is ignored",
			requested:   Quantities{"inscription": 1, "cafe": -2},
			wantUpserts: map[string]int{"inscription": 1},
			wantSkipped: 1,
		},
		{
			name:        "unknown item ids are ignored",
			requested:   Quantities{"inscription": 2, "ghost": 9},
			wantUpserts: map[string]int{"inscription": 2},
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Confirm(att, scenarioPlan(), NewLedger(tt.existing), tt.requested, now)

			got := make(map[string]int, len(result.Upserts))
			for _, row := range result.Upserts {
				got[row.PaymentItemID] = row.ConfirmedQuantity
			}
			assert.Equal(t, tt.wantUpserts, got)
			assert.Equal(t, tt.wantDeletes, result.Deletes)
			assert.Equal(t, tt.wantSkipped, result.Skipped)
		})
	}
}

func TestConfirm_PreservesPaidFields(t *testing.T) {
	ledger := NewLedger([]models.AthletePaymentItem{
		{AttendanceID: att, PaymentItemID: "cafe", ConfirmedQuantity: 1, PaidQuantity: 1, Paid: true, PaidAt: 100},
	})

	result := Confirm(att, scenarioPlan(), ledger, Quantities{"inscription": 1, "cafe": 2}, now)
	ledger.Apply(result.Mutation)

	row, _ := ledger.Get(att, "cafe")
	assert.Equal(t, 2, row.ConfirmedQuantity)
	assert.Equal(t, 1, row.PaidQuantity)
	assert.True(t, row.Paid)
	assert.Equal(t, int64(100), row.PaidAt)
}

func TestConfirm_Idempotent(t *testing.T) {
	requested := Quantities{"inscription": 1, "cafe": 3}

	once := NewLedger(nil)
	once.Apply(Confirm(att, scenarioPlan(), once, requested, now).Mutation)

	twice := NewLedger(nil)
	twice.Apply(Confirm(att, scenarioPlan(), twice, requested, now).Mutation)
	twice.Apply(Confirm(att, scenarioPlan(), twice, requested, now).Mutation)

	assert.Equal(t, once.Rows(), twice.Rows())
}

func TestConfirm_EmptyPlan(t *testing.T) {
	result := Confirm(att, nil, NewLedger(nil), Quantities{}, now)

	assert.True(t, result.AttendanceConfirmed)
	assert.True(t, result.Empty())
}

func TestConfirm_RequiredAlwaysAtLeastOne(t *testing.T) {
	for qty := 1; qty <= 4; qty++ {
		ledger := NewLedger(nil)
		ledger.Apply(Confirm(att, scenarioPlan(), ledger, Quantities{"inscription": qty}, now).Mutation)

		row, ok := ledger.Get(att, "inscription")
		require.True(t, ok)
		assert.GreaterOrEqual(t, row.ConfirmedQuantity, 1)
	}
}

func TestPay_RequiredCoercion(t *testing.T) {
	for _, qty := range []int{0, -3} {
		result := Pay(att, scenarioPlan(), NewLedger(nil), Quantities{"inscription": qty}, now)
		require.Len(t, result.Upserts, 1)
		assert.Equal(t, 1, result.Upserts[0].PaidQuantity)
	}
}

func TestPay_SkipsUnknownAndNonPositive(t *testing.T) {
	result := Pay(att, scenarioPlan(), NewLedger(nil), Quantities{"cafe": 0, "ghost": 2}, now)

	assert.Empty(t, result.Upserts)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Deletes)
}

func TestPay_PlanOrder(t *testing.T) {
	result := Pay(att, scenarioPlan(), NewLedger(nil), Quantities{"cafe": 2, "inscription": 1}, now)

	require.Len(t, result.Upserts, 2)
	assert.Equal(t, "inscription", result.Upserts[0].PaymentItemID)
	assert.Equal(t, "cafe", result.Upserts[1].PaymentItemID)
}

func TestValidateSelection(t *testing.T) {
	err := ValidateSelection(scenarioPlan(), Quantities{"cafe": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredItems)

	var missing *MissingRequiredItemsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"Inscription"}, missing.Items)

	assert.NoError(t, ValidateSelection(scenarioPlan(), Quantities{"inscription": 1}))
	assert.True(t, AllRequiredSelected(nil, Quantities{}))
	assert.False(t, AllRequiredSelected(scenarioPlan(), Quantities{"inscription": 0}))
}

func TestHasDiscrepancy(t *testing.T) {
	tests := []struct {
		confirmed, paid int
		want            bool
	}{
		{2, 3, true},
		{2, 2, false},
		{0, 0, false},
		{0, 1, true},
		{1, 0, true},
	}
	for _, tt := range tests {
		row := models.AthletePaymentItem{ConfirmedQuantity: tt.confirmed, PaidQuantity: tt.paid}
		assert.Equal(t, tt.want, HasDiscrepancy(row), "confirmed=%d paid=%d", tt.confirmed, tt.paid)
	}
}

func TestInheritConfirmedOnFirstPayment(t *testing.T) {
	assert.Equal(t, 3, InheritConfirmedOnFirstPayment(nil, 3))
	assert.Equal(t, 1, InheritConfirmedOnFirstPayment(&models.AthletePaymentItem{ConfirmedQuantity: 1}, 3))
}

func TestSelectionWithLedger(t *testing.T) {
	ledger := NewLedger([]models.AthletePaymentItem{
		{AttendanceID: att, PaymentItemID: "inscription", ConfirmedQuantity: 1, PaidQuantity: 1, Paid: true},
		{AttendanceID: "att-2", PaymentItemID: "cafe", ConfirmedQuantity: 4},
	})

	selection := SelectionWithLedger(att, ledger, Quantities{"cafe": 2})
	assert.Equal(t, Quantities{"inscription": 1, "cafe": 2}, selection)
	assert.NoError(t, ValidateSelection(scenarioPlan(), selection))

	fresh := SelectionWithLedger(att, NewLedger(nil), Quantities{"cafe": 5})
	assert.ErrorIs(t, ValidateSelection(scenarioPlan(), fresh), ErrMissingRequiredItems)
}
