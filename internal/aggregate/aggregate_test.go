package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/clubledger/internal/models"
)

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "amount = %s, want %s", got, want)
}

func eventPlan() []models.PaymentItem {
	return []models.PaymentItem{
		{ID: "inscription", Name: "Inscription", Value: decimal.NewFromInt(50), Required: true},
		{ID: "cafe", Name: "Café", Value: decimal.NewFromInt(10), QuantityEnabled: true},
		{ID: "bus", Name: "Bus rental", Value: decimal.NewFromInt(300), IsFixed: true},
	}
}

var meet = models.Event{ID: "ev-1", Name: "Spring Meet"}

func TestSummarizeEvent_ScenarioB(t *testing.T) {
	attendances := []models.Attendance{
		{
			ID: "att-1", AthleteID: "ana", Confirmed: true,
			Items: []models.AthletePaymentItem{
				{AttendanceID: "att-1", PaymentItemID: "inscription", ConfirmedQuantity: 1, PaidQuantity: 1, Paid: true},
				{AttendanceID: "att-1", PaymentItemID: "cafe", ConfirmedQuantity: 3},
			},
		},
	}

	summary := SummarizeEvent(meet, eventPlan(), attendances, map[string]string{"ana": "Ana"})

	assert.Equal(t, 1, summary.ConfirmedAthletes)
	assert.Equal(t, 1, summary.PaidAthletes)
	assertAmount(t, "50", summary.AmountReceived)
	assertAmount(t, "80", summary.AmountExpected)
	assertAmount(t, "30", summary.AmountPending)

	require.Len(t, summary.PaidItems, 1)
	assert.Equal(t, "Inscription", summary.PaidItems[0].Name)
	assert.Equal(t, 1, summary.PaidItems[0].Quantity)

	require.Len(t, summary.Athletes, 1)
	ana := summary.Athletes[0]
	assert.Equal(t, "Ana", ana.AthleteName)
	require.Len(t, ana.Items, 2)
	assert.False(t, ana.Items[0].HasDiscrepancy)
	assert.True(t, ana.Items[1].HasDiscrepancy, "confirmed 3, paid 0")
	assert.True(t, ana.HasDiscrepancy)
	assert.Equal(t, 1, summary.Discrepancies)
}

func TestSummarizeEvent_Discrepancies(t *testing.T) {
	tests := []struct {
		name            string
		confirmed, paid int
		wantListed      bool
		wantDiscrepancy bool
	}{
		{"overpaid", 2, 3, true, true},
		{"matched", 2, 2, true, false},
		{"inactive row is excluded", 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attendances := []models.Attendance{{
				ID: "att-1", AthleteID: "ana", Confirmed: true,
				Items: []models.AthletePaymentItem{{
					AttendanceID: "att-1", PaymentItemID: "cafe",
					ConfirmedQuantity: tt.confirmed, PaidQuantity: tt.paid, Paid: tt.paid > 0,
				}},
			}}

			summary := SummarizeEvent(meet, eventPlan(), attendances, nil)
			ana := summary.Athletes[0]

			assert.Equal(t, tt.wantListed, len(ana.Items) == 1)
			assert.Equal(t, tt.wantDiscrepancy, ana.HasDiscrepancy)
		})
	}
}

func TestSummarizeEvent_FixedItemsHiddenFromAthletes(t *testing.T) {
	attendances := []models.Attendance{{
		ID: "att-1", AthleteID: "ana", Confirmed: true,
		Items: []models.AthletePaymentItem{
			{AttendanceID: "att-1", PaymentItemID: "bus", ConfirmedQuantity: 1, PaidQuantity: 1, Paid: true},
		},
	}}

	summary := SummarizeEvent(meet, eventPlan(), attendances, nil)

	assert.Empty(t, summary.Athletes[0].Items)
	assertAmount(t, "300", summary.AmountReceived)
	assertAmount(t, "0", summary.AmountExpected)
}

func TestSummarizeEvent_CountsAndGrouping(t *testing.T) {
	attendances := []models.Attendance{
		{
			ID: "att-1", AthleteID: "bruno", Confirmed: true,
			Items: []models.AthletePaymentItem{
				{AttendanceID: "att-1", PaymentItemID: "cafe", ConfirmedQuantity: 2, PaidQuantity: 2, Paid: true},
				{AttendanceID: "att-1", PaymentItemID: "inscription", ConfirmedQuantity: 1, PaidQuantity: 1, Paid: true},
			},
		},
		{
			ID: "att-2", AthleteID: "ana", Confirmed: true,
			Items: []models.AthletePaymentItem{
				{AttendanceID: "att-2", PaymentItemID: "cafe", ConfirmedQuantity: 1, PaidQuantity: 4, Paid: true},
			},
		},
		{ID: "att-3", AthleteID: "carla", Confirmed: false},
		{
			ID: "att-4", AthleteID: "duda", Confirmed: true,
			Items: []models.AthletePaymentItem{
				{AttendanceID: "att-4", PaymentItemID: "removed-item", PaidQuantity: 1, Paid: true},
			},
		},
	}
	names := map[string]string{"ana": "Ana", "bruno": "Bruno", "carla": "Carla", "duda": "Duda"}

	summary := SummarizeEvent(meet, eventPlan(), attendances, names)

	assert.Equal(t, 3, summary.ConfirmedAthletes)
	assert.Equal(t, 3, summary.PaidAthletes)
	assertAmount(t, "110", summary.AmountReceived)

	require.Len(t, summary.PaidItems, 2)
	assert.Equal(t, "Inscription", summary.PaidItems[0].Name)
	assert.Equal(t, "Café", summary.PaidItems[1].Name)
	assert.Equal(t, 6, summary.PaidItems[1].Quantity)
	assertAmount(t, "60", summary.PaidItems[1].Amount)

	require.Len(t, summary.Athletes, 4)
	assert.Equal(t, "Ana", summary.Athletes[0].AthleteName)
	assert.Equal(t, "Bruno", summary.Athletes[1].AthleteName)
	assert.Equal(t, "inscription", summary.Athletes[1].Items[0].PaymentItemID, "items follow plan order")
	assert.Equal(t, 1, summary.Discrepancies)
}

func TestSummarizeChampionship(t *testing.T) {
	plan := []models.PaymentItem{
		{ID: "venue", Name: "Venue", Value: decimal.NewFromInt(120), IsFixed: true},
		{ID: "fee", Name: "Entry fee", Value: decimal.NewFromInt(15), QuantityEnabled: true},
	}
	orgs := []OrganizationEntries{
		{OrganizationID: "a", OrganizationName: "Org A", ConfirmedAthletes: 10},
		{OrganizationID: "b", OrganizationName: "Org B", ConfirmedAthletes: 5},
	}

	summary := SummarizeChampionship("ch-1", plan, orgs)

	require.Len(t, summary.Organizations, 2)
	assertAmount(t, "210", summary.Organizations[0].Expected)
	assertAmount(t, "135", summary.Organizations[1].Expected)
	assertAmount(t, "345", summary.TotalExpected)
	assertAmount(t, "0", summary.TotalReceived)
	assertAmount(t, "345", summary.TotalPending)
	assert.Equal(t, 15, summary.TotalConfirmed)

	items := summary.Organizations[0].Items
	require.Len(t, items, 2)
	assert.True(t, items[0].Fixed)
	assertAmount(t, "60", items[0].Amount)
	assertAmount(t, "150", items[1].Amount)
}

func TestSplitFixedCost(t *testing.T) {
	tests := []struct {
		name  string
		value string
		orgs  int
		want  []string
	}{
		{"even split", "120", 2, []string{"60", "60"}},
		{"three ways", "120", 3, []string{"40", "40", "40"}},
		{"remainder goes to first share", "100", 3, []string{"33.34", "33.33", "33.33"}},
		{"sub-cent value", "0.05", 2, []string{"0.03", "0.02"}},
		{"no organizations", "120", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := decimal.RequireFromString(tt.value)
			shares := SplitFixedCost(value, tt.orgs)
			require.Len(t, shares, len(tt.want))
			total := decimal.Zero
			for i, want := range tt.want {
				assertAmount(t, want, shares[i])
				total = total.Add(shares[i])
			}
			if tt.orgs > 0 {
				assertAmount(t, tt.value, total)
			}
		})
	}
}

func TestSummarizeChampionship_UnevenFixedCost(t *testing.T) {
	plan := []models.PaymentItem{
		{ID: "venue", Name: "Venue", Value: decimal.NewFromInt(100), IsFixed: true},
	}
	orgs := []OrganizationEntries{
		{OrganizationID: "a", OrganizationName: "Org A", ConfirmedAthletes: 1},
		{OrganizationID: "b", OrganizationName: "Org B", ConfirmedAthletes: 1},
		{OrganizationID: "c", OrganizationName: "Org C", ConfirmedAthletes: 1},
	}

	summary := SummarizeChampionship("ch-1", plan, orgs)

	require.Len(t, summary.Organizations, 3)
	assertAmount(t, "33.34", summary.Organizations[0].Expected)
	assertAmount(t, "33.33", summary.Organizations[2].Expected)
	assertAmount(t, "100", summary.TotalExpected)
	assertAmount(t, "100", summary.TotalPending)
}

func TestCountConfirmedByOrganization(t *testing.T) {
	entries := []models.ChampionshipEntry{
		{OrganizationID: "b", OrganizationName: "Tigers", AthleteID: "1", Confirmed: true},
		{OrganizationID: "a", OrganizationName: "Eagles", AthleteID: "2", Confirmed: true},
		{OrganizationID: "a", OrganizationName: "Eagles", AthleteID: "3", Confirmed: false},
		{OrganizationID: "c", OrganizationName: "Wolves", AthleteID: "4", Confirmed: false},
	}

	orgs := CountConfirmedByOrganization(entries)

	require.Len(t, orgs, 3)
	assert.Equal(t, OrganizationEntries{OrganizationID: "a", OrganizationName: "Eagles", ConfirmedAthletes: 1}, orgs[0])
	assert.Equal(t, OrganizationEntries{OrganizationID: "b", OrganizationName: "Tigers", ConfirmedAthletes: 1}, orgs[1])
	assert.Equal(t, 0, orgs[2].ConfirmedAthletes, "participating with nobody confirmed")
}

func TestSummarizeOrganization(t *testing.T) {
	events := []EventSummary{
		{EventID: "e1", EventName: "Meet", AmountExpected: decimal.NewFromInt(100), AmountReceived: decimal.NewFromInt(60), AmountPending: decimal.NewFromInt(40), Discrepancies: 1},
		{EventID: "e2", EventName: "Camp", AmountExpected: decimal.NewFromInt(50), AmountReceived: decimal.NewFromInt(50), AmountPending: decimal.Zero},
	}

	summary := SummarizeOrganization("org-1", events)

	require.Len(t, summary.Events, 2)
	assertAmount(t, "150", summary.TotalExpected)
	assertAmount(t, "110", summary.TotalReceived)
	assertAmount(t, "40", summary.TotalPending)
	assert.Equal(t, 1, summary.TotalDiscrepancies)
}
