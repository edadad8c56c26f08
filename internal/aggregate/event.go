// Package aggregate folds attendance ledgers into read-side financial summaries.
// Summaries are recomputed on demand from one batched read; nothing here is
// maintained incrementally.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/reconcile"
)

// ItemActivity is one active ledger row as shown in an athlete breakdown.
type ItemActivity struct {
	PaymentItemID     string `json:"payment_item_id"`
	Name              string `json:"name"`
	ConfirmedQuantity int    `json:"confirmed_quantity"`
	PaidQuantity      int    `json:"paid_quantity"`
	Paid              bool   `json:"paid"`
	HasDiscrepancy    bool   `json:"has_discrepancy"`
}

// AthleteBreakdown is one athlete's position for an event.
type AthleteBreakdown struct {
	AthleteID   string          `json:"athlete_id"`
	AthleteName string          `json:"athlete_name"`
	Confirmed   bool            `json:"confirmed"`
	ConfirmedAt int64           `json:"confirmed_at,omitempty"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`

	// Items lists rows with any activity. Fixed items are never shown to athletes.
	Items []ItemActivity `json:"items"`

	// HasDiscrepancy is true if any listed item has a discrepancy.
	HasDiscrepancy bool `json:"has_discrepancy"`
}

// ItemTotal sums paid quantities for one item name.
type ItemTotal struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// EventSummary is the financial picture of one event.
type EventSummary struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`

	// ConfirmedAthletes counts attendances with Confirmed set.
	ConfirmedAthletes int `json:"confirmed_athletes"`

	// PaidAthletes counts attendances with at least one paid row.
	PaidAthletes int `json:"paid_athletes"`

	// AmountReceived is the sum of value x paid quantity over paid rows.
	AmountReceived decimal.Decimal `json:"amount_received"`

	// AmountExpected is the sum of value x confirmed quantity over active per-athlete rows.
	AmountExpected decimal.Decimal `json:"amount_expected"`

	// AmountPending is AmountExpected - AmountReceived. Negative when overpaid.
	AmountPending decimal.Decimal `json:"amount_pending"`

	// PaidItems groups paid rows by item name, in plan order.
	PaidItems []ItemTotal `json:"paid_items"`

	// Discrepancies counts athletes with at least one discrepant item.
	Discrepancies int `json:"discrepancies"`

	Athletes []AthleteBreakdown `json:"athletes"`
}

// SummarizeEvent folds every attendance of an event, with its ledger rows, into an EventSummary.
// Rows pointing at items absent from the plan are ignored. athleteNames may be nil.
func SummarizeEvent(event models.Event, plan []models.PaymentItem, attendances []models.Attendance, athleteNames map[string]string) EventSummary {
	items := make(map[string]models.PaymentItem, len(plan))
	for _, item := range plan {
		items[item.ID] = item
	}

	summary := EventSummary{
		EventID:        event.ID,
		EventName:      event.Name,
		AmountReceived: decimal.Zero,
		AmountExpected: decimal.Zero,
		Athletes:       make([]AthleteBreakdown, 0, len(attendances)),
	}

	paidByName := make(map[string]*ItemTotal)

	for _, att := range attendances {
		breakdown := AthleteBreakdown{
			AthleteID:   att.AthleteID,
			AthleteName: athleteNames[att.AthleteID],
			Confirmed:   att.Confirmed,
			ConfirmedAt: att.ConfirmedAt,
			AmountPaid:  decimal.Zero,
			Items:       []ItemActivity{},
		}
		if att.Confirmed {
			summary.ConfirmedAthletes++
		}

		anyPaid := false
		for _, row := range att.Items {
			if row.Paid {
				anyPaid = true
			}

			item, ok := items[row.PaymentItemID]
			if !ok {
				continue
			}

			if row.Paid {
				amount := item.Value.Mul(decimal.NewFromInt(int64(row.PaidQuantity)))
				summary.AmountReceived = summary.AmountReceived.Add(amount)
				breakdown.AmountPaid = breakdown.AmountPaid.Add(amount)

				total, exists := paidByName[item.Name]
				if !exists {
					total = &ItemTotal{Name: item.Name, Amount: decimal.Zero}
					paidByName[item.Name] = total
				}
				total.Quantity += row.PaidQuantity
				total.Amount = total.Amount.Add(amount)
			}

			if item.IsFixed || !reconcile.HasActivity(row) {
				continue
			}

			summary.AmountExpected = summary.AmountExpected.Add(
				item.Value.Mul(decimal.NewFromInt(int64(row.ConfirmedQuantity))),
			)

			discrepant := reconcile.HasDiscrepancy(row)
			breakdown.Items = append(breakdown.Items, ItemActivity{
				PaymentItemID:     item.ID,
				Name:              item.Name,
				ConfirmedQuantity: row.ConfirmedQuantity,
				PaidQuantity:      row.PaidQuantity,
				Paid:              row.Paid,
				HasDiscrepancy:    discrepant,
			})
			if discrepant {
				breakdown.HasDiscrepancy = true
			}
		}

		if anyPaid {
			summary.PaidAthletes++
		}
		if breakdown.HasDiscrepancy {
			summary.Discrepancies++
		}
		sortByPlan(breakdown.Items, plan)
		summary.Athletes = append(summary.Athletes, breakdown)
	}

	summary.AmountPending = summary.AmountExpected.Sub(summary.AmountReceived)

	summary.PaidItems = []ItemTotal{}
	seen := make(map[string]bool)
	for _, item := range plan {
		if total, ok := paidByName[item.Name]; ok && !seen[item.Name] {
			seen[item.Name] = true
			summary.PaidItems = append(summary.PaidItems, *total)
		}
	}

	sort.SliceStable(summary.Athletes, func(i, j int) bool {
		a, b := summary.Athletes[i], summary.Athletes[j]
		if a.AthleteName != b.AthleteName {
			return a.AthleteName < b.AthleteName
		}
		return a.AthleteID < b.AthleteID
	})

	return summary
}

// sortByPlan orders activities by the position of their item in the plan.
func sortByPlan(activities []ItemActivity, plan []models.PaymentItem) {
	index := make(map[string]int, len(plan))
	for i, item := range plan {
		index[item.ID] = i
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return index[activities[i].PaymentItemID] < index[activities[j].PaymentItemID]
	})
}
