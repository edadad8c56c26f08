package aggregate

import "github.com/shopspring/decimal"

// EventTotals is the per-event line of an OrganizationSummary.
type EventTotals struct {
	EventID           string          `json:"event_id"`
	EventName         string          `json:"event_name"`
	ConfirmedAthletes int             `json:"confirmed_athletes"`
	PaidAthletes      int             `json:"paid_athletes"`
	Expected          decimal.Decimal `json:"expected"`
	Received          decimal.Decimal `json:"received"`
	Pending           decimal.Decimal `json:"pending"`
	Discrepancies     int             `json:"discrepancies"`
}

// OrganizationSummary rolls up every event of one organization.
type OrganizationSummary struct {
	OrganizationID     string          `json:"organization_id"`
	Events             []EventTotals   `json:"events"`
	TotalExpected      decimal.Decimal `json:"total_expected"`
	TotalReceived      decimal.Decimal `json:"total_received"`
	TotalPending       decimal.Decimal `json:"total_pending"`
	TotalDiscrepancies int             `json:"total_discrepancies"`
}

// SummarizeOrganization sums event summaries of one organization, keeping their order.
func SummarizeOrganization(organizationID string, events []EventSummary) OrganizationSummary {
	summary := OrganizationSummary{
		OrganizationID: organizationID,
		Events:         make([]EventTotals, 0, len(events)),
		TotalExpected:  decimal.Zero,
		TotalReceived:  decimal.Zero,
		TotalPending:   decimal.Zero,
	}

	for _, ev := range events {
		summary.Events = append(summary.Events, EventTotals{
			EventID:           ev.EventID,
			EventName:         ev.EventName,
			ConfirmedAthletes: ev.ConfirmedAthletes,
			PaidAthletes:      ev.PaidAthletes,
			Expected:          ev.AmountExpected,
			Received:          ev.AmountReceived,
			Pending:           ev.AmountPending,
			Discrepancies:     ev.Discrepancies,
		})
		summary.TotalExpected = summary.TotalExpected.Add(ev.AmountExpected)
		summary.TotalReceived = summary.TotalReceived.Add(ev.AmountReceived)
		summary.TotalPending = summary.TotalPending.Add(ev.AmountPending)
		summary.TotalDiscrepancies += ev.Discrepancies
	}

	return summary
}
