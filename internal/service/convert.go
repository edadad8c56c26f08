package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/clubledger/internal/aggregate"
	"github.com/mmynk/clubledger/internal/models"
	"github.com/mmynk/clubledger/internal/reconcile"
	"github.com/mmynk/clubledger/pkg/api"
)

func toQuantities(in map[string]int32) reconcile.Quantities {
	q := make(reconcile.Quantities, len(in))
	for id, qty := range in {
		q[id] = int(qty)
	}
	return q
}

func amount(d decimal.Decimal) string {
	return d.String()
}

// toAPIAttendance returns nil for a nil attendance. Rows of items missing
// from the plan keep an empty name.
func toAPIAttendance(att *models.Attendance, plan []models.PaymentItem) *api.Attendance {
	if att == nil {
		return nil
	}

	items := make(map[string]models.PaymentItem, len(plan))
	for _, item := range plan {
		items[item.ID] = item
	}

	out := &api.Attendance{
		ID:          att.ID,
		EventID:     att.EventID,
		AthleteID:   att.AthleteID,
		Confirmed:   att.Confirmed,
		ConfirmedAt: att.ConfirmedAt,
		Items:       make([]api.LedgerRow, 0, len(att.Items)),
	}
	for _, row := range att.Items {
		item := items[row.PaymentItemID]
		out.Items = append(out.Items, api.LedgerRow{
			PaymentItemID:     row.PaymentItemID,
			Name:              item.Name,
			Required:          item.Required,
			ConfirmedQuantity: int32(row.ConfirmedQuantity),
			PaidQuantity:      int32(row.PaidQuantity),
			Paid:              row.Paid,
			PaidAt:            row.PaidAt,
			HasDiscrepancy:    reconcile.HasDiscrepancy(row),
		})
	}
	return out
}

func toAPIEventSummary(s aggregate.EventSummary) *api.EventSummary {
	out := &api.EventSummary{
		EventID:           s.EventID,
		EventName:         s.EventName,
		ConfirmedAthletes: int32(s.ConfirmedAthletes),
		PaidAthletes:      int32(s.PaidAthletes),
		AmountReceived:    amount(s.AmountReceived),
		AmountExpected:    amount(s.AmountExpected),
		AmountPending:     amount(s.AmountPending),
		Discrepancies:     int32(s.Discrepancies),
		PaidItems:         make([]api.ItemTotal, 0, len(s.PaidItems)),
		Athletes:          make([]api.AthleteSummary, 0, len(s.Athletes)),
	}
	for _, total := range s.PaidItems {
		out.PaidItems = append(out.PaidItems, api.ItemTotal{
			Name:     total.Name,
			Quantity: int32(total.Quantity),
			Amount:   amount(total.Amount),
		})
	}
	for _, a := range s.Athletes {
		athlete := api.AthleteSummary{
			AthleteID:      a.AthleteID,
			AthleteName:    a.AthleteName,
			Confirmed:      a.Confirmed,
			AmountPaid:     amount(a.AmountPaid),
			HasDiscrepancy: a.HasDiscrepancy,
			Items:          make([]api.ItemActivity, 0, len(a.Items)),
		}
		for _, item := range a.Items {
			athlete.Items = append(athlete.Items, api.ItemActivity{
				PaymentItemID:     item.PaymentItemID,
				Name:              item.Name,
				ConfirmedQuantity: int32(item.ConfirmedQuantity),
				PaidQuantity:      int32(item.PaidQuantity),
				Paid:              item.Paid,
				HasDiscrepancy:    item.HasDiscrepancy,
			})
		}
		out.Athletes = append(out.Athletes, athlete)
	}
	return out
}

func toAPIOrganizationSummary(s aggregate.OrganizationSummary) *api.OrganizationSummary {
	out := &api.OrganizationSummary{
		OrganizationID:     s.OrganizationID,
		TotalExpected:      amount(s.TotalExpected),
		TotalReceived:      amount(s.TotalReceived),
		TotalPending:       amount(s.TotalPending),
		TotalDiscrepancies: int32(s.TotalDiscrepancies),
		Events:             make([]api.EventTotals, 0, len(s.Events)),
	}
	for _, ev := range s.Events {
		out.Events = append(out.Events, api.EventTotals{
			EventID:           ev.EventID,
			EventName:         ev.EventName,
			ConfirmedAthletes: int32(ev.ConfirmedAthletes),
			PaidAthletes:      int32(ev.PaidAthletes),
			Expected:          amount(ev.Expected),
			Received:          amount(ev.Received),
			Pending:           amount(ev.Pending),
			Discrepancies:     int32(ev.Discrepancies),
		})
	}
	return out
}

func toAPIChampionshipSummary(s aggregate.ChampionshipSummary) *api.ChampionshipSummary {
	out := &api.ChampionshipSummary{
		ChampionshipID: s.ChampionshipID,
		TotalConfirmed: int32(s.TotalConfirmed),
		TotalExpected:  amount(s.TotalExpected),
		TotalReceived:  amount(s.TotalReceived),
		TotalPending:   amount(s.TotalPending),
		Organizations:  make([]api.OrganizationTotals, 0, len(s.Organizations)),
	}
	for _, org := range s.Organizations {
		totals := api.OrganizationTotals{
			OrganizationID:    org.OrganizationID,
			OrganizationName:  org.OrganizationName,
			ConfirmedAthletes: int32(org.ConfirmedAthletes),
			Expected:          amount(org.Expected),
			Received:          amount(org.Received),
			Pending:           amount(org.Pending),
			Items:             make([]api.ExpectedItem, 0, len(org.Items)),
		}
		for _, item := range org.Items {
			totals.Items = append(totals.Items, api.ExpectedItem{
				Name:   item.Name,
				Fixed:  item.Fixed,
				Amount: amount(item.Amount),
			})
		}
		out.Organizations = append(out.Organizations, totals)
	}
	return out
}
