package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/clubledger/internal/models"
)

// OrganizationEntries is the number of confirmed athletes an organization
// entered into a championship.
type OrganizationEntries struct {
	OrganizationID    string
	OrganizationName  string
	ConfirmedAthletes int
}

// ExpectedItem is one item's contribution to an organization's expected total.
type ExpectedItem struct {
	Name   string          `json:"name"`
	Fixed  bool            `json:"fixed"`
	Amount decimal.Decimal `json:"amount"`
}

// OrganizationTotals is expected versus received money for one organization.
type OrganizationTotals struct {
	OrganizationID    string          `json:"organization_id"`
	OrganizationName  string          `json:"organization_name"`
	ConfirmedAthletes int             `json:"confirmed_athletes"`
	Expected          decimal.Decimal `json:"expected"`
	Received          decimal.Decimal `json:"received"`
	Pending           decimal.Decimal `json:"pending"`
	Items             []ExpectedItem  `json:"items"`
}

// ChampionshipSummary is the championship-wide rollup.
type ChampionshipSummary struct {
	ChampionshipID string               `json:"championship_id"`
	Organizations  []OrganizationTotals `json:"organizations"`
	TotalConfirmed int                  `json:"total_confirmed"`
	TotalExpected  decimal.Decimal      `json:"total_expected"`
	TotalReceived  decimal.Decimal      `json:"total_received"`
	TotalPending   decimal.Decimal      `json:"total_pending"`
}

// SplitFixedCost spreads an organization-level cost across the participating
// organizations in cents. The first share absorbs the rounding remainder so the
// shares always sum to value. Zero organizations yields no shares.
func SplitFixedCost(value decimal.Decimal, organizations int) []decimal.Decimal {
	if organizations <= 0 {
		return nil
	}
	n := decimal.NewFromInt(int64(organizations))
	base := value.Div(n).Truncate(2)
	shares := make([]decimal.Decimal, organizations)
	for i := range shares {
		shares[i] = base
	}
	shares[0] = base.Add(value.Sub(base.Mul(n)))
	return shares
}

// PerAthleteCost is the expected amount of a non-fixed item for an organization.
// QuantityEnabled does not scale it: expected cost is one unit per confirmed athlete.
func PerAthleteCost(value decimal.Decimal, confirmedAthletes int) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(int64(confirmedAthletes)))
}

// CountConfirmedByOrganization groups championship entries per organization.
// Every organization with an entry participates, even with zero confirmed athletes.
// The result is ordered by organization name, then ID.
func CountConfirmedByOrganization(entries []models.ChampionshipEntry) []OrganizationEntries {
	byOrg := make(map[string]*OrganizationEntries)
	for _, e := range entries {
		org, ok := byOrg[e.OrganizationID]
		if !ok {
			org = &OrganizationEntries{OrganizationID: e.OrganizationID, OrganizationName: e.OrganizationName}
			byOrg[e.OrganizationID] = org
		}
		if e.Confirmed {
			org.ConfirmedAthletes++
		}
	}

	result := make([]OrganizationEntries, 0, len(byOrg))
	for _, org := range byOrg {
		result = append(result, *org)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OrganizationName != result[j].OrganizationName {
			return result[i].OrganizationName < result[j].OrganizationName
		}
		return result[i].OrganizationID < result[j].OrganizationID
	})
	return result
}

// SummarizeChampionship computes each organization's expected total from the
// championship payment plan. Received tracking for championships is not
// recorded yet, so Received is zero and Pending equals Expected.
func SummarizeChampionship(championshipID string, plan []models.PaymentItem, orgs []OrganizationEntries) ChampionshipSummary {
	summary := ChampionshipSummary{
		ChampionshipID: championshipID,
		Organizations:  make([]OrganizationTotals, 0, len(orgs)),
		TotalExpected:  decimal.Zero,
		TotalReceived:  decimal.Zero,
		TotalPending:   decimal.Zero,
	}

	fixedShares := make(map[string][]decimal.Decimal)
	for _, item := range plan {
		if item.IsFixed {
			fixedShares[item.ID] = SplitFixedCost(item.Value, len(orgs))
		}
	}

	for i, org := range orgs {
		totals := OrganizationTotals{
			OrganizationID:    org.OrganizationID,
			OrganizationName:  org.OrganizationName,
			ConfirmedAthletes: org.ConfirmedAthletes,
			Expected:          decimal.Zero,
			Received:          decimal.Zero,
			Items:             make([]ExpectedItem, 0, len(plan)),
		}

		for _, item := range plan {
			var amount decimal.Decimal
			if item.IsFixed {
				amount = fixedShares[item.ID][i]
			} else {
				amount = PerAthleteCost(item.Value, org.ConfirmedAthletes)
			}
			totals.Expected = totals.Expected.Add(amount)
			totals.Items = append(totals.Items, ExpectedItem{Name: item.Name, Fixed: item.IsFixed, Amount: amount})
		}
		totals.Pending = totals.Expected.Sub(totals.Received)

		summary.TotalConfirmed += totals.ConfirmedAthletes
		summary.TotalExpected = summary.TotalExpected.Add(totals.Expected)
		summary.TotalReceived = summary.TotalReceived.Add(totals.Received)
		summary.TotalPending = summary.TotalPending.Add(totals.Pending)
		summary.Organizations = append(summary.Organizations, totals)
	}

	return summary
}
