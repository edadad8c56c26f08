package api

// Amounts are decimal strings ("210", "12.50").

type ItemActivity struct {
	PaymentItemID     string `json:"payment_item_id"`
	Name              string `json:"name"`
	ConfirmedQuantity int32  `json:"confirmed_quantity"`
	PaidQuantity      int32  `json:"paid_quantity"`
	Paid              bool   `json:"paid"`
	HasDiscrepancy    bool   `json:"has_discrepancy"`
}

type AthleteSummary struct {
	AthleteID      string         `json:"athlete_id"`
	AthleteName    string         `json:"athlete_name"`
	Confirmed      bool           `json:"confirmed"`
	AmountPaid     string         `json:"amount_paid"`
	Items          []ItemActivity `json:"items"`
	HasDiscrepancy bool           `json:"has_discrepancy"`
}

type ItemTotal struct {
	Name     string `json:"name"`
	Quantity int32  `json:"quantity"`
	Amount   string `json:"amount"`
}

type EventSummary struct {
	EventID           string           `json:"event_id"`
	EventName         string           `json:"event_name"`
	ConfirmedAthletes int32            `json:"confirmed_athletes"`
	PaidAthletes      int32            `json:"paid_athletes"`
	AmountReceived    string           `json:"amount_received"`
	AmountExpected    string           `json:"amount_expected"`
	AmountPending     string           `json:"amount_pending"`
	PaidItems         []ItemTotal      `json:"paid_items"`
	Discrepancies     int32            `json:"discrepancies"`
	Athletes          []AthleteSummary `json:"athletes"`
}

type EventTotals struct {
	EventID           string `json:"event_id"`
	EventName         string `json:"event_name"`
	ConfirmedAthletes int32  `json:"confirmed_athletes"`
	PaidAthletes      int32  `json:"paid_athletes"`
	Expected          string `json:"expected"`
	Received          string `json:"received"`
	Pending           string `json:"pending"`
	Discrepancies     int32  `json:"discrepancies"`
}

type OrganizationSummary struct {
	OrganizationID     string        `json:"organization_id"`
	Events             []EventTotals `json:"events"`
	TotalExpected      string        `json:"total_expected"`
	TotalReceived      string        `json:"total_received"`
	TotalPending       string        `json:"total_pending"`
	TotalDiscrepancies int32         `json:"total_discrepancies"`
}

type ExpectedItem struct {
	Name   string `json:"name"`
	Fixed  bool   `json:"fixed"`
	Amount string `json:"amount"`
}

type OrganizationTotals struct {
	OrganizationID    string         `json:"organization_id"`
	OrganizationName  string         `json:"organization_name"`
	ConfirmedAthletes int32          `json:"confirmed_athletes"`
	Expected          string         `json:"expected"`
	Received          string         `json:"received"`
	Pending           string         `json:"pending"`
	Items             []ExpectedItem `json:"items"`
}

type ChampionshipSummary struct {
	ChampionshipID string               `json:"championship_id"`
	Organizations  []OrganizationTotals `json:"organizations"`
	TotalConfirmed int32                `json:"total_confirmed"`
	TotalExpected  string               `json:"total_expected"`
	TotalReceived  string               `json:"total_received"`
	TotalPending   string               `json:"total_pending"`
}

type GetEventSummaryRequest struct {
	EventID string `json:"event_id"`
}

type GetEventSummaryResponse struct {
	Summary *EventSummary `json:"summary"`
}

type GetOrganizationSummaryRequest struct {
	OrganizationID string `json:"organization_id"`
}

type GetOrganizationSummaryResponse struct {
	Summary *OrganizationSummary `json:"summary"`
}

type GetChampionshipSummaryRequest struct {
	ChampionshipID string `json:"championship_id"`
}

type GetChampionshipSummaryResponse struct {
	Summary *ChampionshipSummary `json:"summary"`
}
