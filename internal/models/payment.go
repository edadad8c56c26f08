package models

import "github.com/shopspring/decimal"

// Payment is a payable definition attached to an event, a championship,
// or neither (ad-hoc payments scoped to a category).
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// Name is the display name (e.g., "Regional Meet Fees").
	Name string

	// DueDate is the Unix timestamp when payment is due. Zero if unset.
	DueDate int64

	// Items are the payable line items, in display order.
	Items []PaymentItem

	// EventID links the payment to an event. Empty if not event-scoped.
	EventID string

	// ChampionshipID links the payment to a championship. Empty if not championship-scoped.
	// A payment never carries both EventID and ChampionshipID.
	ChampionshipID string

	// CategoryID restricts the payment to athletes of one category. Empty means all.
	CategoryID string

	// CreatedAt is the Unix timestamp when the payment was created.
	CreatedAt int64
}

// PaymentItem is one line of a Payment (inscription fee, café, transport...).
type PaymentItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// PaymentID is the owning payment.
	PaymentID string

	// Name is the label shown to athletes and staff.
	Name string

	// Value is the unit price.
	Value decimal.Decimal

	// QuantityEnabled allows athletes to request more than one unit.
	QuantityEnabled bool

	// Required items must be confirmed and paid with quantity >= 1.
	Required bool

	// IsFixed marks an organization-level cost. Fixed items are hidden from
	// per-athlete views and split evenly across organizations in championship totals.
	IsFixed bool

	// Position orders items inside the payment.
	Position int
}

// RequiredItems returns the items flagged as required, in plan order.
func (p *Payment) RequiredItems() []PaymentItem {
	var required []PaymentItem
	for _, item := range p.Items {
		if item.Required {
			required = append(required, item)
		}
	}
	return required
}

// ItemByID returns the item with the given ID, or false if absent.
func (p *Payment) ItemByID(id string) (PaymentItem, bool) {
	for _, item := range p.Items {
		if item.ID == id {
			return item, true
		}
	}
	return PaymentItem{}, false
}
