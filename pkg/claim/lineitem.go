package claim

import "github.com/pkg/errors"

// LineItem is one priced Xactimate-style entry on a claim estimate.
type LineItem struct {
	code        string
	description string
	quantity    float64
	unit        string
	unitPrice   Money
	total       Money
	category    string // optional caller-supplied override of the classifier's category
	room        string // room name this item applies to, may be empty
	days        *int   // set only for rental equipment
}

// LineItemInput is the set of fields accepted by NewLineItem.
type LineItemInput struct {
	Code        string
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   Money
	Total       *Money // nil means derive as Quantity * UnitPrice
	Category    string
	Room        string
	Days        *int
}

// NewLineItem validates and constructs a LineItem, deriving Total from
// Quantity and UnitPrice when absent.
func NewLineItem(in LineItemInput) (LineItem, error) {
	if in.Code == "" {
		return LineItem{}, errors.New("line item: code is required")
	}
	if in.Quantity < 0 {
		return LineItem{}, errors.Errorf("line item %q: quantity must be >= 0, got %v", in.Code, in.Quantity)
	}
	if in.UnitPrice.IsNegative() {
		return LineItem{}, errors.Errorf("line item %q: unit_price must be >= 0, got %s", in.Code, in.UnitPrice.String())
	}
	if in.Days != nil && *in.Days < 0 {
		return LineItem{}, errors.Errorf("line item %q: days must be >= 0, got %d", in.Code, *in.Days)
	}

	total := in.UnitPrice.Mul(NewMoney(in.Quantity))
	if in.Total != nil {
		total = *in.Total
	}

	return LineItem{
		code:        in.Code,
		description: in.Description,
		quantity:    in.Quantity,
		unit:        in.Unit,
		unitPrice:   in.UnitPrice,
		total:       total,
		category:    in.Category,
		room:        in.Room,
		days:        in.Days,
	}, nil
}

// Code returns the item's Xactimate-style code.
func (li LineItem) Code() string { return li.code }

// Description returns the item's free-text description.
func (li LineItem) Description() string { return li.description }

// Quantity returns the item's quantity.
func (li LineItem) Quantity() float64 { return li.quantity }

// Unit returns the item's unit of measure (e.g. "SF", "EA", "DA").
func (li LineItem) Unit() string { return li.unit }

// UnitPrice returns the item's per-unit price.
func (li LineItem) UnitPrice() Money { return li.unitPrice }

// Total returns the item's line total, stored or derived.
func (li LineItem) Total() Money { return li.total }

// Category returns the caller-supplied category override, or "" if the
// classifier should determine it from Code/Description.
func (li LineItem) Category() string { return li.category }

// Room returns the room this item applies to, or "" if unspecified.
func (li LineItem) Room() string { return li.room }

// Days returns the number of rental days for this item, and whether it
// was set. Unset for non-equipment items.
func (li LineItem) Days() (int, bool) {
	if li.days == nil {
		return 0, false
	}
	return *li.days, true
}

// DaysOrQuantity returns Days when set, else Quantity unchanged.
// Several water-remediation rules compare "days if set else
// quantity" across equipment line items.
func (li LineItem) DaysOrQuantity() float64 {
	if li.days != nil {
		return float64(*li.days)
	}
	return li.quantity
}

// Text is the concatenation the classifier matches against: code,
// a space, and description.
func (li LineItem) Text() string {
	return li.code + " " + li.description
}
