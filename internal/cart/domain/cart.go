package domain

import "github.com/nightscoops/shopcore/internal/pricing"

// LineID identifies a cart line for its whole lifetime. IDs are assigned in
// increasing order at append time and never reused, so a removal request
// can never hit the wrong line after the cart reorders or shrinks.
// Display position is presentation only.
type LineID int64

// Line is one priced, customized item. Immutable once appended; the
// correction path is remove and re-add.
type Line struct {
	ID       LineID        `json:"id"`
	Name     string        `json:"name"`
	Base     string        `json:"base"`
	Scoops   int           `json:"scoops"`
	Toppings []string      `json:"toppings"`
	Notes    string        `json:"notes,omitempty"`
	Price    pricing.Cents `json:"price_cents"`
}

// Clone returns a copy whose toppings slice is independent of the receiver.
func (l Line) Clone() Line {
	cp := l
	if l.Toppings != nil {
		cp.Toppings = make([]string, len(l.Toppings))
		copy(cp.Toppings, l.Toppings)
	}
	return cp
}
