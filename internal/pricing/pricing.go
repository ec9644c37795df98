package pricing

import "fmt"

// Cents is a monetary amount in US cents. All pricing arithmetic happens on
// integer cents so line prices and totals are exact; formatting to dollars
// happens only at display time.
type Cents int64

const (
	// ExtraScoopSurcharge is added once when a line has a second scoop.
	ExtraScoopSurcharge Cents = 125
	// ToppingUnitPrice is added per selected topping.
	ToppingUnitPrice Cents = 50
	// DefaultBasePrice applies when a catalog item or the builder does not
	// carry its own price.
	DefaultBasePrice Cents = 350
)

// Quote prices a customized line. Inputs are pre-validated by callers:
// scoops is clamped to {1,2}, toppingCount and basePrice are non-negative.
func Quote(basePrice Cents, scoops, toppingCount int) Cents {
	price := basePrice
	if scoops > 1 {
		price += ExtraScoopSurcharge
	}
	price += Cents(toppingCount) * ToppingUnitPrice
	return price
}

// String formats the amount as US dollars with two decimals, e.g. "$5.75".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
