// Package menu holds the fixed storefront data the customization flow is
// built around: the base vessels, the topping catalog, and the documented
// fallbacks for the builder form.
package menu

// Bases in display order. The first entry is the dialog's default.
var Bases = []string{
	"Waffle Cone",
	"Sugar Cone",
	"Waffle Bowl",
	"Cup",
}

// Toppings offered by the customization dialog and the builder checklist.
// Submissions are not validated against this list: an out-of-band topping
// string is accepted and priced like any other.
var Toppings = []string{
	"Sprinkles",
	"Hot Fudge",
	"Whipped Cream",
	"Cherries",
	"Oreo Crumbles",
	"Caramel",
	"M&Ms",
	"Chocolate Chips",
	"Marshmallows",
}

const (
	// DefaultBase is the fallback bucket when a line carries no base.
	DefaultBase = "Cup"
	// DefaultFlavor is the builder's fallback first scoop.
	DefaultFlavor = "Vanilla"

	MinScoops = 1
	MaxScoops = 2
)

// FirstBase returns the dialog's default base selection.
func FirstBase() string { return Bases[0] }

// ClampScoops forces a scoop count into the supported range.
func ClampScoops(n int) int {
	if n < MinScoops {
		return MinScoops
	}
	if n > MaxScoops {
		return MaxScoops
	}
	return n
}
