package domain

import "github.com/nightscoops/shopcore/internal/pricing"

// Selection is the transient handoff from a catalog trigger to the
// customization dialog: which item was chosen and at what base price.
// Consumed once when the dialog opens; never persisted.
type Selection struct {
	Name      string
	BasePrice pricing.Cents
}

// CustomizeForm carries the dialog's form values at confirm time.
type CustomizeForm struct {
	Base     string
	Scoops   int
	Toppings []string
	Notes    string
}

// BuilderForm carries the standalone builder's form values at submit time.
// Any field may be missing; the controller substitutes documented defaults
// so the path never fails.
type BuilderForm struct {
	Base     string
	Flavor1  string
	Flavor2  string
	Toppings []string
	Notes    string
}
