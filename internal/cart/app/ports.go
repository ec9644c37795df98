package app

import (
	"github.com/nightscoops/shopcore/internal/cart/domain"
	"github.com/nightscoops/shopcore/internal/pricing"
)

// View is the rendered surface the ledger keeps in sync. Every mutating
// operation calls Render before returning, so the surface never shows a
// stale cart. Pulse is the brief acknowledgment after an append; it has no
// state effect and implementations may ignore it.
type View interface {
	Render(lines []domain.Line, total pricing.Cents)
	Pulse()
}

// NopView satisfies View for callers that have no surface to drive.
type NopView struct{}

func (NopView) Render([]domain.Line, pricing.Cents) {}
func (NopView) Pulse()                              {}
