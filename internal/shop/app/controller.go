package app

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	cartapp "github.com/nightscoops/shopcore/internal/cart/app"
	cartdomain "github.com/nightscoops/shopcore/internal/cart/domain"
	"github.com/nightscoops/shopcore/internal/menu"
	"github.com/nightscoops/shopcore/internal/prefs"
	"github.com/nightscoops/shopcore/internal/pricing"
	"github.com/nightscoops/shopcore/internal/shop/domain"
	"github.com/nightscoops/shopcore/pkg/metrics"
)

// session is the currently open customization context. At most one exists;
// opening a new one silently discards the old.
type session struct {
	id        uuid.UUID
	selection domain.Selection
}

// Controller owns the shop's mutable state: the cart ledger, the preference
// counters, and the dialog session. A UI binding layer invokes its methods
// in response to user gestures; all business rules live here so the flows
// are testable without a rendering surface.
//
// Methods serialize on an internal mutex so concurrent HTTP handlers keep
// the run-to-completion semantics of a single-actor event loop.
type Controller struct {
	mu      sync.Mutex
	cart    *cartapp.Service
	prefs   *prefs.Store
	session *session
	log     *slog.Logger
	metrics *metrics.Shop
}

func NewController(cart *cartapp.Service, prefStore *prefs.Store, log *slog.Logger, m *metrics.Shop) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		cart:    cart,
		prefs:   prefStore,
		log:     log,
		metrics: m,
	}
}

// OpenCustomize starts a dialog session for the selected catalog item,
// replacing any unconfirmed session, and returns the fresh session id.
// A missing price falls back to the catalog default. The form resets to
// defaults on open.
func (c *Controller) OpenCustomize(sel domain.Selection) uuid.UUID {
	if sel.BasePrice <= 0 {
		sel.BasePrice = pricing.DefaultBasePrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		c.log.Debug("replacing open customization session",
			slog.String("prior_session_id", c.session.id.String()),
			slog.String("prior_item", c.session.selection.Name),
			slog.String("item", sel.Name))
	}
	c.session = &session{id: uuid.New(), selection: sel}

	c.log.Debug("customization session opened",
		slog.String("session_id", c.session.id.String()),
		slog.String("item", sel.Name))
	return c.session.id
}

// Confirm prices the dialog's form against the current selection, appends
// the resulting line, and closes the session. With no open session it does
// nothing and reports false; that state is unreachable through normal UI
// flow and is not an error.
func (c *Controller) Confirm(form domain.CustomizeForm) (cartdomain.Line, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return cartdomain.Line{}, false
	}
	sel := c.session.selection
	c.session = nil

	base := form.Base
	if base == "" {
		base = menu.FirstBase()
	}
	scoops := menu.ClampScoops(form.Scoops)

	line := cartdomain.Line{
		Name:     sel.Name,
		Base:     base,
		Scoops:   scoops,
		Toppings: form.Toppings,
		Notes:    strings.TrimSpace(form.Notes),
		Price:    pricing.Quote(sel.BasePrice, scoops, len(form.Toppings)),
	}
	return c.addLocked(line), true
}

// Cancel discards the open session without touching the cart. Explicit
// close and backdrop dismissal both land here.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// DialogOpen reports whether a customization session is active and, if so,
// its id and the selected item's name.
func (c *Controller) DialogOpen() (uuid.UUID, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return uuid.Nil, "", false
	}
	return c.session.id, c.session.selection.Name, true
}

// SubmitBuilder assembles a line directly from the builder form, bypassing
// the dialog. Missing fields take the documented defaults; a second flavor
// bumps the scoop count and composes the display name.
func (c *Controller) SubmitBuilder(form domain.BuilderForm) cartdomain.Line {
	base := form.Base
	if base == "" {
		base = menu.DefaultBase
	}
	flavor1 := form.Flavor1
	if flavor1 == "" {
		flavor1 = menu.DefaultFlavor
	}

	scoops := 1
	name := flavor1
	if form.Flavor2 != "" {
		scoops = 2
		name = flavor1 + " + " + form.Flavor2
	}

	line := cartdomain.Line{
		Name:     name + " (Custom)",
		Base:     base,
		Scoops:   scoops,
		Toppings: form.Toppings,
		Notes:    form.Notes,
		Price:    pricing.Quote(pricing.DefaultBasePrice, scoops, len(form.Toppings)),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(line)
}

// AddToCart appends a fully formed line, records the preference counters,
// and refreshes the view. Any entry point, internal or external, lands on
// this operation.
func (c *Controller) AddToCart(line cartdomain.Line) cartdomain.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addLocked(line)
}

func (c *Controller) addLocked(line cartdomain.Line) cartdomain.Line {
	stored := c.cart.Append(line)
	c.metrics.IncAppend()

	// Preference persistence is best effort: a failed write must never
	// block or surface in the cart flow.
	if err := c.prefs.Record(stored.Name, stored.Base, stored.Toppings); err != nil {
		c.metrics.IncPrefsSaveFail()
		c.log.Warn("preference counters not persisted", slog.Any("err", err))
	}

	c.log.Info("line added",
		slog.Int64("line_id", int64(stored.ID)),
		slog.String("name", stored.Name),
		slog.String("price", stored.Price.String()))
	return stored
}

// RemoveLine removes by stable id; unknown ids are a no-op.
func (c *Controller) RemoveLine(id cartdomain.LineID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := c.cart.Remove(id)
	if removed {
		c.metrics.IncRemoval()
	}
	return removed
}

// RemoveLineAt removes by current display position; out of range is a no-op.
func (c *Controller) RemoveLineAt(pos int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := c.cart.RemoveAt(pos)
	if removed {
		c.metrics.IncRemoval()
	}
	return removed
}

// ClearCart empties the ledger.
func (c *Controller) ClearCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Clear()
	c.metrics.IncClear()
}

// CartLines returns the ledger contents in display order.
func (c *Controller) CartLines() []cartdomain.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Lines()
}

// CartTotal returns the running total.
func (c *Controller) CartTotal() pricing.Cents {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Total()
}

// FlavorHistory exposes a copy of the flavor counters for the recommender.
func (c *Controller) FlavorHistory() map[string]int {
	return c.prefs.FlavorHistory()
}

// PreferenceStats exposes copies of all three counter mappings.
func (c *Controller) PreferenceStats() prefs.Stats {
	return c.prefs.Snapshot()
}
