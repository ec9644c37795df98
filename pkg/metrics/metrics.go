package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Shop holds the counters the cart controller increments. A nil *Shop is
// valid and records nothing, so app code never needs to guard metric calls.
type Shop struct {
	registry *prometheus.Registry

	CartAppends    prometheus.Counter
	CartRemovals   prometheus.Counter
	CartClears     prometheus.Counter
	PrefsSaveFails prometheus.Counter
}

func New() *Shop {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Shop{
		registry: reg,
		CartAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_cart_appends_total",
			Help: "Lines appended to the cart.",
		}),
		CartRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_cart_removals_total",
			Help: "Lines removed from the cart.",
		}),
		CartClears: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_cart_clears_total",
			Help: "Cart clear operations.",
		}),
		PrefsSaveFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_prefs_save_failures_total",
			Help: "Preference persistence writes that were dropped.",
		}),
	}
	reg.MustRegister(m.CartAppends, m.CartRemovals, m.CartClears, m.PrefsSaveFails)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Shop) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Shop) IncAppend() {
	if m != nil {
		m.CartAppends.Inc()
	}
}

func (m *Shop) IncRemoval() {
	if m != nil {
		m.CartRemovals.Inc()
	}
}

func (m *Shop) IncClear() {
	if m != nil {
		m.CartClears.Inc()
	}
}

func (m *Shop) IncPrefsSaveFail() {
	if m != nil {
		m.PrefsSaveFails.Inc()
	}
}
