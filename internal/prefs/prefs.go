// Package prefs maintains the persisted selection counters an external
// recommender reads: how often each flavor, base, and topping has been
// added to the cart. Counters survive restarts through a kv.Store; the
// cart flow never depends on persistence succeeding.
package prefs

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/nightscoops/shopcore/internal/kv"
	"github.com/nightscoops/shopcore/internal/menu"
)

// Storage keys, one per counter mapping. Each holds a JSON object of
// lowercase name to count.
const (
	FlavorHistoryKey  = "ns_flavor_history"
	BaseHistoryKey    = "ns_base_history"
	ToppingHistoryKey = "ns_topping_history"
)

// Stats is an external snapshot of all three counter mappings.
type Stats struct {
	Flavors  map[string]int `json:"flavors"`
	Bases    map[string]int `json:"bases"`
	Toppings map[string]int `json:"toppings"`
}

type Store struct {
	storage kv.Store

	mu       sync.RWMutex
	flavors  map[string]int
	bases    map[string]int
	toppings map[string]int
}

func NewStore(storage kv.Store) *Store {
	return &Store{
		storage:  storage,
		flavors:  make(map[string]int),
		bases:    make(map[string]int),
		toppings: make(map[string]int),
	}
}

// Load reads the three mappings from storage. Failures are isolated per
// mapping: a missing or corrupt entry resets only that mapping to empty.
// The joined error reports what was skipped; callers may ignore it.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	s.flavors = loadMapping(s.storage, FlavorHistoryKey, &errs)
	s.bases = loadMapping(s.storage, BaseHistoryKey, &errs)
	s.toppings = loadMapping(s.storage, ToppingHistoryKey, &errs)
	return errors.Join(errs...)
}

func loadMapping(storage kv.Store, key string, errs *[]error) map[string]int {
	empty := make(map[string]int)
	payload, err := storage.Get(key)
	if errors.Is(err, kv.ErrNotFound) {
		return empty
	}
	if err != nil {
		*errs = append(*errs, err)
		return empty
	}
	var m map[string]int
	if err := json.Unmarshal(payload, &m); err != nil {
		*errs = append(*errs, err)
		return empty
	}
	if m == nil {
		return empty
	}
	return m
}

// Record tallies one cart append: the flavor bucket, the base bucket (the
// default base when none is given), and one bucket per topping, all keyed
// by lowercase name. The mappings are then persisted; a write error is
// returned for the caller to drop.
func (s *Store) Record(flavor, base string, toppings []string) error {
	s.mu.Lock()
	s.flavors[strings.ToLower(flavor)]++
	if base == "" {
		base = menu.DefaultBase
	}
	s.bases[strings.ToLower(base)]++
	for _, t := range toppings {
		s.toppings[strings.ToLower(t)]++
	}
	s.mu.Unlock()

	return s.save()
}

func (s *Store) save() error {
	s.mu.RLock()
	entries := []struct {
		key string
		m   map[string]int
	}{
		{FlavorHistoryKey, s.flavors},
		{BaseHistoryKey, s.bases},
		{ToppingHistoryKey, s.toppings},
	}
	payloads := make(map[string][]byte, len(entries))
	var errs []error
	for _, e := range entries {
		raw, err := json.Marshal(e.m)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		payloads[e.key] = raw
	}
	s.mu.RUnlock()

	for key, raw := range payloads {
		if err := s.storage.Set(key, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FlavorHistory returns an independent copy of the flavor counters.
func (s *Store) FlavorHistory() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMapping(s.flavors)
}

// Snapshot returns independent copies of all three counter mappings.
func (s *Store) Snapshot() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Flavors:  copyMapping(s.flavors),
		Bases:    copyMapping(s.bases),
		Toppings: copyMapping(s.toppings),
	}
}

func copyMapping(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
