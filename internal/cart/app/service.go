package app

import (
	"github.com/nightscoops/shopcore/internal/cart/domain"
	"github.com/nightscoops/shopcore/internal/pricing"
)

// Service is the cart ledger: an ordered sequence of lines, display order
// equal to insertion order. Cart contents live only in memory; losing the
// cart on restart is intended.
type Service struct {
	view   View
	lines  []domain.Line
	nextID domain.LineID
}

func NewService(view View) *Service {
	if view == nil {
		view = NopView{}
	}
	return &Service{view: view, nextID: 1}
}

// Append adds the line at the end of the ledger, assigning its LineID.
// It always succeeds and returns the stored line.
func (s *Service) Append(line domain.Line) domain.Line {
	line = line.Clone()
	line.ID = s.nextID
	s.nextID++
	s.lines = append(s.lines, line)
	s.render()
	s.view.Pulse()
	return line
}

// Remove deletes the line with the given id. Unknown ids are a no-op; the
// return value reports whether anything was removed.
func (s *Service) Remove(id domain.LineID) bool {
	for i, l := range s.lines {
		if l.ID == id {
			return s.removeIndex(i)
		}
	}
	return false
}

// RemoveAt deletes the line at the given zero-based display position.
// Out-of-range positions are a no-op.
func (s *Service) RemoveAt(pos int) bool {
	if pos < 0 || pos >= len(s.lines) {
		return false
	}
	return s.removeIndex(pos)
}

func (s *Service) removeIndex(i int) bool {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.render()
	return true
}

// Clear empties the ledger unconditionally.
func (s *Service) Clear() {
	s.lines = s.lines[:0]
	s.render()
}

// Total sums the line prices.
func (s *Service) Total() pricing.Cents {
	var total pricing.Cents
	for _, l := range s.lines {
		total += l.Price
	}
	return total
}

// Lines returns an independent copy of the ledger in display order.
func (s *Service) Lines() []domain.Line {
	out := make([]domain.Line, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l.Clone())
	}
	return out
}

func (s *Service) Len() int { return len(s.lines) }

func (s *Service) render() {
	s.view.Render(s.Lines(), s.Total())
}
