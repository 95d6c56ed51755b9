package store

import (
	"log/slog"

	"flowstate/internal/domain"
	"flowstate/internal/idgen"
)

// Option is a functional option for configuring a Store
type Option func(*Store)

// WithInitialGraph replaces the seed triangle with fragment's nodes and edges
func WithInitialGraph(fragment *domain.GraphFragment) Option {
	return func(s *Store) {
		if fragment != nil {
			s.state = fragment.State()
		}
	}
}

// WithIDGenerator sets the strategy used by AddNewNode
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Store) {
		s.ids = gen
	}
}

// WithPlacement sets where AddNewNode puts new nodes
func WithPlacement(p Placement) Option {
	return func(s *Store) {
		s.placement = p
	}
}

// WithZoomBounds clamps zoom to [lo, hi] for every zoom-changing operation.
// A zero or inverted range leaves zoom unbounded.
func WithZoomBounds(lo, hi float64) Option {
	return func(s *Store) {
		if lo > 0 && hi >= lo {
			s.zoom = zoomBounds{lo: lo, hi: hi, set: true}
		}
	}
}

// WithLogger sets the logger for mutation traces
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
