package change

import (
	"slices"

	"flowstate/internal/domain"
)

// record is implemented by domain.Node and domain.Edge
type record interface {
	RecordID() string
}

// sequence is the working copy a batch is applied to
type sequence[T record] struct {
	items []T
}

func newSequence[T record](items []T) *sequence[T] {
	working := make([]T, len(items), len(items)+1)
	copy(working, items)
	return &sequence[T]{items: working}
}

func (s *sequence[T]) index(id string) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return item.RecordID() == id
	})
}

// add appends item, inserts it at *at, or overwrites an existing record with
// the same id in place
func (s *sequence[T]) add(item T, at *int) {
	if i := s.index(item.RecordID()); i >= 0 {
		s.items[i] = item
		return
	}
	if at == nil {
		s.items = append(s.items, item)
		return
	}
	i := min(max(*at, 0), len(s.items))
	s.items = slices.Insert(s.items, i, item)
}

func (s *sequence[T]) remove(id string) {
	if i := s.index(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
}

func (s *sequence[T]) replace(id string, item T) {
	if i := s.index(id); i >= 0 {
		s.items[i] = item
	}
}

// update rewrites the record with id through fn; fn receives a copy
func (s *sequence[T]) update(id string, fn func(T) T) {
	if i := s.index(id); i >= 0 {
		s.items[i] = fn(s.items[i])
	}
}

// ApplyNodeChanges applies changes to nodes in order and returns the new
// sequence. nodes is not modified. On error no result is returned.
func ApplyNodeChanges(changes []NodeChange, nodes []domain.Node) ([]domain.Node, error) {
	seq := newSequence(nodes)
	for i, c := range changes {
		if err := applyNodeChange(seq, c); err != nil {
			return nil, &BatchError{Index: i, Kind: c.Kind, ID: c.TargetID(), Err: err}
		}
	}
	return seq.items, nil
}

func applyNodeChange(seq *sequence[domain.Node], c NodeChange) error {
	switch c.Kind {
	case KindAdd:
		if c.Item == nil {
			return ErrMalformedChange
		}
		seq.add(*c.Item, c.Index)

	case KindRemove:
		seq.remove(c.ID)

	case KindReplace:
		if c.Item == nil {
			return ErrMalformedChange
		}
		item := *c.Item
		item.ID = c.ID
		seq.replace(c.ID, item)

	case KindPosition:
		seq.update(c.ID, func(n domain.Node) domain.Node {
			if c.Position != nil {
				n.Position = *c.Position
			}
			n.Dragging = c.Dragging
			return n
		})

	case KindDimensions:
		if c.Dimensions == nil {
			return ErrMalformedChange
		}
		seq.update(c.ID, func(n domain.Node) domain.Node {
			return n.WithMeasured(*c.Dimensions)
		})

	case KindSelect:
		seq.update(c.ID, func(n domain.Node) domain.Node {
			n.Selected = c.Selected
			return n
		})

	default:
		return ErrUnsupportedChangeKind
	}
	return nil
}

// ApplyEdgeChanges applies changes to edges in order and returns the new
// sequence. edges is not modified. On error no result is returned.
func ApplyEdgeChanges(changes []EdgeChange, edges []domain.Edge) ([]domain.Edge, error) {
	seq := newSequence(edges)
	for i, c := range changes {
		if err := applyEdgeChange(seq, c); err != nil {
			return nil, &BatchError{Index: i, Kind: c.Kind, ID: c.TargetID(), Err: err}
		}
	}
	return seq.items, nil
}

func applyEdgeChange(seq *sequence[domain.Edge], c EdgeChange) error {
	switch c.Kind {
	case KindAdd:
		if c.Item == nil {
			return ErrMalformedChange
		}
		seq.add(*c.Item, c.Index)

	case KindRemove:
		seq.remove(c.ID)

	case KindReplace:
		if c.Item == nil {
			return ErrMalformedChange
		}
		item := *c.Item
		item.ID = c.ID
		seq.replace(c.ID, item)

	case KindSelect:
		seq.update(c.ID, func(e domain.Edge) domain.Edge {
			e.Selected = c.Selected
			return e
		})

	default:
		// position and dimensions are node-only
		return ErrUnsupportedChangeKind
	}
	return nil
}
