package store

import (
	"math/rand/v2"

	"flowstate/internal/domain"
)

// Default placement area for new nodes
const (
	DefaultPlacementWidth  = 500
	DefaultPlacementHeight = 500
)

// Placement decides the position of a node created by AddNewNode
type Placement interface {
	Place() domain.Position
}

// PlacementFunc adapts a function to Placement
type PlacementFunc func() domain.Position

// Place calls f
func (f PlacementFunc) Place() domain.Position {
	return f()
}

// FixedPlacement always places nodes at pos
func FixedPlacement(pos domain.Position) Placement {
	return PlacementFunc(func() domain.Position { return pos })
}

// RandomPlacement places nodes uniformly in [0,Width) x [0,Height)
type RandomPlacement struct {
	Width  float64
	Height float64
	rng    *rand.Rand
}

// NewRandomPlacement creates a random placement over the given area.
// A non-zero seed makes the sequence of positions reproducible.
func NewRandomPlacement(width, height float64, seed uint64) *RandomPlacement {
	p := &RandomPlacement{Width: width, Height: height}
	if seed != 0 {
		p.rng = rand.New(rand.NewPCG(seed, seed))
	}
	return p
}

// Place returns the next random position
func (p *RandomPlacement) Place() domain.Position {
	return domain.Position{X: p.float() * p.Width, Y: p.float() * p.Height}
}

func (p *RandomPlacement) float() float64 {
	if p.rng == nil {
		return rand.Float64()
	}
	return p.rng.Float64()
}
