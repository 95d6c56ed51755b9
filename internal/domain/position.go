package domain

// Position is a point in canvas coordinates
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Dimensions is the measured size of a rendered node
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// DefaultZoom is the zoom factor of a fresh viewport
const DefaultZoom = 1.0

// Viewport is the pan/zoom transform of the canvas.
// Zoom is a unitless scale factor and carries no enforced bounds.
type Viewport struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom"`
}

// DefaultViewport returns the viewport of a fresh session
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: DefaultZoom}
}

// ViewportPatch is a partial viewport update; nil fields are left untouched
type ViewportPatch struct {
	X    *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y    *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Zoom *float64 `json:"zoom,omitempty" yaml:"zoom,omitempty"`
}

// Merge returns v with the present fields of p applied
func (v Viewport) Merge(p ViewportPatch) Viewport {
	if p.X != nil {
		v.X = *p.X
	}
	if p.Y != nil {
		v.Y = *p.Y
	}
	if p.Zoom != nil {
		v.Zoom = *p.Zoom
	}
	return v
}

// IsEmpty reports whether the patch carries no fields
func (p ViewportPatch) IsEmpty() bool {
	return p.X == nil && p.Y == nil && p.Zoom == nil
}
