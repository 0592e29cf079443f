package generator

import (
	"github.com/VoidMesh/gridgen/internal/grid"
)

// Blend decides how a module's output combines with the cells it received.
type Blend string

const (
	// BlendAdd keeps the input and adds the output. It is the default.
	BlendAdd       Blend = "add"
	BlendReplace   Blend = "replace"
	BlendSubtract  Blend = "subtract"
	BlendIntersect Blend = "intersect"
)

func (b Blend) Valid() bool {
	switch b {
	case "", BlendAdd, BlendReplace, BlendSubtract, BlendIntersect:
		return true
	}
	return false
}

// Apply combines in and out. Neither argument is modified.
func (b Blend) Apply(in, out *grid.PositionSet) *grid.PositionSet {
	switch b {
	case BlendReplace:
		return out.Clone()
	case BlendSubtract:
		return in.Difference(out)
	case BlendIntersect:
		return in.Intersect(out)
	default:
		return in.Union(out)
	}
}
