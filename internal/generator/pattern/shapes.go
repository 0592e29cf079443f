package pattern

import (
	"fmt"

	"github.com/VoidMesh/gridgen/internal/grid"
)

type Shape string

const (
	Circle   Shape = "circle"
	Square   Shape = "square"
	Triangle Shape = "triangle"
)

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	switch s {
	case Circle, Square, Triangle:
		return true
	}
	return false
}

type Orientation string

const (
	Up    Orientation = "up"
	Down  Orientation = "down"
	Left  Orientation = "left"
	Right Orientation = "right"
)

type ShapesConfig struct {
	Shape       Shape       `toml:"shape" json:"shape"`
	Size        int         `toml:"size" json:"size"`
	Orientation Orientation `toml:"orientation" json:"orientation,omitempty"`
	// Positions are shape centres. Ignored when RandomPositions is set.
	Positions       []grid.Point `toml:"positions" json:"positions,omitempty"`
	RandomPositions bool         `toml:"random_positions" json:"random_positions,omitempty"`
	Count           int          `toml:"count" json:"count,omitempty"`
}

func DefaultShapesConfig() ShapesConfig {
	return ShapesConfig{Shape: Circle, Size: 5, Orientation: Up, RandomPositions: true, Count: 3}
}

// Shapes stamps circles, squares or triangles at fixed or random centres.
type Shapes struct {
	Config ShapesConfig
}

func NewShapes(cfg ShapesConfig) *Shapes {
	return &Shapes{Config: cfg}
}

func (s *Shapes) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	centers := s.Config.Positions
	if s.Config.RandomPositions {
		centers = make([]grid.Point, 0, max(s.Config.Count, 0))
		for i := 0; i < s.Config.Count; i++ {
			centers = append(centers, grid.Pt(ctx.Rand.Intn(ctx.Width), ctx.Rand.Intn(ctx.Height)))
		}
	}

	out := grid.NewPositionSet()
	for _, c := range centers {
		if err := Stamp(out, s.Config.Shape, c, s.Config.Size, s.Config.Orientation); err != nil {
			return nil, err
		}
	}
	return ctx.Clip(out), nil
}

// Stamp draws one shape centred on c into dst. A non-positive size draws
// nothing.
func Stamp(dst *grid.PositionSet, shape Shape, c grid.Point, size int, orientation Orientation) error {
	if size <= 0 {
		return nil
	}
	half := size / 2
	switch shape {
	case Circle:
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				if dx*dx+dy*dy <= half*half {
					dst.Add(grid.Pt(c.X+dx, c.Y+dy))
				}
			}
		}
	case Square:
		grid.Rect{X: c.X - half, Y: c.Y - half, W: size, H: size}.Fill(dst)
	case Triangle:
		// row i counted from the apex spans i/2 cells either side of the axis
		for i := 0; i < size; i++ {
			for j := -i / 2; j <= i/2; j++ {
				var p grid.Point
				switch orientation {
				case Down:
					p = grid.Pt(c.X+j, c.Y+half-i)
				case Left:
					p = grid.Pt(c.X-half+i, c.Y+j)
				case Right:
					p = grid.Pt(c.X+half-i, c.Y+j)
				default:
					p = grid.Pt(c.X+j, c.Y-half+i)
				}
				dst.Add(p)
			}
		}
	default:
		return fmt.Errorf("unknown shape %q", shape)
	}
	return nil
}
