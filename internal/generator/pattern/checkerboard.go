// Package pattern holds the small stamp-style generators: stripes, dot
// grids, thresholded noise, geometric shapes and image masks.
package pattern

import (
	"github.com/VoidMesh/gridgen/internal/grid"
)

type CheckerboardConfig struct {
	Horizontal bool `toml:"horizontal" json:"horizontal"`
	Vertical   bool `toml:"vertical" json:"vertical"`
	Spacing    int  `toml:"spacing" json:"spacing"`
}

func DefaultCheckerboardConfig() CheckerboardConfig {
	return CheckerboardConfig{Horizontal: true, Vertical: true, Spacing: 2}
}

// Checkerboard marks rows, columns or diagonals that fall on the spacing.
type Checkerboard struct {
	Config CheckerboardConfig
}

func NewCheckerboard(cfg CheckerboardConfig) *Checkerboard {
	return &Checkerboard{Config: cfg}
}

func (c *Checkerboard) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	spacing := max(c.Config.Spacing, 1)
	out := grid.NewPositionSet()
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			var on bool
			switch {
			case c.Config.Horizontal && c.Config.Vertical:
				on = (x+y)%spacing == 0
			case c.Config.Horizontal:
				on = y%spacing == 0
			case c.Config.Vertical:
				on = x%spacing == 0
			}
			if on {
				out.Add(grid.Pt(x, y))
			}
		}
	}
	return out, nil
}
