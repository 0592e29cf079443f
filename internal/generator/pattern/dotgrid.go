package pattern

import (
	"github.com/VoidMesh/gridgen/internal/grid"
)

type DotGridConfig struct {
	SpaceX  int `toml:"space_x" json:"space_x"`
	SpaceY  int `toml:"space_y" json:"space_y"`
	OffsetX int `toml:"offset_x" json:"offset_x,omitempty"`
	OffsetY int `toml:"offset_y" json:"offset_y,omitempty"`
}

func DefaultDotGridConfig() DotGridConfig {
	return DotGridConfig{SpaceX: 4, SpaceY: 4}
}

// DotGrid marks every cell on a regular 2D lattice.
type DotGrid struct {
	Config DotGridConfig
}

func NewDotGrid(cfg DotGridConfig) *DotGrid {
	return &DotGrid{Config: cfg}
}

// Generate returns an empty set when either spacing is not positive.
func (d *DotGrid) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	out := grid.NewPositionSet()
	sx, sy := d.Config.SpaceX, d.Config.SpaceY
	if sx <= 0 || sy <= 0 {
		return out, nil
	}
	for y := mod(d.Config.OffsetY, sy); y < ctx.Height; y += sy {
		for x := mod(d.Config.OffsetX, sx); x < ctx.Width; x += sx {
			out.Add(grid.Pt(x, y))
		}
	}
	return out, nil
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}
