package pattern

import (
	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/noise"
)

// offsetRange bounds the random shift applied to noise coordinates.
const offsetRange = 10000.0

type NoiseConfig struct {
	// Weight is the inclusive upper bound a cell's noise value must not
	// exceed to be kept.
	Weight float64 `toml:"weight" json:"weight"`
	Scale  float64 `toml:"scale" json:"scale"`
	// PerCellOffset draws a fresh sampling offset for every cell instead of
	// one for the whole layer.
	PerCellOffset bool `toml:"per_cell_offset" json:"per_cell_offset"`
}

func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{Weight: 0.5, Scale: 0.1, PerCellOffset: true}
}

// Noise keeps the cells whose coherent noise value falls at or below the
// weight.
type Noise struct {
	Config NoiseConfig
	// NewSource builds the noise function from a seed drawn off the layer
	// stream. Defaults to Perlin noise.
	NewSource func(seed int64) noise.Source
}

func NewNoise(cfg NoiseConfig) *Noise {
	return &Noise{Config: cfg}
}

func (n *Noise) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	newSource := n.NewSource
	if newSource == nil {
		newSource = func(seed int64) noise.Source { return noise.NewGenerator(seed) }
	}
	src := newSource(ctx.Rand.Int63())

	scale := n.Config.Scale
	if scale == 0 {
		scale = 1
	}

	var ox, oy float64
	if !n.Config.PerCellOffset {
		ox, oy = ctx.Rand.FloatRange(0, offsetRange), ctx.Rand.FloatRange(0, offsetRange)
	}

	out := grid.NewPositionSet()
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			if n.Config.PerCellOffset {
				ox, oy = ctx.Rand.FloatRange(0, offsetRange), ctx.Rand.FloatRange(0, offsetRange)
			}
			if src.Value(float64(x)*scale+ox, float64(y)*scale+oy) <= n.Config.Weight {
				out.Add(grid.Pt(x, y))
			}
		}
	}
	return out, nil
}
