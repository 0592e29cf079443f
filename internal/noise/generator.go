package noise

import (
	"github.com/aquilax/go-perlin"
)

// Source is a coherent 2D noise function normalised to [0,1].
type Source interface {
	Value(x, y float64) float64
	Seed() int64
}

// Generator implements Source using Perlin noise.
type Generator struct {
	noise *perlin.Perlin
	seed  int64
}

// NewGenerator creates a new noise generator with the given seed.
func NewGenerator(seed int64) *Generator {
	// alpha=2, beta=2, n=3
	return &Generator{
		noise: perlin.NewPerlin(2, 2, 3, seed),
		seed:  seed,
	}
}

// Raw returns the underlying Perlin value, roughly in [-1,1].
func (g *Generator) Raw(x, y float64) float64 {
	return g.noise.Noise2D(x, y)
}

// Value maps the Perlin value into [0,1], clamping the rare overshoot.
func (g *Generator) Value(x, y float64) float64 {
	v := (g.Raw(x, y) + 1) / 2
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (g *Generator) Seed() int64 {
	return g.seed
}
