// Package poisson scatters blue-noise points with Bridson's algorithm.
package poisson

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

type Config struct {
	// Radius is the minimum distance between two samples.
	Radius float64 `toml:"radius" json:"radius"`
	// Attempts is how many candidates are tried around a sample before it is
	// retired.
	Attempts int `toml:"attempts" json:"attempts"`
}

func DefaultConfig() Config {
	return Config{Radius: 3, Attempts: 30}
}

type Generator struct {
	Config Config
}

func New(cfg Config) *Generator {
	return &Generator{Config: cfg}
}

// Generate ignores its input and returns the cells holding a sample.
func (g *Generator) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	samples := Sample(float64(ctx.Width), float64(ctx.Height), g.Config.Radius, g.Config.Attempts, ctx.Rand)
	out := grid.NewPositionSet()
	for _, s := range samples {
		out.Add(grid.Pt(int(math.Floor(s.X())), int(math.Floor(s.Y()))))
	}
	logging.WithModule("poisson").Debug("Poisson disc sampled", "radius", g.Config.Radius, "samples", len(samples))
	return ctx.Clip(out), nil
}

// lookup is the acceleration grid: each cell holds at most one sample
// because its diagonal equals the radius.
type lookup struct {
	size          float64
	width, height int
	cells         []int
}

func newLookup(width, height, radius float64) *lookup {
	size := radius / math.Sqrt2
	l := &lookup{
		size:   size,
		width:  int(math.Ceil(width / size)),
		height: int(math.Ceil(height / size)),
	}
	l.cells = make([]int, l.width*l.height)
	for i := range l.cells {
		l.cells[i] = -1
	}
	return l
}

func (l *lookup) cell(p mgl64.Vec2) (int, int) {
	return int(p.X() / l.size), int(p.Y() / l.size)
}

func (l *lookup) put(p mgl64.Vec2, idx int) {
	cx, cy := l.cell(p)
	l.cells[cy*l.width+cx] = idx
}

// minRadius is the smallest usable radius: samples are floored to cells, so
// anything tighter only grows the lookup grid.
const minRadius = 1.0

// Sample returns points in [0,width) x [0,height) that are pairwise at least
// radius apart. A positive radius below one is raised to one and attempts
// below one are treated as one.
func Sample(width, height, radius float64, attempts int, rng *grid.Rand) []mgl64.Vec2 {
	if !(radius > 0) || width <= 0 || height <= 0 {
		return nil
	}
	radius = max(radius, minRadius)
	attempts = max(attempts, 1)

	l := newLookup(width, height, radius)
	first := mgl64.Vec2{width / 2, height / 2}
	samples := []mgl64.Vec2{first}
	l.put(first, 0)
	active := []int{0}

	valid := func(c mgl64.Vec2) bool {
		if c.X() < 0 || c.Y() < 0 || c.X() >= width || c.Y() >= height {
			return false
		}
		cx, cy := l.cell(c)
		for y := max(cy-2, 0); y <= min(cy+2, l.height-1); y++ {
			for x := max(cx-2, 0); x <= min(cx+2, l.width-1); x++ {
				if idx := l.cells[y*l.width+x]; idx >= 0 && samples[idx].Sub(c).Len() < radius {
					return false
				}
			}
		}
		return true
	}

	for len(active) > 0 {
		i := rng.Intn(len(active))
		origin := samples[active[i]]

		accepted := false
		for k := 0; k < attempts; k++ {
			angle := rng.FloatRange(0, 2*math.Pi)
			dist := rng.FloatRange(radius, 2*radius)
			candidate := origin.Add(mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(dist))
			if !valid(candidate) {
				continue
			}
			samples = append(samples, candidate)
			l.put(candidate, len(samples)-1)
			active = append(active, len(samples)-1)
			accepted = true
			break
		}
		if !accepted {
			active = append(active[:i], active[i+1:]...)
		}
	}
	return samples
}
