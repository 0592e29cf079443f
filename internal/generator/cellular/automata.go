// Package cellular grows organic caves with a majority-rule cellular
// automaton and optionally stitches the resulting islands together.
package cellular

import (
	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

type Config struct {
	FillProbability float64 `toml:"fill_probability" json:"fill_probability"`
	SmoothingSteps  int     `toml:"smoothing_steps" json:"smoothing_steps"`
	EnsureConnected bool    `toml:"ensure_connected" json:"ensure_connected"`
	// UseMapSize runs over the whole layer; otherwise Width x Height cells are
	// generated and shifted by the offset.
	UseMapSize bool `toml:"use_map_size" json:"use_map_size"`
	Width      int  `toml:"width" json:"width,omitempty"`
	Height     int  `toml:"height" json:"height,omitempty"`
	OffsetX    int  `toml:"offset_x" json:"offset_x,omitempty"`
	OffsetY    int  `toml:"offset_y" json:"offset_y,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		FillProbability: 0.45,
		SmoothingSteps:  4,
		EnsureConnected: true,
		UseMapSize:      true,
	}
}

type Generator struct {
	Config Config
}

func New(cfg Config) *Generator {
	return &Generator{Config: cfg}
}

// cells is a dense alive/dead board in local coordinates.
type cells struct {
	width, height int
	alive         []bool
}

func newCells(width, height int) *cells {
	return &cells{width: width, height: height, alive: make([]bool, width*height)}
}

func (c *cells) get(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.alive[y*c.width+x]
}

func (c *cells) set(x, y int, v bool) {
	c.alive[y*c.width+x] = v
}

// neighbors counts alive cells among the eight surrounding x,y. Cells off the
// board count as dead.
func (c *cells) neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && c.get(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// step applies one generation: more than four alive neighbours births, fewer
// than four kills, exactly four keeps the cell.
func (c *cells) step() *cells {
	next := newCells(c.width, c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			switch n := c.neighbors(x, y); {
			case n > 4:
				next.set(x, y, true)
			case n < 4:
				next.set(x, y, false)
			default:
				next.set(x, y, c.get(x, y))
			}
		}
	}
	return next
}

func (c *cells) positions() *grid.PositionSet {
	out := grid.NewPositionSet()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.get(x, y) {
				out.Add(grid.Pt(x, y))
			}
		}
	}
	return out
}

// Generate ignores its input and returns the cave cells.
func (g *Generator) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	logger := logging.WithModule("cellular")

	width, height, offset := ctx.Width, ctx.Height, grid.Point{}
	if !g.Config.UseMapSize {
		width, height = max(g.Config.Width, 0), max(g.Config.Height, 0)
		offset = grid.Pt(g.Config.OffsetX, g.Config.OffsetY)
	}

	board := newCells(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			board.set(x, y, ctx.Rand.Chance(g.Config.FillProbability))
		}
	}
	for i := 0; i < g.Config.SmoothingSteps; i++ {
		board = board.step()
	}

	alive := board.positions()
	if g.Config.EnsureConnected {
		carved := Connect(alive, ctx.Rand)
		logger.Debug("Connected cave islands", "carved_cells", carved)
	}

	logger.Debug("Cellular cave generated", "width", width, "height", height, "alive", alive.Len())
	return ctx.Clip(alive.Translate(offset)), nil
}

// Connect joins every island of s to the first island found, carving paths
// into s in place. It returns the number of cells newly carved.
func Connect(s *grid.PositionSet, rng *grid.Rand) int {
	islands := grid.Islands(s)
	if len(islands) < 2 {
		return 0
	}

	main := islands[0].Clone()
	carved := 0
	for _, island := range islands[1:] {
		from, _ := rng.Pick(island)
		to, _ := rng.Pick(main)
		for _, p := range carvePath(from, to, rng) {
			if !s.Has(p) {
				s.Add(p)
				carved++
			}
			main.Add(p)
		}
		main.AddAll(island)
	}
	return carved
}

// carvePath walks from a to b taking a random cardinal step that strictly
// shortens the manhattan distance each time. The walk stays inside the
// bounding box of a and b.
func carvePath(a, b grid.Point, rng *grid.Rand) []grid.Point {
	path := []grid.Point{a}
	cur := a
	for cur != b {
		var moves [2]grid.Point
		n := 0
		for _, d := range grid.Cardinals {
			next := cur.Add(d)
			if next.Manhattan(b) < cur.Manhattan(b) {
				moves[n] = next
				n++
			}
		}
		cur = moves[rng.Intn(n)]
		path = append(path, cur)
	}
	return path
}
