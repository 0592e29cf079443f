// Package walker digs dungeons with random walks: a corridor backbone of
// straight runs with blob-shaped rooms grown at selected run ends and at
// every dead end.
package walker

import (
	"math"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

type Config struct {
	Iterations                 int     `toml:"iterations" json:"iterations"`
	WalkLength                 int     `toml:"walk_length" json:"walk_length"`
	StartRandomlyEachIteration bool    `toml:"start_randomly_each_iteration" json:"start_randomly_each_iteration"`
	CorridorLength             int     `toml:"corridor_length" json:"corridor_length"`
	CorridorCount              int     `toml:"corridor_count" json:"corridor_count"`
	RoomPercent                float64 `toml:"room_percent" json:"room_percent"`
	RandomStartPosition        bool    `toml:"random_start_position" json:"random_start_position"`
	// StartX and StartY are used when RandomStartPosition is off. A start
	// outside the grid falls back to the centre.
	StartX int `toml:"start_x" json:"start_x,omitempty"`
	StartY int `toml:"start_y" json:"start_y,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:                 10,
		WalkLength:                 10,
		StartRandomlyEachIteration: true,
		CorridorLength:             14,
		CorridorCount:              5,
		RoomPercent:                0.8,
		RandomStartPosition:        true,
	}
}

type Generator struct {
	Config Config
}

func New(cfg Config) *Generator {
	return &Generator{Config: cfg}
}

// Dungeon separates the corridor backbone from the grown rooms.
type Dungeon struct {
	Start     grid.Point
	Corridors *grid.PositionSet
	Rooms     *grid.PositionSet
	Seeds     []grid.Point
	DeadEnds  []grid.Point
}

func (g *Generator) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	if ctx.Area() == 0 {
		return grid.NewPositionSet(), nil
	}
	d := g.Dig(ctx)
	logging.WithModule("walker").Debug("Random walk dungeon dug",
		"corridor_cells", d.Corridors.Len(),
		"room_cells", d.Rooms.Len(),
		"room_seeds", len(d.Seeds),
		"dead_ends", len(d.DeadEnds),
	)
	return ctx.Clip(d.Corridors.Union(d.Rooms)), nil
}

// Dig runs the backbone, room and dead-end passes. The context must have a
// non-zero area.
func (g *Generator) Dig(ctx *grid.Context) *Dungeon {
	rng := ctx.Rand
	d := &Dungeon{
		Start:     g.start(ctx),
		Corridors: grid.NewPositionSet(),
		Rooms:     grid.NewPositionSet(),
	}

	// backbone
	candidates := grid.NewPositionSet()
	var ends []grid.Point
	cur := d.Start
	d.Corridors.Add(cur)
	for i := 0; i < g.Config.CorridorCount; i++ {
		dir := grid.Cardinals[rng.Intn(len(grid.Cardinals))]
		for step := 0; step < g.Config.CorridorLength; step++ {
			next := cur.Add(dir)
			if !ctx.InBounds(next) {
				break
			}
			cur = next
			d.Corridors.Add(cur)
		}
		if !candidates.Has(cur) {
			candidates.Add(cur)
			ends = append(ends, cur)
		}
	}

	// rooms at a share of the run ends
	rng.Shuffle(len(ends), func(i, j int) {
		ends[i], ends[j] = ends[j], ends[i]
	})
	count := int(math.Round(float64(len(ends)) * g.Config.RoomPercent))
	count = min(max(count, 0), len(ends))
	d.Seeds = ends[:count]
	for _, seed := range d.Seeds {
		d.Rooms.AddAll(g.room(seed, ctx))
	}

	// rooms at dead ends
	for _, p := range d.Corridors.Points() {
		if d.Rooms.Has(p) || !isDeadEnd(d.Corridors, p) {
			continue
		}
		d.DeadEnds = append(d.DeadEnds, p)
		d.Rooms.AddAll(g.room(p, ctx))
	}
	return d
}

func (g *Generator) start(ctx *grid.Context) grid.Point {
	if g.Config.RandomStartPosition {
		return grid.Pt(ctx.Rand.Intn(ctx.Width), ctx.Rand.Intn(ctx.Height))
	}
	p := grid.Pt(g.Config.StartX, g.Config.StartY)
	if !ctx.InBounds(p) {
		return ctx.Bounds().Center()
	}
	return p
}

// room grows a blob around seed with repeated bounded random walks. Steps
// that would leave the grid are spent without moving.
func (g *Generator) room(seed grid.Point, ctx *grid.Context) *grid.PositionSet {
	rng := ctx.Rand
	room := grid.NewPositionSet(seed)
	for i := 0; i < g.Config.Iterations; i++ {
		cur := seed
		if g.Config.StartRandomlyEachIteration && i > 0 {
			cur, _ = rng.Pick(room)
		}
		for step := 0; step < g.Config.WalkLength; step++ {
			next := cur.Add(grid.Cardinals[rng.Intn(len(grid.Cardinals))])
			if !ctx.InBounds(next) {
				continue
			}
			cur = next
			room.Add(cur)
		}
	}
	return room
}

func isDeadEnd(corridors *grid.PositionSet, p grid.Point) bool {
	n := 0
	for _, q := range p.Neighbors4() {
		if corridors.Has(q) {
			n++
		}
	}
	return n == 1
}
