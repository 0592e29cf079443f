// Package bsp carves room-and-corridor dungeons by binary space partitioning.
package bsp

import (
	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

// border is the number of cells kept empty along every edge.
const border = 2

type Config struct {
	MinLeafWidth  int  `toml:"min_leaf_width" json:"min_leaf_width"`
	MinLeafHeight int  `toml:"min_leaf_height" json:"min_leaf_height"`
	CorridorWidth int  `toml:"corridor_width" json:"corridor_width"`
	OnlyStart     bool `toml:"only_start" json:"only_start,omitempty"`
	OnlyEnd       bool `toml:"only_end" json:"only_end,omitempty"`
	OnlyCorridors bool `toml:"only_corridors" json:"only_corridors,omitempty"`
	OnlyRooms     bool `toml:"only_rooms" json:"only_rooms,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		MinLeafWidth:  8,
		MinLeafHeight: 8,
		CorridorWidth: 1,
	}
}

// Dungeon is everything one run produces, before an output mode is applied.
type Dungeon struct {
	Tree      *Tree
	Rooms     []grid.Rect
	RoomCells *grid.PositionSet
	Corridors *grid.PositionSet
	Start     grid.Point
	End       grid.Point
	HasRooms  bool
}

// Floor returns rooms and corridors combined.
func (d *Dungeon) Floor() *grid.PositionSet {
	return d.RoomCells.Union(d.Corridors)
}

type Generator struct {
	Config Config
}

func New(cfg Config) *Generator {
	return &Generator{Config: cfg}
}

// Generate ignores its input and returns the cells selected by the output
// mode. Precedence: start, end, corridors, rooms, full floor.
func (g *Generator) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	logger := logging.WithModule("bsp")
	d := g.Build(ctx)
	logger.Debug("BSP dungeon built",
		"leaves", len(d.Tree.Leaves),
		"parents", len(d.Tree.Parents),
		"rooms", len(d.Rooms),
		"corridor_cells", d.Corridors.Len(),
	)

	switch {
	case g.Config.OnlyStart:
		if !d.HasRooms {
			return grid.NewPositionSet(), nil
		}
		return grid.NewPositionSet(d.Start), nil
	case g.Config.OnlyEnd:
		if !d.HasRooms {
			return grid.NewPositionSet(), nil
		}
		return grid.NewPositionSet(d.End), nil
	case g.Config.OnlyCorridors:
		return d.Floor().Difference(d.RoomCells), nil
	case g.Config.OnlyRooms:
		return d.Floor().Difference(d.Corridors), nil
	}
	return d.Floor(), nil
}

// Build runs the partition, room placement and hallway passes.
func (g *Generator) Build(ctx *grid.Context) *Dungeon {
	rng := ctx.Rand
	tree := Partition(ctx.Bounds(), rng, g.Config.MinLeafWidth, g.Config.MinLeafHeight)

	d := &Dungeon{
		Tree:      tree,
		RoomCells: grid.NewPositionSet(),
		Corridors: grid.NewPositionSet(),
	}

	interior := grid.Rect{X: border, Y: border, W: ctx.Width - 2*border, H: ctx.Height - 2*border}
	for _, idx := range tree.Terminals {
		room, ok := placeRoom(tree.Leaves[idx].Rect.Intersect(interior), rng)
		if !ok {
			continue
		}
		tree.Leaves[idx].Room = len(d.Rooms)
		d.Rooms = append(d.Rooms, room)
		room.Fill(d.RoomCells)
	}

	if len(d.Rooms) > 0 {
		d.HasRooms = true
		d.Start = d.Rooms[rng.Intn(len(d.Rooms))].Center()
		d.End = farthestCenter(d.Rooms, d.Start)
	}

	width := max(g.Config.CorridorWidth, 1)
	anchors := make(map[int]grid.Point, len(tree.Parents))
	for _, idx := range tree.Parents {
		if a, ok := d.anchor(idx); ok {
			anchors[idx] = a
		}
	}

	// pass 1: siblings
	for _, idx := range tree.Parents {
		leaf := tree.Leaves[idx]
		a, okA := d.anchor(leaf.First)
		b, okB := d.anchor(leaf.Second)
		if !okA || !okB {
			continue
		}
		carve(d.Corridors, siblingPath(a, b), width)
	}

	// pass 2: consecutive parents
	for i := 1; i < len(tree.Parents); i++ {
		a, okA := anchors[tree.Parents[i-1]]
		b, okB := anchors[tree.Parents[i]]
		if !okA || !okB {
			continue
		}
		carve(d.Corridors, elbowPath(a, b, rng.Intn(2) == 0), width)
	}

	clearBorder(d.Corridors, ctx)
	clearBorder(d.RoomCells, ctx)
	return d
}

// placeRoom picks a room inside area with each side in [dim/2, dim-1],
// never below 2, at a random inset.
func placeRoom(area grid.Rect, rng *grid.Rand) (grid.Rect, bool) {
	if area.W < 2 || area.H < 2 {
		return grid.Rect{}, false
	}
	w := roomSide(area.W, rng)
	h := roomSide(area.H, rng)
	x := area.X + rng.IntRange(0, area.W-w+1)
	y := area.Y + rng.IntRange(0, area.H-h+1)
	return grid.Rect{X: x, Y: y, W: w, H: h}, true
}

func roomSide(dim int, rng *grid.Rand) int {
	lo := max(dim/2, 2)
	hi := max(dim-1, lo)
	return rng.IntRange(lo, hi+1)
}

func farthestCenter(rooms []grid.Rect, from grid.Point) grid.Point {
	best, bestDist := from, -1
	for _, r := range rooms {
		if d := r.Center().DistanceSq(from); d > bestDist {
			best, bestDist = r.Center(), d
		}
	}
	return best
}

// anchor is the centre of the room in the subtree of idx whose centre lies
// closest to the leaf's own centre.
func (d *Dungeon) anchor(idx int) (grid.Point, bool) {
	target := d.Tree.Leaves[idx].Rect.Center()
	var best grid.Point
	bestDist, found := 0, false

	stack := []int{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		leaf := d.Tree.Leaves[cur]
		if leaf.Room != none {
			c := d.Rooms[leaf.Room].Center()
			if dist := c.DistanceSq(target); !found || dist < bestDist {
				best, bestDist, found = c, dist, true
			}
		}
		if leaf.Second != none {
			stack = append(stack, leaf.Second)
		}
		if leaf.First != none {
			stack = append(stack, leaf.First)
		}
	}
	return best, found
}

// siblingPath is a straight run when a and b share an axis, otherwise a
// horizontal-then-vertical elbow.
func siblingPath(a, b grid.Point) []grid.Point {
	return elbowPath(a, b, true)
}

// elbowPath walks from a to b along one axis then the other. Points that
// share an axis produce a straight line either way.
func elbowPath(a, b grid.Point, horizontalFirst bool) []grid.Point {
	var corner grid.Point
	if horizontalFirst {
		corner = grid.Pt(b.X, a.Y)
	} else {
		corner = grid.Pt(a.X, b.Y)
	}
	path := line(a, corner)
	return append(path, line(corner, b)[1:]...)
}

// line returns the axis-aligned cells from a to b inclusive.
func line(a, b grid.Point) []grid.Point {
	step := grid.Pt(sign(b.X-a.X), sign(b.Y-a.Y))
	path := []grid.Point{a}
	for p := a; p != b; {
		p = p.Add(step)
		path = append(path, p)
	}
	return path
}

func carve(dst *grid.PositionSet, path []grid.Point, width int) {
	for _, p := range path {
		grid.Rect{X: p.X, Y: p.Y, W: width, H: width}.Fill(dst)
	}
}

func clearBorder(s *grid.PositionSet, ctx *grid.Context) {
	for _, p := range s.Points() {
		if p.X < border || p.Y < border || p.X >= ctx.Width-border || p.Y >= ctx.Height-border {
			s.Remove(p)
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
