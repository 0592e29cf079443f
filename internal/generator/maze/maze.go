// Package maze carves perfect mazes with a randomized depth-first search.
package maze

import (
	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

type Config struct {
	CorridorWidth int  `toml:"corridor_width" json:"corridor_width"`
	OnlyStart     bool `toml:"only_start" json:"only_start,omitempty"`
	OnlyEnd       bool `toml:"only_end" json:"only_end,omitempty"`
}

func DefaultConfig() Config {
	return Config{CorridorWidth: 1}
}

type Generator struct {
	Config Config
}

func New(cfg Config) *Generator {
	return &Generator{Config: cfg}
}

// Maze is the result of one carve.
type Maze struct {
	Cells *grid.PositionSet
	Start grid.Point
	End   grid.Point
}

// frame is one level of the depth-first walk. Directions are shuffled when
// the frame is created so the draw order matches a recursive carve.
type frame struct {
	at   grid.Point
	dirs [4]grid.Point
	next int
}

type carver struct {
	width, height int
	corridor      int
	stride        int
	rng           *grid.Rand
	cells         *grid.PositionSet
	anchors       *grid.PositionSet
}

// legal reports whether a w x w corridor anchored at c keeps a one cell
// margin from every edge.
func (c *carver) legal(p grid.Point) bool {
	return p.X >= 1 && p.Y >= 1 && p.X+c.corridor-1 <= c.width-2 && p.Y+c.corridor-1 <= c.height-2
}

func (c *carver) brush(p grid.Point) {
	grid.Rect{X: p.X, Y: p.Y, W: c.corridor, H: c.corridor}.Fill(c.cells)
}

func (c *carver) enter(p grid.Point) frame {
	c.anchors.Add(p)
	c.brush(p)
	f := frame{at: p, dirs: grid.Cardinals}
	c.rng.Shuffle(len(f.dirs), func(i, j int) {
		f.dirs[i], f.dirs[j] = f.dirs[j], f.dirs[i]
	})
	return f
}

func (c *carver) carve(start grid.Point) {
	stack := []frame{c.enter(start)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		target := top.at.Add(d.Scale(c.stride))
		if !c.legal(target) || c.anchors.Has(target) {
			continue
		}
		from := top.at
		for i := 1; i < c.stride; i++ {
			c.brush(from.Add(d.Scale(i)))
		}
		stack = append(stack, c.enter(target))
	}
}

// Carve builds a maze over the context. ok is false when the grid is too
// small to hold a single corridor cell.
func (g *Generator) Carve(ctx *grid.Context) (*Maze, bool) {
	w := max(g.Config.CorridorWidth, 1)
	c := &carver{
		width:    ctx.Width,
		height:   ctx.Height,
		corridor: w,
		stride:   2 + w,
		rng:      ctx.Rand,
		cells:    grid.NewPositionSet(),
		anchors:  grid.NewPositionSet(),
	}

	// legal anchors span [1, size-w-1] on each axis
	if ctx.Width-w-1 < 1 || ctx.Height-w-1 < 1 {
		return nil, false
	}
	start := grid.Pt(ctx.Rand.IntRange(1, ctx.Width-w), ctx.Rand.IntRange(1, ctx.Height-w))
	c.carve(start)

	m := &Maze{Cells: c.cells, Start: start, End: start}
	best := -1
	for _, p := range c.cells.Points() {
		if d := p.DistanceSq(start); d > best {
			m.End, best = p, d
		}
	}
	return m, true
}

// Generate ignores its input and returns the maze, or only its start or end
// cell.
func (g *Generator) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	m, ok := g.Carve(ctx)
	if !ok {
		logging.WithModule("maze").Debug("Grid too small for a maze", "width", ctx.Width, "height", ctx.Height)
		return grid.NewPositionSet(), nil
	}
	logging.WithModule("maze").Debug("Maze carved", "cells", m.Cells.Len(), "start", m.Start, "end", m.End)

	switch {
	case g.Config.OnlyStart:
		return grid.NewPositionSet(m.Start), nil
	case g.Config.OnlyEnd:
		return grid.NewPositionSet(m.End), nil
	}
	return ctx.Clip(m.Cells), nil
}
