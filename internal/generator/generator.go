// Package generator defines the contract shared by every layout generator
// and the closed set of generator kinds a pipeline can name.
package generator

import (
	"errors"
	"fmt"

	"github.com/VoidMesh/gridgen/internal/generator/bsp"
	"github.com/VoidMesh/gridgen/internal/generator/cellular"
	"github.com/VoidMesh/gridgen/internal/generator/maze"
	"github.com/VoidMesh/gridgen/internal/generator/pathfinding"
	"github.com/VoidMesh/gridgen/internal/generator/pattern"
	"github.com/VoidMesh/gridgen/internal/generator/poisson"
	"github.com/VoidMesh/gridgen/internal/generator/walker"
	"github.com/VoidMesh/gridgen/internal/grid"
)

var (
	ErrUnknownKind   = errors.New("unknown generator kind")
	ErrUnknownBlend  = errors.New("unknown blend mode")
	ErrInvalidConfig = errors.New("invalid generator config")
)

// Generator turns the current cells of a layer into new cells. It must be
// deterministic given the context seed and must only draw randomness from
// ctx.Rand.
type Generator interface {
	Generate(in *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error)
}

// PathReporter is implemented by generators that report whether a path was
// found on their last run.
type PathReporter interface {
	Found() bool
}

type Kind string

const (
	KindBSP          Kind = "bsp"
	KindCellular     Kind = "cellular"
	KindMaze         Kind = "maze"
	KindWalker       Kind = "walker"
	KindPathfinding  Kind = "pathfinding"
	KindPoisson      Kind = "poisson"
	KindShapes       Kind = "shapes"
	KindCheckerboard Kind = "checkerboard"
	KindDotGrid      Kind = "dotgrid"
	KindNoise        Kind = "noise"
	KindHeightmap    Kind = "heightmap"
)

// Kinds lists every generator kind.
func Kinds() []Kind {
	return []Kind{
		KindBSP, KindCellular, KindMaze, KindWalker, KindPathfinding, KindPoisson,
		KindShapes, KindCheckerboard, KindDotGrid, KindNoise, KindHeightmap,
	}
}

func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ModuleSpec names a generator and carries its configuration. Only the table
// matching Kind is read; a missing table means the kind's defaults.
type ModuleSpec struct {
	Kind  Kind  `toml:"kind" json:"kind"`
	Blend Blend `toml:"blend" json:"blend,omitempty"`

	BSP          *bsp.Config                 `toml:"bsp" json:"bsp,omitempty"`
	Cellular     *cellular.Config            `toml:"cellular" json:"cellular,omitempty"`
	Maze         *maze.Config                `toml:"maze" json:"maze,omitempty"`
	Walker       *walker.Config              `toml:"walker" json:"walker,omitempty"`
	Pathfinding  *pathfinding.Config         `toml:"pathfinding" json:"pathfinding,omitempty"`
	Poisson      *poisson.Config             `toml:"poisson" json:"poisson,omitempty"`
	Shapes       *pattern.ShapesConfig       `toml:"shapes" json:"shapes,omitempty"`
	Checkerboard *pattern.CheckerboardConfig `toml:"checkerboard" json:"checkerboard,omitempty"`
	DotGrid      *pattern.DotGridConfig      `toml:"dotgrid" json:"dotgrid,omitempty"`
	Noise        *pattern.NoiseConfig        `toml:"noise" json:"noise,omitempty"`
	Heightmap    *pattern.HeightmapConfig    `toml:"heightmap" json:"heightmap,omitempty"`
}

// Validate checks the kind and blend mode without building anything.
func (s ModuleSpec) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
	if !s.Blend.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownBlend, s.Blend)
	}
	if s.Kind == KindPathfinding && s.Pathfinding != nil && s.Pathfinding.Mode != "" && !s.Pathfinding.Mode.Valid() {
		return fmt.Errorf("%w: unknown pathfinding mode %q", ErrInvalidConfig, s.Pathfinding.Mode)
	}
	if s.Kind == KindShapes && s.Shapes != nil && !s.Shapes.Shape.Valid() {
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, s.Shapes.Shape)
	}
	return nil
}

// References returns the other layers a module reads.
func (s ModuleSpec) References() []string {
	if s.Kind != KindPathfinding {
		return nil
	}
	cfg := pathfinding.DefaultConfig()
	if s.Pathfinding != nil {
		cfg = *s.Pathfinding
	}
	return cfg.References()
}

// Build instantiates the generator described by spec. layers is only used
// by pathfinding.
func Build(spec ModuleSpec, layers pathfinding.LayerLookup) (Generator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch spec.Kind {
	case KindBSP:
		return bsp.New(orDefault(spec.BSP, bsp.DefaultConfig)), nil
	case KindCellular:
		return cellular.New(orDefault(spec.Cellular, cellular.DefaultConfig)), nil
	case KindMaze:
		return maze.New(orDefault(spec.Maze, maze.DefaultConfig)), nil
	case KindWalker:
		return walker.New(orDefault(spec.Walker, walker.DefaultConfig)), nil
	case KindPathfinding:
		return pathfinding.New(orDefault(spec.Pathfinding, pathfinding.DefaultConfig), layers), nil
	case KindPoisson:
		return poisson.New(orDefault(spec.Poisson, poisson.DefaultConfig)), nil
	case KindShapes:
		return pattern.NewShapes(orDefault(spec.Shapes, pattern.DefaultShapesConfig)), nil
	case KindCheckerboard:
		return pattern.NewCheckerboard(orDefault(spec.Checkerboard, pattern.DefaultCheckerboardConfig)), nil
	case KindDotGrid:
		return pattern.NewDotGrid(orDefault(spec.DotGrid, pattern.DefaultDotGridConfig)), nil
	case KindNoise:
		return pattern.NewNoise(orDefault(spec.Noise, pattern.DefaultNoiseConfig)), nil
	case KindHeightmap:
		return pattern.NewHeightmap(orDefault(spec.Heightmap, pattern.DefaultHeightmapConfig)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
}

func orDefault[T any](cfg *T, def func() T) T {
	if cfg == nil {
		return def()
	}
	return *cfg
}
