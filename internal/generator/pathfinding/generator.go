// Package pathfinding links cells of other layers by breadth-first search
// over a navigation layer.
package pathfinding

import (
	"errors"
	"fmt"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

var ErrLayerNotFound = errors.New("layer not found")

// LayerLookup resolves the materialized cells of a previously built layer.
type LayerLookup interface {
	Layer(name string) (*grid.PositionSet, bool)
}

type Config struct {
	NavigationLayer string `toml:"navigation_layer" json:"navigation_layer"`
	StartLayer      string `toml:"start_layer" json:"start_layer"`
	TargetLayer     string `toml:"target_layer" json:"target_layer"`
	Mode            Mode   `toml:"mode" json:"mode"`
}

func DefaultConfig() Config {
	return Config{Mode: RandomRandom}
}

// References lists the layer names the config reads.
func (c Config) References() []string {
	return []string{c.NavigationLayer, c.StartLayer, c.TargetLayer}
}

type Generator struct {
	Config Config
	Layers LayerLookup

	found bool
}

func New(cfg Config, layers LayerLookup) *Generator {
	return &Generator{Config: cfg, Layers: layers}
}

// Found reports whether the last Generate call produced a path.
func (g *Generator) Found() bool {
	return g.found
}

// Generate adds the discovered path cells to the input. A missing layer is a
// configuration error; an unreachable target is not.
func (g *Generator) Generate(in *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	g.found = false
	if g.Layers == nil {
		return nil, fmt.Errorf("pathfinding: no layer lookup configured: %w", ErrLayerNotFound)
	}

	sets := make([]*grid.PositionSet, 0, 3)
	for _, name := range g.Config.References() {
		set, ok := g.Layers.Layer(name)
		if !ok {
			return nil, fmt.Errorf("pathfinding: layer %q: %w", name, ErrLayerNotFound)
		}
		sets = append(sets, set)
	}

	mode := g.Config.Mode
	if mode == "" {
		mode = RandomRandom
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("pathfinding: unknown mode %q", mode)
	}

	path, found := FindPath(sets[0], sets[1], sets[2], mode, ctx.Rand)
	g.found = found
	logging.WithModule("pathfinding").Debug("Path search finished",
		"mode", mode,
		"found", found,
		"path_cells", path.Len(),
	)
	return ctx.Clip(in.Union(path)), nil
}
