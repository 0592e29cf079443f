package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/gridgen/internal/generator"
	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

// Layout is the result of running a definition.
type Layout struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Seed       int64       `json:"seed"`
	CreatedAt  time.Time   `json:"created_at"`
	Layers     []Layer     `json:"layers"`
	Definition *Definition `json:"definition,omitempty"`
}

// Layer is one materialized layer.
type Layer struct {
	Name   string            `json:"name"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Seed   int64             `json:"seed"`
	Cells  *grid.PositionSet `json:"cells"`
	// PathFound is set when the layer ran a pathfinding module and reports
	// the outcome of the last one.
	PathFound *bool `json:"path_found,omitempty"`
}

// Layer looks up a layer by name.
func (l *Layout) Layer(name string) (*Layer, bool) {
	for i := range l.Layers {
		if l.Layers[i].Name == name {
			return &l.Layers[i], true
		}
	}
	return nil, false
}

// Executor runs definitions. Zero limits mean unlimited.
type Executor struct {
	MaxCells  int
	MaxLayers int
	now       func() time.Time
}

type Option func(*Executor)

// WithLimits bounds the cells per layer and the number of layers.
func WithLimits(maxCells, maxLayers int) Option {
	return func(e *Executor) {
		e.MaxCells = maxCells
		e.MaxLayers = maxLayers
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

func NewExecutor(opts ...Option) *Executor {
	e := &Executor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckLimits reports definitions that exceed the executor's limits.
func (e *Executor) CheckLimits(def *Definition) error {
	if e.MaxLayers > 0 && len(def.Layers) > e.MaxLayers {
		return fmt.Errorf("%w: %d layers, limit %d", ErrLimitExceeded, len(def.Layers), e.MaxLayers)
	}
	if e.MaxCells <= 0 {
		return nil
	}
	for _, layer := range def.Layers {
		if exceedsCells(layer.Width, layer.Height, e.MaxCells) {
			return fmt.Errorf("%w: layer %q is %dx%d, limit %d cells", ErrLimitExceeded, layer.Name, layer.Width, layer.Height, e.MaxCells)
		}
	}
	return nil
}

// exceedsCells reports whether width*height > limit without forming the
// product, which may overflow.
func exceedsCells(width, height, limit int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	return height > limit/width
}

// Run validates def and builds its layers in order. Each layer starts from
// an empty set and a fresh context; modules run sequentially and ctx is
// checked between them.
func (e *Executor) Run(ctx context.Context, def *Definition) (*Layout, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if err := e.CheckLimits(def); err != nil {
		return nil, err
	}

	layout := &Layout{
		ID:         uuid.New(),
		Name:       def.Name,
		Seed:       def.Seed,
		CreatedAt:  e.now().UTC(),
		Layers:     make([]Layer, 0, len(def.Layers)),
		Definition: def,
	}
	logger := logging.WithLayoutID(layout.ID.String())
	logger.Debug("Running pipeline", "name", def.Name, "seed", def.Seed, "layers", len(def.Layers))

	registry := NewRegistry()
	for _, spec := range def.Layers {
		layer, err := e.runLayer(ctx, def, spec, registry)
		if err != nil {
			return nil, err
		}
		registry.Put(layer.Name, layer.Cells)
		layout.Layers = append(layout.Layers, *layer)
	}

	logger.Info("Pipeline finished", "name", def.Name, "layers", len(layout.Layers))
	return layout, nil
}

func (e *Executor) runLayer(ctx context.Context, def *Definition, spec LayerSpec, layers *Registry) (*Layer, error) {
	start := time.Now()
	seed := def.LayerSeed(spec)
	gctx := grid.NewContext(spec.Width, spec.Height, seed)
	logger := logging.WithLayer(spec.Name)

	layer := &Layer{
		Name:   spec.Name,
		Width:  gctx.Width,
		Height: gctx.Height,
		Seed:   seed,
		Cells:  grid.NewPositionSet(),
	}

	for i, module := range spec.Modules {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("layer %q cancelled before module %d: %w", spec.Name, i, err)
		}

		g, err := generator.Build(module, layers)
		if err != nil {
			return nil, fmt.Errorf("layer %q module %d: %w", spec.Name, i, err)
		}

		moduleStart := time.Now()
		out, err := g.Generate(layer.Cells, gctx)
		if err != nil {
			return nil, fmt.Errorf("layer %q module %d (%s): %w", spec.Name, i, module.Kind, err)
		}
		if reporter, ok := g.(generator.PathReporter); ok {
			found := reporter.Found()
			layer.PathFound = &found
		}
		layer.Cells = gctx.Clip(module.Blend.Apply(layer.Cells, out))

		logging.WithDuration("module", time.Since(moduleStart)).Debug("Module applied",
			"layer", spec.Name,
			"index", i,
			"kind", module.Kind,
			"blend", module.Blend,
			"cells", layer.Cells.Len(),
		)
	}

	logger.Info("Layer generated",
		"width", layer.Width,
		"height", layer.Height,
		"seed", seed,
		"cells", layer.Cells.Len(),
		"duration", time.Since(start),
	)
	return layer, nil
}
