// Package pipeline runs ordered generator modules over named layers and
// collects the results into a layout.
package pipeline

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml"

	"github.com/VoidMesh/gridgen/internal/generator"
)

var (
	ErrInvalidDefinition = errors.New("invalid pipeline definition")
	ErrDuplicateLayer    = errors.New("duplicate layer name")
	ErrLayerNotFound     = errors.New("layer not found")
	ErrLimitExceeded     = errors.New("generation limit exceeded")
)

// MaxLayerSide bounds each layer dimension regardless of executor limits.
const MaxLayerSide = 1 << 16

// Definition is a complete, reproducible description of a layout.
type Definition struct {
	Name   string      `toml:"name" json:"name"`
	Seed   int64       `toml:"seed" json:"seed"`
	Layers []LayerSpec `toml:"layers" json:"layers"`
}

// LayerSpec describes one layer: its size and the modules applied in order
// to an initially empty set.
type LayerSpec struct {
	Name    string                 `toml:"name" json:"name"`
	Width   int                    `toml:"width" json:"width"`
	Height  int                    `toml:"height" json:"height"`
	Seed    *int64                 `toml:"seed" json:"seed,omitempty"`
	Modules []generator.ModuleSpec `toml:"modules" json:"modules"`
}

// LayerSeed returns the explicit layer seed, or one derived from the
// pipeline seed and the layer name so reordering layers keeps outputs.
func (d *Definition) LayerSeed(spec LayerSpec) int64 {
	if spec.Seed != nil {
		return *spec.Seed
	}
	return d.Seed ^ int64(xxhash.Sum64String(spec.Name))
}

// Validate checks names, sizes, module kinds and that every cross-layer
// reference points at an earlier layer.
func (d *Definition) Validate() error {
	if len(d.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidDefinition)
	}

	seen := make(map[string]bool, len(d.Layers))
	for i, layer := range d.Layers {
		if layer.Name == "" {
			return fmt.Errorf("%w: layer %d has no name", ErrInvalidDefinition, i)
		}
		if seen[layer.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateLayer, layer.Name)
		}
		if layer.Width < 0 || layer.Height < 0 {
			return fmt.Errorf("%w: layer %q has negative size %dx%d", ErrInvalidDefinition, layer.Name, layer.Width, layer.Height)
		}
		if layer.Width > MaxLayerSide || layer.Height > MaxLayerSide {
			return fmt.Errorf("%w: layer %q size %dx%d exceeds %d per side", ErrInvalidDefinition, layer.Name, layer.Width, layer.Height, MaxLayerSide)
		}

		for j, module := range layer.Modules {
			if err := module.Validate(); err != nil {
				return fmt.Errorf("%w: layer %q module %d: %w", ErrInvalidDefinition, layer.Name, j, err)
			}
			for _, ref := range module.References() {
				if !seen[ref] {
					return fmt.Errorf("layer %q module %d references %q: %w", layer.Name, j, ref, ErrLayerNotFound)
				}
			}
		}
		seen[layer.Name] = true
	}
	return nil
}

// Parse decodes a TOML pipeline definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	return &def, nil
}

// LoadFile reads and decodes a TOML pipeline definition from disk.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return def, nil
}
