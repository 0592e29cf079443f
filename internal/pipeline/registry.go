package pipeline

import (
	"github.com/VoidMesh/gridgen/internal/grid"
)

// Registry holds the materialized cells of finished layers by name.
type Registry struct {
	layers map[string]*grid.PositionSet
}

func NewRegistry() *Registry {
	return &Registry{layers: make(map[string]*grid.PositionSet)}
}

func (r *Registry) Put(name string, cells *grid.PositionSet) {
	r.layers[name] = cells
}

// Layer implements pathfinding.LayerLookup.
func (r *Registry) Layer(name string) (*grid.PositionSet, bool) {
	cells, ok := r.layers[name]
	return cells, ok
}
