package pathfinding

import (
	"github.com/VoidMesh/gridgen/internal/grid"
)

// Mode selects which start and target cells a search uses.
type Mode string

const (
	// RandomRandom searches from one random start to one random target.
	RandomRandom Mode = "random_random"
	// RandomAll searches from one random start to every reachable target.
	RandomAll Mode = "random_all"
	// AllRandom searches from every start to one random target.
	AllRandom Mode = "all_random"
)

func (m Mode) Valid() bool {
	switch m {
	case RandomRandom, RandomAll, AllRandom:
		return true
	}
	return false
}

// FindPath connects starts to targets through navigation according to mode
// and returns the union of the discovered paths. found is false when no
// path exists; that is a normal outcome, not an error.
func FindPath(navigation, starts, targets *grid.PositionSet, mode Mode, rng *grid.Rand) (*grid.PositionSet, bool) {
	out := grid.NewPositionSet()
	switch mode {
	case RandomAll:
		start, ok := rng.Pick(starts)
		if !ok || targets.IsEmpty() || !navigation.Has(start) {
			return out, false
		}
		found := false
		for _, path := range searchAll(navigation, start, targets) {
			out.AddAll(grid.NewPositionSet(path...))
			found = true
		}
		return out, found

	case AllRandom:
		target, ok := rng.Pick(targets)
		if !ok || !navigation.Has(target) {
			return out, false
		}
		found := false
		for _, start := range starts.Points() {
			if path := Search(navigation, start, target); path != nil {
				out.AddAll(grid.NewPositionSet(path...))
				found = true
			}
		}
		return out, found

	default:
		start, okStart := rng.Pick(starts)
		target, okTarget := rng.Pick(targets)
		if !okStart || !okTarget {
			return out, false
		}
		path := Search(navigation, start, target)
		if path == nil {
			return out, false
		}
		return grid.NewPositionSet(path...), true
	}
}

// Search runs a breadth-first search from start to target over navigation
// and returns the path including both ends, or nil when either end is off
// the navigation set or target is unreachable.
func Search(navigation *grid.PositionSet, start, target grid.Point) []grid.Point {
	if !navigation.Has(start) || !navigation.Has(target) {
		return nil
	}
	if start == target {
		return []grid.Point{start}
	}

	parents := map[grid.Point]grid.Point{}
	visited := grid.NewPositionSet(start)
	queue := []grid.Point{start}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, next := range cur.Neighbors4() {
			if !navigation.Has(next) || visited.Has(next) {
				continue
			}
			visited.Add(next)
			parents[next] = cur
			if next == target {
				return backtrack(parents, start, target)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// searchAll runs one breadth-first search from start, recording a path each
// time a remaining target is reached. It stops once no targets remain.
func searchAll(navigation *grid.PositionSet, start grid.Point, targets *grid.PositionSet) [][]grid.Point {
	remaining := targets.Intersect(navigation)
	var paths [][]grid.Point
	if remaining.Has(start) {
		paths = append(paths, []grid.Point{start})
		remaining.Remove(start)
	}

	parents := map[grid.Point]grid.Point{}
	visited := grid.NewPositionSet(start)
	queue := []grid.Point{start}
	for i := 0; i < len(queue) && !remaining.IsEmpty(); i++ {
		cur := queue[i]
		for _, next := range cur.Neighbors4() {
			if !navigation.Has(next) || visited.Has(next) {
				continue
			}
			visited.Add(next)
			parents[next] = cur
			queue = append(queue, next)
			if remaining.Has(next) {
				paths = append(paths, backtrack(parents, start, next))
				remaining.Remove(next)
			}
		}
	}
	return paths
}

// backtrack follows parent pointers from target to start and returns the
// path in walking order.
func backtrack(parents map[grid.Point]grid.Point, start, target grid.Point) []grid.Point {
	path := []grid.Point{target}
	for cur := target; cur != start; {
		cur = parents[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
