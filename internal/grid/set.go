package grid

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// PositionSet is a set of unique grid coordinates. The zero value is an
// empty set ready for use; a nil *PositionSet reads as empty.
type PositionSet struct {
	cells mapset.Set[Point]
	ready bool
}

// NewPositionSet returns a set holding the given points.
func NewPositionSet(points ...Point) *PositionSet {
	s := &PositionSet{cells: mapset.New[Point](), ready: true}
	for _, p := range points {
		s.cells.Put(p)
	}
	return s
}

func (s *PositionSet) lazyInit() {
	if !s.ready {
		s.cells = mapset.New[Point]()
		s.ready = true
	}
}

func (s *PositionSet) Add(p Point) {
	s.lazyInit()
	s.cells.Put(p)
}

func (s *PositionSet) AddAll(other *PositionSet) {
	other.Each(s.Add)
}

func (s *PositionSet) Remove(p Point) {
	if s == nil || !s.ready {
		return
	}
	s.cells.Remove(p)
}

func (s *PositionSet) RemoveAll(other *PositionSet) {
	other.Each(s.Remove)
}

func (s *PositionSet) Has(p Point) bool {
	if s == nil || !s.ready {
		return false
	}
	return s.cells.Has(p)
}

func (s *PositionSet) Len() int {
	if s == nil || !s.ready {
		return 0
	}
	return s.cells.Size()
}

func (s *PositionSet) IsEmpty() bool {
	return s.Len() == 0
}

// Each calls fn for every point in unspecified order. Use Points when the
// order matters.
func (s *PositionSet) Each(fn func(Point)) {
	if s == nil || !s.ready {
		return
	}
	s.cells.Each(fn)
}

// Points returns the members sorted row-major (Y, then X). Every random pick
// from a set indexes into this slice so results only depend on the seed.
func (s *PositionSet) Points() []Point {
	out := make([]Point, 0, s.Len())
	s.Each(func(p Point) {
		out = append(out, p)
	})
	slices.SortFunc(out, func(a, b Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

func (s *PositionSet) Clone() *PositionSet {
	out := NewPositionSet()
	out.AddAll(s)
	return out
}

// Union returns s ∪ other.
func (s *PositionSet) Union(other *PositionSet) *PositionSet {
	out := s.Clone()
	out.AddAll(other)
	return out
}

// Difference returns s − other.
func (s *PositionSet) Difference(other *PositionSet) *PositionSet {
	out := NewPositionSet()
	s.Each(func(p Point) {
		if !other.Has(p) {
			out.Add(p)
		}
	})
	return out
}

// Intersect returns s ∩ other.
func (s *PositionSet) Intersect(other *PositionSet) *PositionSet {
	out := NewPositionSet()
	s.Each(func(p Point) {
		if other.Has(p) {
			out.Add(p)
		}
	})
	return out
}

// Translate returns a copy with every point shifted by d.
func (s *PositionSet) Translate(d Point) *PositionSet {
	out := NewPositionSet()
	s.Each(func(p Point) {
		out.Add(p.Add(d))
	})
	return out
}

// Clip returns the members that fall inside [0,width) x [0,height).
func (s *PositionSet) Clip(width, height int) *PositionSet {
	out := NewPositionSet()
	s.Each(func(p Point) {
		if p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height {
			out.Add(p)
		}
	})
	return out
}

// Bounds returns the smallest rectangle containing every member.
func (s *PositionSet) Bounds() Rect {
	if s.IsEmpty() {
		return Rect{}
	}
	first := true
	var minX, minY, maxX, maxY int
	s.Each(func(p Point) {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			return
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	})
	return Rect{X: minX, Y: minY, W: maxX - minX + 1, H: maxY - minY + 1}
}

func (s *PositionSet) Equal(other *PositionSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	equal := true
	s.Each(func(p Point) {
		if !other.Has(p) {
			equal = false
		}
	})
	return equal
}

// MarshalJSON encodes the set as a sorted array of [x, y] pairs.
func (s *PositionSet) MarshalJSON() ([]byte, error) {
	points := s.Points()
	pairs := make([][2]int, len(points))
	for i, p := range points {
		pairs[i] = [2]int{p.X, p.Y}
	}
	return json.Marshal(pairs)
}

func (s *PositionSet) UnmarshalJSON(data []byte) error {
	var pairs [][2]int
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("failed to decode position set: %w", err)
	}
	s.cells = mapset.New[Point]()
	s.ready = true
	for _, pair := range pairs {
		s.cells.Put(Point{X: pair[0], Y: pair[1]})
	}
	return nil
}
