package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VoidMesh/gridgen/internal/grid"
)

// AssertInBounds verifies every member of s lies inside [0,width) x [0,height).
func AssertInBounds(t *testing.T, s *grid.PositionSet, width, height int, msgAndArgs ...interface{}) bool {
	t.Helper()

	ok := true
	for _, p := range s.Points() {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			ok = assert.Fail(t, "point out of bounds", "%s not inside %dx%d", p, width, height) && ok
		}
	}
	if !ok && len(msgAndArgs) > 0 {
		t.Log(msgAndArgs...)
	}
	return ok
}

// AssertSingleIsland verifies s is one non-empty 4-connected component.
func AssertSingleIsland(t *testing.T, s *grid.PositionSet, msgAndArgs ...interface{}) bool {
	t.Helper()

	if !assert.False(t, s.IsEmpty(), msgAndArgs...) {
		return false
	}
	return assert.Len(t, grid.Islands(s), 1, msgAndArgs...)
}

// AssertCardinalPath verifies consecutive path cells differ by exactly one
// unit along exactly one axis.
func AssertCardinalPath(t *testing.T, path []grid.Point, msgAndArgs ...interface{}) bool {
	t.Helper()

	ok := true
	for i := 1; i < len(path); i++ {
		if path[i-1].Manhattan(path[i]) != 1 {
			ok = assert.Fail(t, "non-cardinal step", "%s -> %s", path[i-1], path[i]) && ok
		}
	}
	return ok
}

// AssertSetsEqual compares two position sets by their sorted members.
func AssertSetsEqual(t *testing.T, expected, actual *grid.PositionSet, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.Equal(t, expected.Points(), actual.Points(), msgAndArgs...)
}

// SetFromRows builds a set from an ASCII picture where '#' marks a member.
func SetFromRows(rows ...string) *grid.PositionSet {
	s := grid.NewPositionSet()
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				s.Add(grid.Pt(x, y))
			}
		}
	}
	return s
}
