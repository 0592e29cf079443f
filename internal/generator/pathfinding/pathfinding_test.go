package pathfinding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/testutil"
)

type layerMap map[string]*grid.PositionSet

func (m layerMap) Layer(name string) (*grid.PositionSet, bool) {
	s, ok := m[name]
	return s, ok
}

func TestFindPath_ScenarioOpenGrid(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	nav := grid.NewContext(5, 5, 0).Full()
	starts := grid.NewPositionSet(grid.Pt(0, 0))
	targets := grid.NewPositionSet(grid.Pt(4, 4))

	path, found := FindPath(nav, starts, targets, RandomRandom, grid.NewRand(1))
	require.True(t, found)
	assert.Equal(t, 9, path.Len())

	ordered := Search(nav, grid.Pt(0, 0), grid.Pt(4, 4))
	require.Len(t, ordered, 9)
	assert.Equal(t, grid.Pt(0, 0), ordered[0])
	assert.Equal(t, grid.Pt(4, 4), ordered[8])
	testutil.AssertCardinalPath(t, ordered)
	for _, p := range ordered {
		assert.True(t, nav.Has(p))
	}
}

func TestSearch(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	maze := testutil.SetFromRows(
		"#####",
		"....#",
		"#####",
		"#....",
		"#####",
	)

	tests := []struct {
		name     string
		start    grid.Point
		target   grid.Point
		expected int
	}{
		{"winding corridor", grid.Pt(0, 0), grid.Pt(4, 4), 17},
		{"same cell", grid.Pt(2, 2), grid.Pt(2, 2), 1},
		{"start off navigation", grid.Pt(0, 1), grid.Pt(4, 4), 0},
		{"target off navigation", grid.Pt(0, 0), grid.Pt(4, 3), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := Search(maze, tt.start, tt.target)
			assert.Len(t, path, tt.expected)
			if tt.expected > 0 {
				testutil.AssertCardinalPath(t, path)
			}
		})
	}

	islands := testutil.SetFromRows("##.##")
	assert.Nil(t, Search(islands, grid.Pt(0, 0), grid.Pt(4, 0)))
}

func TestFindPath_Modes(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	nav := testutil.SetFromRows(
		"#####",
		"#...#",
		"#####",
	)

	t.Run("random start to all targets", func(t *testing.T) {
		starts := grid.NewPositionSet(grid.Pt(0, 0))
		targets := grid.NewPositionSet(grid.Pt(4, 0), grid.Pt(0, 2), grid.Pt(4, 2), grid.Pt(9, 9))
		path, found := FindPath(nav, starts, targets, RandomAll, grid.NewRand(1))
		require.True(t, found)
		for _, p := range []grid.Point{{0, 0}, {4, 0}, {0, 2}, {4, 2}} {
			assert.True(t, path.Has(p), "%s on a path", p)
		}
		assert.False(t, path.Has(grid.Pt(9, 9)))
		testutil.AssertSingleIsland(t, path)
	})

	t.Run("all starts to random target", func(t *testing.T) {
		starts := grid.NewPositionSet(grid.Pt(0, 0), grid.Pt(4, 2), grid.Pt(2, 1))
		targets := grid.NewPositionSet(grid.Pt(2, 0))
		path, found := FindPath(nav, starts, targets, AllRandom, grid.NewRand(1))
		require.True(t, found)
		assert.True(t, path.Has(grid.Pt(0, 0)))
		assert.True(t, path.Has(grid.Pt(4, 2)))
		assert.False(t, path.Has(grid.Pt(2, 1)), "start off navigation is skipped")
		assert.True(t, path.Has(grid.Pt(2, 0)))
	})

	t.Run("target set with no reachable members", func(t *testing.T) {
		starts := grid.NewPositionSet(grid.Pt(0, 0))
		targets := grid.NewPositionSet(grid.Pt(2, 1))
		for _, mode := range []Mode{RandomRandom, RandomAll, AllRandom} {
			path, found := FindPath(nav, starts, targets, mode, grid.NewRand(1))
			assert.False(t, found, string(mode))
			assert.True(t, path.IsEmpty(), string(mode))
		}
	})

	t.Run("empty sets", func(t *testing.T) {
		for _, mode := range []Mode{RandomRandom, RandomAll, AllRandom} {
			_, found := FindPath(nav, grid.NewPositionSet(), nav, mode, grid.NewRand(1))
			assert.False(t, found, string(mode))
		}
	})
}

func TestFindPath_RandomRandomEndpoints(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	nav := grid.NewContext(12, 12, 0).Full()
	starts := testutil.SetFromRows("###")
	targets := grid.NewPositionSet(grid.Pt(11, 11), grid.Pt(10, 11))

	for seed := int64(0); seed < 10; seed++ {
		path, found := FindPath(nav, starts, targets, RandomRandom, grid.NewRand(seed))
		require.True(t, found)
		assert.False(t, path.Intersect(starts).IsEmpty())
		assert.False(t, path.Intersect(targets).IsEmpty())
		testutil.AssertSingleIsland(t, path)
	}
}

func TestGenerator_Generate(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	layers := layerMap{
		"floor": grid.NewContext(5, 5, 0).Full(),
		"spawn": grid.NewPositionSet(grid.Pt(0, 0)),
		"exit":  grid.NewPositionSet(grid.Pt(4, 0)),
		"void":  grid.NewPositionSet(),
	}

	t.Run("path is added to the input", func(t *testing.T) {
		g := New(Config{NavigationLayer: "floor", StartLayer: "spawn", TargetLayer: "exit"}, layers)
		in := grid.NewPositionSet(grid.Pt(2, 4))
		out, err := g.Generate(in, grid.NewContext(5, 5, 3))
		require.NoError(t, err)
		assert.True(t, g.Found())
		assert.Equal(t, 6, out.Len())
		assert.True(t, out.Has(grid.Pt(2, 4)))
	})

	t.Run("no path is not an error", func(t *testing.T) {
		g := New(Config{NavigationLayer: "void", StartLayer: "spawn", TargetLayer: "exit", Mode: AllRandom}, layers)
		out, err := g.Generate(grid.NewPositionSet(), grid.NewContext(5, 5, 3))
		require.NoError(t, err)
		assert.False(t, g.Found())
		assert.True(t, out.IsEmpty())
	})

	t.Run("missing layer", func(t *testing.T) {
		g := New(Config{NavigationLayer: "floor", StartLayer: "spawn", TargetLayer: "nowhere"}, layers)
		_, err := g.Generate(grid.NewPositionSet(), grid.NewContext(5, 5, 3))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrLayerNotFound))
		assert.Contains(t, err.Error(), "nowhere")
	})

	t.Run("no lookup", func(t *testing.T) {
		_, err := New(DefaultConfig(), nil).Generate(grid.NewPositionSet(), grid.NewContext(5, 5, 3))
		assert.ErrorIs(t, err, ErrLayerNotFound)
	})

	t.Run("unknown mode", func(t *testing.T) {
		g := New(Config{NavigationLayer: "floor", StartLayer: "spawn", TargetLayer: "exit", Mode: "sideways"}, layers)
		_, err := g.Generate(grid.NewPositionSet(), grid.NewContext(5, 5, 3))
		assert.Error(t, err)
	})
}
