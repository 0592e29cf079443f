package bsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/testutil"
)

func TestPartition(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name      string
		root      grid.Rect
		minW      int
		minH      int
		expectOne bool
	}{
		{"large grid splits", grid.Rect{W: 60, H: 40}, 6, 6, false},
		{"grid below minimum stays whole", grid.Rect{W: 10, H: 10}, 20, 20, true},
		{"minimums below two are clamped", grid.Rect{W: 12, H: 12}, 0, -4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Partition(tt.root, grid.NewRand(3), tt.minW, tt.minH)
			require.NotEmpty(t, tree.Leaves)
			if tt.expectOne {
				assert.Len(t, tree.Leaves, 1)
				assert.Equal(t, []int{0}, tree.Terminals)
				assert.Empty(t, tree.Parents)
				return
			}

			assert.NotEmpty(t, tree.Parents)
			assert.Equal(t, 0, tree.Parents[0], "root is split first")
			assert.Equal(t, len(tree.Leaves), len(tree.Parents)+len(tree.Terminals))

			area := 0
			for _, idx := range tree.Terminals {
				leaf := tree.Leaves[idx]
				assert.True(t, leaf.IsTerminal())
				assert.GreaterOrEqual(t, leaf.Rect.W, 2)
				assert.GreaterOrEqual(t, leaf.Rect.H, 2)
				area += leaf.Rect.Area()
			}
			assert.Equal(t, tt.root.Area(), area, "terminal leaves tile the root")

			for _, idx := range tree.Parents {
				leaf := tree.Leaves[idx]
				assert.Equal(t, idx, tree.Leaves[leaf.First].Parent)
				assert.Equal(t, idx, tree.Leaves[leaf.Second].Parent)
			}
		})
	}
}

func TestGenerator_FullMapIsConnected(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	sizes := []struct{ w, h, min, corridor int }{
		{20, 20, 5, 1},
		{48, 32, 6, 1},
		{64, 64, 8, 2},
		{30, 60, 4, 3},
	}

	for _, size := range sizes {
		for seed := int64(0); seed < 10; seed++ {
			g := New(Config{MinLeafWidth: size.min, MinLeafHeight: size.min, CorridorWidth: size.corridor})
			out, err := g.Generate(grid.NewPositionSet(), grid.NewContext(size.w, size.h, seed))
			require.NoError(t, err)

			testutil.AssertInBounds(t, out, size.w, size.h)
			testutil.AssertSingleIsland(t, out, "size %dx%d seed %d", size.w, size.h, seed)
			for _, p := range out.Points() {
				assert.True(t, p.X >= border && p.Y >= border && p.X < size.w-border && p.Y < size.h-border,
					"%s inside the cleared border", p)
			}
		}
	}
}

func TestGenerator_OnlyRooms(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := Config{MinLeafWidth: 5, MinLeafHeight: 5, CorridorWidth: 1, OnlyRooms: true}
	first, err := New(cfg).Generate(nil, grid.NewContext(20, 20, 42))
	require.NoError(t, err)
	second, err := New(cfg).Generate(nil, grid.NewContext(20, 20, 42))
	require.NoError(t, err)

	require.False(t, first.IsEmpty())
	testutil.AssertSetsEqual(t, first, second)

	d := New(cfg).Build(grid.NewContext(20, 20, 42))
	assert.True(t, first.Intersect(d.Corridors).IsEmpty(), "no corridor cells, even inside rooms")
	testutil.AssertSetsEqual(t, d.Floor().Difference(d.Corridors), first)
	for _, p := range first.Points() {
		assert.True(t, d.RoomCells.Has(p))
	}
}

func TestGenerator_OutputModes(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	base := Config{MinLeafWidth: 6, MinLeafHeight: 6, CorridorWidth: 1}
	d := New(base).Build(grid.NewContext(40, 30, 9))
	require.True(t, d.HasRooms)

	tests := []struct {
		name   string
		mutate func(c *Config)
		check  func(t *testing.T, out *grid.PositionSet)
	}{
		{
			name:   "start only",
			mutate: func(c *Config) { c.OnlyStart = true },
			check: func(t *testing.T, out *grid.PositionSet) {
				assert.Equal(t, []grid.Point{d.Start}, out.Points())
				assert.True(t, d.RoomCells.Has(d.Start))
			},
		},
		{
			name:   "end only",
			mutate: func(c *Config) { c.OnlyEnd = true },
			check: func(t *testing.T, out *grid.PositionSet) {
				assert.Equal(t, []grid.Point{d.End}, out.Points())
				for _, r := range d.Rooms {
					assert.LessOrEqual(t, r.Center().DistanceSq(d.Start), d.End.DistanceSq(d.Start))
				}
			},
		},
		{
			name:   "corridors only",
			mutate: func(c *Config) { c.OnlyCorridors = true },
			check: func(t *testing.T, out *grid.PositionSet) {
				assert.True(t, out.Intersect(d.RoomCells).IsEmpty())
				testutil.AssertSetsEqual(t, d.Floor().Difference(d.RoomCells), out)
			},
		},
		{
			name:   "start wins over rooms",
			mutate: func(c *Config) { c.OnlyStart, c.OnlyRooms = true, true },
			check: func(t *testing.T, out *grid.PositionSet) {
				assert.Equal(t, 1, out.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			out, err := New(cfg).Generate(nil, grid.NewContext(40, 30, 9))
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestGenerator_DegenerateGrids(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		w, h int
		cfg  Config
	}{
		{"zero sized", 0, 0, DefaultConfig()},
		{"interior too thin for a room", 5, 5, DefaultConfig()},
		{"start on empty dungeon", 4, 40, Config{OnlyStart: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(tt.cfg).Generate(nil, grid.NewContext(tt.w, tt.h, 1))
			require.NoError(t, err)
			assert.True(t, out.IsEmpty())
		})
	}
}

func TestElbowPath(t *testing.T) {
	path := elbowPath(grid.Pt(1, 1), grid.Pt(3, 4), true)
	assert.Equal(t, []grid.Point{{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}, {3, 4}}, path)
	testutil.AssertCardinalPath(t, path)

	path = elbowPath(grid.Pt(3, 4), grid.Pt(1, 1), false)
	assert.Equal(t, []grid.Point{{3, 4}, {3, 3}, {3, 2}, {3, 1}, {2, 1}, {1, 1}}, path)

	assert.Equal(t, []grid.Point{{2, 2}}, siblingPath(grid.Pt(2, 2), grid.Pt(2, 2)))
}

func BenchmarkGenerator(b *testing.B) {
	g := New(DefaultConfig())
	for i := 0; i < b.N; i++ {
		_, _ = g.Generate(nil, grid.NewContext(128, 128, int64(i)))
	}
}
