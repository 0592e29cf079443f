package walker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/testutil"
)

func TestGenerator_Properties(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		w, h int
		cfg  Config
	}{
		{"defaults", 60, 40, DefaultConfig()},
		{"fixed start", 30, 30, Config{Iterations: 4, WalkLength: 6, CorridorLength: 8, CorridorCount: 10, RoomPercent: 0.5, StartX: 3, StartY: 4}},
		{"long corridors hit the edge", 12, 12, Config{Iterations: 2, WalkLength: 3, CorridorLength: 40, CorridorCount: 6, RoomPercent: 1, RandomStartPosition: true}},
		{"no rooms", 20, 20, Config{CorridorLength: 5, CorridorCount: 4, RoomPercent: 0, RandomStartPosition: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 6; seed++ {
				out, err := New(tt.cfg).Generate(nil, grid.NewContext(tt.w, tt.h, seed))
				require.NoError(t, err)
				testutil.AssertInBounds(t, out, tt.w, tt.h)
				testutil.AssertSingleIsland(t, out)
			}
		})
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	g := New(DefaultConfig())
	a, err := g.Generate(nil, grid.NewContext(50, 50, 21))
	require.NoError(t, err)
	b, err := g.Generate(nil, grid.NewContext(50, 50, 21))
	require.NoError(t, err)
	testutil.AssertSetsEqual(t, a, b)
}

func TestDig_RoomSelection(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name    string
		percent float64
	}{
		{"none", 0},
		{"half", 0.5},
		{"all", 1},
		{"more than all is capped", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RoomPercent = tt.percent
			d := New(cfg).Dig(grid.NewContext(80, 80, 5))

			assert.LessOrEqual(t, len(d.Seeds), cfg.CorridorCount)
			for _, seed := range d.Seeds {
				assert.True(t, d.Corridors.Has(seed))
				assert.True(t, d.Rooms.Has(seed))
			}
			if tt.percent == 0 {
				assert.Empty(t, d.Seeds)
			}
		})
	}
}

func TestDig_FixedStartAndDeadEnds(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	cfg := Config{Iterations: 1, WalkLength: 0, CorridorLength: 5, CorridorCount: 1, RoomPercent: 0}
	cfg.StartX, cfg.StartY = 10, 10
	d := New(cfg).Dig(grid.NewContext(21, 21, 2))

	assert.Equal(t, grid.Pt(10, 10), d.Start)
	assert.Equal(t, 6, d.Corridors.Len(), "start plus a five cell run")
	// both ends of a single straight run are dead ends and seed a room
	assert.Len(t, d.DeadEnds, 2)
	for _, p := range d.DeadEnds {
		assert.True(t, d.Rooms.Has(p))
	}

	outside := New(Config{StartX: -4, StartY: 99}).Dig(grid.NewContext(9, 7, 2))
	assert.Equal(t, grid.Pt(4, 3), outside.Start)
}

func TestDig_DeadEndInsideRoom(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	// a one step run: the far end seeds a large room that swallows the start
	cfg := Config{Iterations: 60, WalkLength: 20, CorridorLength: 1, CorridorCount: 1, RoomPercent: 1, StartX: 10, StartY: 10}
	for seed := int64(0); seed < 6; seed++ {
		d := New(cfg).Dig(grid.NewContext(21, 21, seed))
		require.Len(t, d.Seeds, 1)
		require.True(t, d.Rooms.Has(d.Start))
		assert.Empty(t, d.DeadEnds, "dead ends already in a room are not grown again")
	}
}

func TestGenerator_EmptyGrid(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	out, err := New(DefaultConfig()).Generate(nil, grid.NewContext(0, 10, 1))
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}
