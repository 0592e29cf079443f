package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/testutil"
)

func TestRand_Deterministic(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a, b := grid.NewRand(99), grid.NewRand(99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntRange(-5, 17), b.IntRange(-5, 17))
		assert.Equal(t, a.FloatRange(1, 2), b.FloatRange(1, 2))
	}
}

func TestRand_Ranges(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := grid.NewRand(1)
	for i := 0; i < 500; i++ {
		v := r.IntRange(3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.Less(t, v, 8)

		f := r.FloatRange(2.5, 3.5)
		assert.GreaterOrEqual(t, f, 2.5)
		assert.Less(t, f, 3.5)
	}

	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
	assert.Equal(t, 4, r.IntRange(4, 4))
	assert.Equal(t, 4, r.IntRange(4, 1))
	assert.False(t, r.Chance(0))
	assert.True(t, r.Chance(1))
}

func TestRand_ShuffleIsPermutation(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	grid.NewRand(5).Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, values)
}

func TestRand_Pick(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := grid.NewRand(3)
	_, ok := r.Pick(grid.NewPositionSet())
	assert.False(t, ok)

	s := grid.NewPositionSet(grid.Pt(1, 2), grid.Pt(4, 4))
	for i := 0; i < 20; i++ {
		p, ok := r.Pick(s)
		assert.True(t, ok)
		assert.True(t, s.Has(p))
	}
}

func TestContext(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := grid.NewContext(-3, 4, 1)
	assert.Equal(t, 0, ctx.Width)
	assert.Equal(t, 4, ctx.Height)
	assert.Equal(t, 0, ctx.Full().Len())

	ctx = grid.NewContext(3, 2, 1)
	assert.Equal(t, 6, ctx.Full().Len())
	assert.True(t, ctx.InBounds(grid.Pt(2, 1)))
	assert.False(t, ctx.InBounds(grid.Pt(3, 1)))
	assert.False(t, ctx.InBounds(grid.Pt(0, -1)))

	clipped := ctx.Clip(grid.NewPositionSet(grid.Pt(0, 0), grid.Pt(-1, 0), grid.Pt(2, 2)))
	assert.Equal(t, []grid.Point{{0, 0}}, clipped.Points())
}

func TestRect(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	r := grid.Rect{X: 2, Y: 3, W: 5, H: 4}
	assert.Equal(t, grid.Pt(4, 5), r.Center())
	assert.Equal(t, 20, r.Area())
	assert.True(t, r.Contains(grid.Pt(6, 6)))
	assert.False(t, r.Contains(grid.Pt(7, 6)))

	assert.Equal(t, grid.Rect{X: 4, Y: 3, W: 3, H: 2}, r.Intersect(grid.Rect{X: 4, Y: 0, W: 10, H: 5}))
	assert.True(t, r.Intersect(grid.Rect{X: 20, Y: 20, W: 2, H: 2}).Empty())
}

func TestIslands(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name      string
		rows      []string
		expected  int
		connected bool
	}{
		{"empty", []string{"...."}, 0, true},
		{"single", []string{"##..", ".#.."}, 1, true},
		{"diagonal is not adjacent", []string{"#.", ".#"}, 2, false},
		{"three", []string{"#.#.#"}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.SetFromRows(tt.rows...)
			islands := grid.Islands(s)
			assert.Len(t, islands, tt.expected)
			assert.Equal(t, tt.connected, grid.IsConnected(s))

			total := 0
			for _, island := range islands {
				total += island.Len()
			}
			assert.Equal(t, s.Len(), total)
		})
	}

	// discovery order follows the row-major scan
	islands := grid.Islands(testutil.SetFromRows("..#", "#.."))
	assert.True(t, islands[0].Has(grid.Pt(2, 0)))
	assert.True(t, islands[1].Has(grid.Pt(0, 1)))
}

func TestFloodFill(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	s := testutil.SetFromRows("###", "..#")
	order := grid.FloodFill(s, grid.Pt(0, 0))
	assert.Equal(t, []grid.Point{{0, 0}, {1, 0}, {2, 0}, {2, 1}}, order)
	assert.Nil(t, grid.FloodFill(s, grid.Pt(0, 1)))
}
