package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/gridgen/internal/testutil"
)

func TestNewGenerator(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 12345},
		{"zero seed", 0},
		{"negative seed", -9876},
		{"max int64 seed", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := NewGenerator(tt.seed)
			require.NotNil(t, generator)
			assert.Equal(t, tt.seed, generator.Seed())
		})
	}
}

func TestGenerator_ValueRange(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	generator := NewGenerator(42)
	for x := -20; x < 20; x++ {
		for y := -20; y < 20; y++ {
			v := generator.Value(float64(x)*0.37, float64(y)*0.41)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	a, b := NewGenerator(7), NewGenerator(7)
	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.13, float64(i)*0.29
		assert.Equal(t, a.Value(x, y), b.Value(x, y))
	}

	var _ Source = a
}
