package grid

import (
	"math/rand"
)

// Rand is the deterministic random stream of a layer. Every call advances
// the underlying source, so two streams built from the same seed produce the
// same values for the same call sequence.
type Rand struct {
	rand *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{rand: rand.New(rand.NewSource(seed))}
}

// Intn returns a value in [0, n). Non-positive n yields 0 without advancing.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rand.Intn(n)
}

// IntRange returns a value in [min, maxExclusive). An empty range yields min.
func (r *Rand) IntRange(min, maxExclusive int) int {
	if maxExclusive <= min {
		return min
	}
	return min + r.rand.Intn(maxExclusive-min)
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.rand.Float64()
}

// FloatRange returns a value in [min, max).
func (r *Rand) FloatRange(min, max float64) float64 {
	return min + r.rand.Float64()*(max-min)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.rand.Float64() < p
}

func (r *Rand) Int63() int64 {
	return r.rand.Int63()
}

// Shuffle performs a Fisher-Yates shuffle of n elements.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.rand.Intn(i + 1)
		swap(i, j)
	}
}

// Pick returns a uniformly random member of s, or false when s is empty.
func (r *Rand) Pick(s *PositionSet) (Point, bool) {
	points := s.Points()
	if len(points) == 0 {
		return Point{}, false
	}
	return points[r.Intn(len(points))], true
}
