// Package grid holds the integer plane shared by every generator: points,
// rectangles, position sets, the seeded random stream and the per-layer
// context that bundles them.
package grid

import (
	"fmt"
	"math"
)

// Point is a single integer grid coordinate.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Cardinals lists the four unit steps in the order every search uses:
// up, right, down, left.
var Cardinals = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Neighbors4 returns the four cardinal neighbours in Cardinals order.
func (p Point) Neighbors4() [4]Point {
	var out [4]Point
	for i, d := range Cardinals {
		out[i] = p.Add(d)
	}
	return out
}

// DistanceSq is the squared euclidean distance between p and q.
func (p Point) DistanceSq(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Distance is the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(float64(p.DistanceSq(q)))
}

// Manhattan is the taxicab distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Less orders points row-major: by Y, then X.
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
