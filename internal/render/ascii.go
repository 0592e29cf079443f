// Package render turns position sets into text for terminals, golden files
// and the HTTP API.
package render

import (
	"strings"

	"github.com/VoidMesh/gridgen/internal/grid"
)

const (
	Floor = '#'
	Empty = '.'
)

// Marker overlays a single rune at a point, drawn on top of the floor.
type Marker struct {
	At   grid.Point
	Rune rune
}

// ASCII draws s over a width x height plane, one line per row, each line
// ending in a newline.
func ASCII(s *grid.PositionSet, width, height int, markers ...Marker) string {
	rows := Rows(s, width, height, markers...)
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// Rows is ASCII split into lines without trailing newlines.
func Rows(s *grid.PositionSet, width, height int, markers ...Marker) []string {
	width, height = max(width, 0), max(height, 0)
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(Empty), width))
	}
	s.Each(func(p grid.Point) {
		if p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height {
			cells[p.Y][p.X] = Floor
		}
	})
	for _, m := range markers {
		if m.At.X >= 0 && m.At.X < width && m.At.Y >= 0 && m.At.Y < height {
			cells[m.At.Y][m.At.X] = m.Rune
		}
	}

	rows := make([]string, height)
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows
}
