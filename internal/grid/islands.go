package grid

// FloodFill returns the 4-connected component of s containing start, in
// breadth-first discovery order. It returns nil when start is not in s.
func FloodFill(s *PositionSet, start Point) []Point {
	if !s.Has(start) {
		return nil
	}
	visited := NewPositionSet(start)
	queue := []Point{start}
	for i := 0; i < len(queue); i++ {
		for _, n := range queue[i].Neighbors4() {
			if s.Has(n) && !visited.Has(n) {
				visited.Add(n)
				queue = append(queue, n)
			}
		}
	}
	return queue
}

// Islands partitions s into its 4-connected components. Islands are listed
// in the order their first cell appears in a row-major scan.
func Islands(s *PositionSet) []*PositionSet {
	var islands []*PositionSet
	seen := NewPositionSet()
	for _, p := range s.Points() {
		if seen.Has(p) {
			continue
		}
		island := NewPositionSet(FloodFill(s, p)...)
		seen.AddAll(island)
		islands = append(islands, island)
	}
	return islands
}

// IsConnected reports whether s forms a single island. Empty sets count as
// connected.
func IsConnected(s *PositionSet) bool {
	if s.IsEmpty() {
		return true
	}
	return len(FloodFill(s, s.Points()[0])) == s.Len()
}
