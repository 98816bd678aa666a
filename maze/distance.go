package maze

// NormalizedDistance maps a walk distance onto (0, 1] relative to the longest
// walk distance, as (walk+1)/longest clamped to 1. It returns false when
// longest is zero, in which case callers use the origin end of their scale.
func NormalizedDistance(walk, longest int) (float64, bool) {
	if longest <= 0 {
		return 0, false
	}
	t := float64(walk+1) / float64(longest)
	if t > 1 {
		t = 1
	}
	return t, true
}

// Normalized returns the normalized walk distance of the cell at c.
func (m *Maze) Normalized(c Coord) (float64, bool) {
	cell, ok := m.Cell(c)
	if !ok {
		return 0, false
	}
	return NormalizedDistance(cell.WalkDistance, m.longest)
}
