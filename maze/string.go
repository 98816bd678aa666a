package maze

import "strings"

// String provides a textual representation of the maze. Unvisited cells show a
// dot and the cell carving continues from shows an asterisk. The perimeter is
// only drawn once boundary walls exist.
func (m *Maze) String() string {
	var b strings.Builder
	w, h := m.Width(), m.Height()
	current, carving := m.Current()

	for y := 0; y < h; y++ {
		// Wall row above the cells
		b.WriteString("+")
		for x := 0; x < w; x++ {
			c := Coord{X: x, Y: y}
			if m.HasWall(c.Up(), c) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")

		// Cell row
		for x := 0; x < w; x++ {
			c := Coord{X: x, Y: y}
			if m.HasWall(c.Left(), c) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}

			cell, _ := m.Cell(c)
			switch {
			case carving && c == current:
				b.WriteString(" * ")
			case !cell.Visited:
				b.WriteString(" . ")
			default:
				b.WriteString("   ")
			}
		}
		last := Coord{X: w - 1, Y: y}
		if m.HasWall(last, last.Right()) {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if h > 0 {
		b.WriteString("+")
		for x := 0; x < w; x++ {
			c := Coord{X: x, Y: h - 1}
			if m.HasWall(c, c.Down()) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
