package render

import "github.com/beka-birhanu/vinom-maze/maze"

// Rect is a pixel rectangle anchored at its upper-left corner.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Layout places maze coordinates on a window. CellSize is the pitch between
// neighboring coordinates and WallThickness the width of a wall segment.
type Layout struct {
	CellSize      int `json:"cell_size"`
	WallThickness int `json:"wall_thickness"`
	OffsetX       int `json:"offset_x"`
	OffsetY       int `json:"offset_y"`
}

// DrawSize returns the pixel length spanned by n coordinates.
func DrawSize(n, cellSize, wallThickness int) int {
	return n*(cellSize-wallThickness) + wallThickness*(n+1)
}

// Centered returns the layout that centers a width x height maze in a window.
func Centered(width, height, cellSize, wallThickness, windowW, windowH int) Layout {
	drawW := DrawSize(width, cellSize, wallThickness)
	drawH := DrawSize(height, cellSize, wallThickness)
	return Layout{
		CellSize:      cellSize,
		WallThickness: wallThickness,
		OffsetX:       windowW/2 - drawW/2,
		OffsetY:       windowH/2 - drawH/2,
	}
}

// NodeSize is the edge length of a drawn cell. Cells overlap the walls around
// them so that no gap shows once a wall is removed.
func (l Layout) NodeSize() int {
	return l.CellSize + l.WallThickness
}

// CellRect returns the square a cell is drawn in.
func (l Layout) CellRect(c maze.Coord) Rect {
	node := l.NodeSize()
	inset := l.CellSize/2 + l.WallThickness/2 - node/2
	return Rect{
		X: l.OffsetX + c.X*l.CellSize + inset,
		Y: l.OffsetY + c.Y*l.CellSize + inset,
		W: node,
		H: node,
	}
}

// WallRect returns the strip a wall is drawn in. Horizontal walls separate
// coordinates side by side and therefore run top to bottom.
func (l Layout) WallRect(w maze.Wall) Rect {
	first := w.A
	if w.B.X < first.X || w.B.Y < first.Y {
		first = w.B
	}

	if w.Orientation == maze.Horizontal {
		return Rect{
			X: l.OffsetX + first.X*l.CellSize + l.CellSize,
			Y: l.OffsetY + first.Y*l.CellSize,
			W: l.WallThickness,
			H: l.CellSize + l.WallThickness,
		}
	}
	return Rect{
		X: l.OffsetX + first.X*l.CellSize,
		Y: l.OffsetY + first.Y*l.CellSize + l.CellSize,
		W: l.CellSize + l.WallThickness,
		H: l.WallThickness,
	}
}
