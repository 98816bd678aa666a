package maze

import "errors"

// ErrInvalidDimensions is returned when a grid is built with a zero dimension.
var ErrInvalidDimensions = errors.New("invalid maze dimensions")

// Grid owns the cells of a maze and the walls between them.
//
// Cells are stored row by row. Interior walls are indexed by the cell on their
// left or top side: slot 2*i holds the wall east of cell i and slot 2*i+1 the
// wall south of it, which gives O(1) lookup for any adjacent pair.
type Grid struct {
	width    int
	height   int
	cells    []Cell
	walls    []bool
	interior int // interior walls still standing
	removed  int // interior walls removed since Build
	boundary []Wall
	outer    map[edge]struct{}
}

// NewGrid returns an empty grid. Call Build to populate it.
func NewGrid() *Grid {
	return &Grid{}
}

// Build clears the grid and fills it with width*height unvisited cells and one
// interior wall between every pair of grid-adjacent cells. A zero or negative
// dimension leaves the grid empty and returns ErrInvalidDimensions.
func (g *Grid) Build(width, height int) error {
	*g = Grid{}
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}

	g.width, g.height = width, height
	g.cells = make([]Cell, 0, width*height)
	g.walls = make([]bool, 2*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := len(g.cells)
			g.cells = append(g.cells, Cell{Coord: Coord{X: x, Y: y}})
			if x < width-1 {
				g.walls[2*i] = true
				g.interior++
			}
			if y < height-1 {
				g.walls[2*i+1] = true
				g.interior++
			}
		}
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.width + c.X
}

// cell returns a pointer into the cell set; c must be in bounds.
func (g *Grid) cell(c Coord) *Cell {
	return &g.cells[g.index(c)]
}

// Cell returns a copy of the cell at c.
func (g *Grid) Cell(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return *g.cell(c), true
}

// Cells returns a copy of every cell in row order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

func (g *Grid) visit(c Coord) {
	g.cell(c).Visited = true
}

// UnvisitedNeighbors returns the unvisited cells adjacent to c, checked in the
// order left, right, up, down. The order decides which random draw selects
// which neighbor, so it must not change.
func (g *Grid) UnvisitedNeighbors(c Coord) []Coord {
	return g.appendUnvisitedNeighbors(nil, c)
}

func (g *Grid) appendUnvisitedNeighbors(dst []Coord, c Coord) []Coord {
	for _, n := range [4]Coord{c.Left(), c.Right(), c.Up(), c.Down()} {
		if g.InBounds(n) && !g.cell(n).Visited {
			dst = append(dst, n)
		}
	}
	return dst
}

// Passages returns the in-bounds neighbors of c that are not separated from it
// by a wall, in the order left, right, up, down.
func (g *Grid) Passages(c Coord) []Coord {
	if !g.InBounds(c) {
		return nil
	}
	var out []Coord
	for _, n := range [4]Coord{c.Left(), c.Right(), c.Up(), c.Down()} {
		if g.InBounds(n) && !g.HasWall(c, n) {
			out = append(out, n)
		}
	}
	return out
}

// wallSlot maps an in-bounds adjacent pair to its interior wall slot.
func (g *Grid) wallSlot(a, b Coord) (int, bool) {
	if !g.InBounds(a) || !g.InBounds(b) || !a.Adjacent(b) {
		return 0, false
	}
	e := newEdge(a, b)
	i := g.index(e.a)
	if e.b.X == e.a.X+1 {
		return 2 * i, true
	}
	return 2*i + 1, true
}

// HasWall reports whether a wall, interior or boundary, stands between a and b.
func (g *Grid) HasWall(a, b Coord) bool {
	if slot, ok := g.wallSlot(a, b); ok {
		return g.walls[slot]
	}
	_, ok := g.outer[newEdge(a, b)]
	return ok
}

// RemoveWall removes the interior wall between a and b. The pair is unordered.
// It reports whether a wall was removed; a missing wall is a no-op.
func (g *Grid) RemoveWall(a, b Coord) bool {
	slot, ok := g.wallSlot(a, b)
	if !ok || !g.walls[slot] {
		return false
	}
	g.walls[slot] = false
	g.interior--
	g.removed++
	return true
}

// AddBoundary walls in the perimeter: one wall per unit of grid edge on each of
// the four sides. Calling it again is a no-op.
func (g *Grid) AddBoundary() {
	if g.outer != nil || len(g.cells) == 0 {
		return
	}

	g.outer = make(map[edge]struct{}, 2*(g.width+g.height))
	add := func(a, b Coord) {
		w := NewWall(a, b)
		w.Boundary = true
		g.boundary = append(g.boundary, w)
		g.outer[newEdge(a, b)] = struct{}{}
	}

	for y := 0; y < g.height; y++ {
		add(Coord{X: -1, Y: y}, Coord{X: 0, Y: y})
		add(Coord{X: g.width - 1, Y: y}, Coord{X: g.width, Y: y})
	}
	for x := 0; x < g.width; x++ {
		add(Coord{X: x, Y: -1}, Coord{X: x, Y: 0})
		add(Coord{X: x, Y: g.height - 1}, Coord{X: x, Y: g.height})
	}
}

// Walls returns the standing interior walls in cell order followed by the
// boundary walls in insertion order.
func (g *Grid) Walls() []Wall {
	out := make([]Wall, 0, g.interior+len(g.boundary))
	for i, c := range g.cells {
		if g.walls[2*i] {
			out = append(out, NewWall(c.Coord, c.Coord.Right()))
		}
		if g.walls[2*i+1] {
			out = append(out, NewWall(c.Coord, c.Coord.Down()))
		}
	}
	return append(out, g.boundary...)
}

// InteriorWallCount returns the number of interior walls still standing.
func (g *Grid) InteriorWallCount() int { return g.interior }

// RemovedWallCount returns the number of interior walls removed since Build.
func (g *Grid) RemovedWallCount() int { return g.removed }

// BoundaryWallCount returns the number of boundary walls.
func (g *Grid) BoundaryWallCount() int { return len(g.boundary) }
