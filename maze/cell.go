package maze

// Coord is an integer grid position. X grows to the right and Y grows downward.
// Boundary walls reference coordinates one step outside the grid, so either
// component may be -1 or equal to the grid dimension.
type Coord struct {
	X int `json:"x"` // Column index of the cell
	Y int `json:"y"` // Row index of the cell
}

// Left returns the coordinate one step to the left.
func (c Coord) Left() Coord { return Coord{X: c.X - 1, Y: c.Y} }

// Right returns the coordinate one step to the right.
func (c Coord) Right() Coord { return Coord{X: c.X + 1, Y: c.Y} }

// Up returns the coordinate one step up.
func (c Coord) Up() Coord { return Coord{X: c.X, Y: c.Y - 1} }

// Down returns the coordinate one step down.
func (c Coord) Down() Coord { return Coord{X: c.X, Y: c.Y + 1} }

// Adjacent reports whether c and o are grid-adjacent (Manhattan distance of exactly one).
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx*dx+dy*dy == 1
}

// Cell represents a single cell in a maze grid.
// WalkDistance is only meaningful once the cell has been visited.
type Cell struct {
	Coord        Coord `json:"coord"`         // Position of the cell in the grid
	Visited      bool  `json:"visited"`       // Whether carving has reached the cell
	WalkDistance int   `json:"walk_distance"` // Edges from the origin along the carved tree
}
