package maze

import "fmt"

// Orientation tells which axis a wall separates its two coordinates along.
type Orientation int

const (
	// Horizontal walls separate coordinates whose X differs.
	Horizontal Orientation = iota
	// Vertical walls separate coordinates whose Y differs.
	Vertical
)

// String returns the lower-case orientation name.
func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an orientation name.
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "horizontal":
		*o = Horizontal
	case "vertical":
		*o = Vertical
	default:
		return fmt.Errorf("unknown wall orientation %q", text)
	}
	return nil
}

// Wall blocks passage between two grid-adjacent coordinates.
// Boundary walls pair a border cell with the coordinate just outside the grid.
type Wall struct {
	A           Coord       `json:"a"`
	B           Coord       `json:"b"`
	Orientation Orientation `json:"orientation"`
	Boundary    bool        `json:"boundary"`
}

// NewWall creates a wall between a and b, deriving its orientation.
func NewWall(a, b Coord) Wall {
	o := Vertical
	if a.X != b.X {
		o = Horizontal
	}
	return Wall{A: a, B: b, Orientation: o}
}

// edge is an unordered coordinate pair normalized so that a sorts before b.
type edge struct {
	a, b Coord
}

func newEdge(a, b Coord) edge {
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		a, b = b, a
	}
	return edge{a: a, b: b}
}
