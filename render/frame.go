// Package render turns a maze into drawable geometry: colored cell squares
// shaded by walk distance and wall strips, positioned by a Layout.
package render

import (
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Source is the part of a maze a frame is composed from.
type Source interface {
	fmt.Stringer
	State() maze.State
	Cells() []maze.Cell
	Walls() []maze.Wall
	LongestWalkDistance() int
}

// Shape is one filled rectangle of a frame.
type Shape struct {
	Rect
	Color string `json:"color"`
}

// Frame is everything needed to draw a maze once.
type Frame struct {
	State               maze.State `json:"state"`
	LongestWalkDistance int        `json:"longest_walk_distance"`
	Layout              Layout     `json:"layout"`
	WallsVisible        bool       `json:"walls_visible"`
	Cells               []Shape    `json:"cells"`
	Walls               []Shape    `json:"walls"`
}

// Compose lays out every cell, then every wall, of m. Cells are painted over
// by walls, so hidden walls are left out entirely.
func Compose(m Source, layout Layout, palette Palette, wallsVisible bool) Frame {
	longest := m.LongestWalkDistance()
	cells := m.Cells()

	f := Frame{
		State:               m.State(),
		LongestWalkDistance: longest,
		Layout:              layout,
		WallsVisible:        wallsVisible,
		Cells:               make([]Shape, 0, len(cells)),
	}

	for _, c := range cells {
		f.Cells = append(f.Cells, Shape{
			Rect:  layout.CellRect(c.Coord),
			Color: palette.CellColor(c.WalkDistance, longest).Hex(),
		})
	}

	if !wallsVisible {
		return f
	}
	walls := m.Walls()
	f.Walls = make([]Shape, 0, len(walls))
	wall := palette.Wall.Hex()
	for _, w := range walls {
		f.Walls = append(f.Walls, Shape{Rect: layout.WallRect(w), Color: wall})
	}
	return f
}

// ASCII draws m as text.
func ASCII(m Source) string {
	return m.String()
}
