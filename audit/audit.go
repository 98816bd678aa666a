// Package audit checks that a carved maze is perfect: every cell reachable by
// exactly one path, a closed perimeter and walk distances that match the tree.
package audit

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

var (
	ErrNotGenerated = errors.New("maze is not generated")
	ErrNotSpanning  = errors.New("removed walls do not form a spanning tree")
	ErrCycle        = errors.New("carved passages contain a cycle")
	ErrDisconnected = errors.New("cells unreachable from origin")
	ErrBoundary     = errors.New("perimeter is incomplete")
	ErrDistance     = errors.New("walk distance does not match the carved tree")
)

// Maze is the read-only view of a maze that Inspect needs.
type Maze interface {
	State() maze.State
	Width() int
	Height() int
	Origin() maze.Coord
	Cells() []maze.Cell
	Walls() []maze.Wall
	HasWall(a, b maze.Coord) bool
	Passages(c maze.Coord) []maze.Coord
	RemovedWallCount() int
	LongestWalkDistance() int
}

// Report holds the measurements taken by Inspect.
type Report struct {
	Cells           int `json:"cells"`
	RemovedWalls    int `json:"removed_walls"`
	ExpectedRemoved int `json:"expected_removed"`
	Reachable       int `json:"reachable"`
	Components      int `json:"components"`
	BoundaryWalls   int `json:"boundary_walls"`
	DeepestCell     int `json:"deepest_cell"`
	LongestReported int `json:"longest_reported"`

	Violations []string `json:"violations,omitempty"`

	errs []error
}

// Err returns nil for a perfect maze and otherwise an error matching every
// violated property with errors.Is.
func (r Report) Err() error {
	return errors.Join(r.errs...)
}

// OK reports whether no property was violated.
func (r Report) OK() bool { return len(r.errs) == 0 }

func (r *Report) fail(err error, format string, args ...any) {
	wrapped := fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
	r.errs = append(r.errs, wrapped)
	r.Violations = append(r.Violations, wrapped.Error())
}

// Inspect measures m and records every property it violates. Only a Generated
// maze can be inspected.
func Inspect(m Maze) Report {
	var r Report
	if m.State() != maze.Generated {
		r.errs = append(r.errs, ErrNotGenerated)
		r.Violations = append(r.Violations, ErrNotGenerated.Error())
		return r
	}

	cells := m.Cells()
	r.Cells = len(cells)
	r.RemovedWalls = m.RemovedWallCount()
	r.LongestReported = m.LongestWalkDistance()
	if r.Cells == 0 {
		return r
	}
	r.ExpectedRemoved = r.Cells - 1

	depth := walk(m, m.Origin())
	r.Reachable = len(depth)
	r.Components = components(m, cells)

	if r.RemovedWalls != r.ExpectedRemoved {
		r.fail(ErrNotSpanning, "%d walls removed, want %d", r.RemovedWalls, r.ExpectedRemoved)
	}
	if r.RemovedWalls > r.Cells-r.Components {
		r.fail(ErrCycle, "%d passages over %d cells in %d components", r.RemovedWalls, r.Cells, r.Components)
	}
	if r.Reachable != r.Cells {
		r.fail(ErrDisconnected, "%d of %d cells reachable", r.Reachable, r.Cells)
	}

	inspectBoundary(m, &r)

	for _, c := range cells {
		d, ok := depth[c.Coord]
		if !ok {
			continue
		}
		if d != c.WalkDistance {
			r.fail(ErrDistance, "cell %v records %d, tree depth is %d", c.Coord, c.WalkDistance, d)
		}
		if d > r.DeepestCell {
			r.DeepestCell = d
		}
	}
	if r.DeepestCell != r.LongestReported {
		r.fail(ErrDistance, "longest walk distance is %d, deepest cell is %d", r.LongestReported, r.DeepestCell)
	}

	return r
}

// walk returns the breadth-first depth of every cell reachable from origin.
func walk(m Maze, origin maze.Coord) map[maze.Coord]int {
	depth := map[maze.Coord]int{origin: 0}
	frontier := queue.New[maze.Coord]()
	frontier.Enqueue(origin)
	for !frontier.Empty() {
		c := frontier.Dequeue()
		for _, n := range m.Passages(c) {
			if _, seen := depth[n]; !seen {
				depth[n] = depth[c] + 1
				frontier.Enqueue(n)
			}
		}
	}
	return depth
}

func components(m Maze, cells []maze.Cell) int {
	seen := mapset.New[maze.Coord]()
	count := 0
	for _, c := range cells {
		if seen.Has(c.Coord) {
			continue
		}
		count++
		for n := range walk(m, c.Coord) {
			seen.Put(n)
		}
	}
	return count
}

type side struct {
	a, b maze.Coord
}

func newSide(a, b maze.Coord) side {
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		a, b = b, a
	}
	return side{a: a, b: b}
}

// inspectBoundary expects exactly one boundary wall per unit of perimeter and
// none anywhere else.
func inspectBoundary(m Maze, r *Report) {
	w, h := m.Width(), m.Height()
	want := mapset.New[side]()
	for y := 0; y < h; y++ {
		want.Put(newSide(maze.Coord{X: -1, Y: y}, maze.Coord{X: 0, Y: y}))
		want.Put(newSide(maze.Coord{X: w - 1, Y: y}, maze.Coord{X: w, Y: y}))
	}
	for x := 0; x < w; x++ {
		want.Put(newSide(maze.Coord{X: x, Y: -1}, maze.Coord{X: x, Y: 0}))
		want.Put(newSide(maze.Coord{X: x, Y: h - 1}, maze.Coord{X: x, Y: h}))
	}

	got := mapset.New[side]()
	for _, wall := range m.Walls() {
		if !wall.Boundary {
			continue
		}
		r.BoundaryWalls++
		s := newSide(wall.A, wall.B)
		switch {
		case !want.Has(s):
			r.fail(ErrBoundary, "boundary wall %v-%v is not on the perimeter", wall.A, wall.B)
		case got.Has(s):
			r.fail(ErrBoundary, "boundary wall %v-%v appears twice", wall.A, wall.B)
		}
		got.Put(s)
	}

	want.Each(func(s side) {
		if !got.Has(s) || !m.HasWall(s.a, s.b) {
			r.fail(ErrBoundary, "perimeter open between %v and %v", s.a, s.b)
		}
	})
}
