/*
Package maze carves perfect mazes over rectangular grids, a few walls at a time.

A Maze is a state machine (NotGenerated, BeingGenerated, Generated) driving a
randomized growing-tree algorithm. Carving walks from the current cell into a
random unvisited neighbor and, at a dead end, resumes from the oldest queued cell
that still has unvisited neighbors. The FIFO selection produces broad, short
branches while the removed walls still form a spanning tree of the grid.

Work is split into steps so callers can render between calls: Start prepares a
pass and Advance performs a bounded number of wall removals. Every cell records
its walk distance from the origin, and LongestWalkDistance tracks the maximum,
which is what a renderer needs to shade cells by distance.

The package performs no I/O, starts no goroutines and is not safe for
concurrent use.
*/
package maze

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/queue"
)

// Unbounded is a step budget that runs carving to completion in one call.
const Unbounded = math.MaxInt

// ErrInvalidOrigin is reported by ResolveOrigin for an origin outside the grid.
var ErrInvalidOrigin = errors.New("origin outside maze")

// State is the generation state of a maze.
type State int

const (
	NotGenerated State = iota
	BeingGenerated
	Generated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case BeingGenerated:
		return "being_generated"
	case Generated:
		return "generated"
	default:
		return "not_generated"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{NotGenerated, BeingGenerated, Generated} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown maze state %q", text)
}

// Config holds the parameters of one generation pass.
type Config struct {
	Origin     Coord // Cell carving starts from; (0, 0) when outside the grid
	Width      int   // Number of columns
	Height     int   // Number of rows
	StepBudget int   // Walls removed per Update call
	Seed       int64 // 0 requests a time-seeded stream
}

// Maze is a single maze and the cursor state of the pass carving it.
type Maze struct {
	grid       *Grid
	state      State
	origin     Coord
	current    Coord
	backtrack  *queue.Queue[Coord]
	queued     int
	longest    int
	rng        *rand.Rand
	seed       int64
	stepBudget int
	candidates []Coord
}

// New returns a maze in the NotGenerated state.
func New() *Maze {
	return &Maze{
		grid:      NewGrid(),
		backtrack: queue.New[Coord](),
	}
}

// ResolveOrigin returns origin when it lies inside a width x height grid and
// ErrInvalidOrigin otherwise.
func ResolveOrigin(origin Coord, width, height int) (Coord, error) {
	if origin.X < 0 || origin.X >= width || origin.Y < 0 || origin.Y >= height {
		return Coord{}, ErrInvalidOrigin
	}
	return origin, nil
}

// Start discards any previous pass and begins a new one. An origin outside the
// grid is replaced by (0, 0). A grid with no cells is Generated immediately, as
// is a single cell, which has nothing to carve and only needs its perimeter.
func (m *Maze) Start(cfg Config) {
	origin, err := ResolveOrigin(cfg.Origin, cfg.Width, cfg.Height)
	if err != nil {
		origin = Coord{}
	}

	m.seed = cfg.Seed
	if m.seed == 0 {
		m.seed = time.Now().UnixNano()
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	m.stepBudget = cfg.StepBudget
	m.backtrack = queue.New[Coord]()
	m.queued = 0
	m.longest = 0
	m.origin = origin
	m.current = origin

	if err := m.grid.Build(cfg.Width, cfg.Height); err != nil {
		m.origin, m.current = Coord{}, Coord{}
		m.state = Generated
		return
	}

	m.grid.visit(origin)
	m.state = BeingGenerated
	if m.grid.Len() == 1 {
		m.finish()
	}
}

// Advance performs up to budget carving steps and returns the number of walls
// removed, which equals budget unless the maze finished first. A budget of zero
// or less does nothing.
func (m *Maze) Advance(budget int) int {
	removed := 0
	for removed < budget && m.state == BeingGenerated {
		if m.step() {
			removed++
		}
	}
	return removed
}

// Update advances by the step budget given to Start.
func (m *Maze) Update() int {
	return m.Advance(m.stepBudget)
}

// step removes one wall, backtracking through the queue as needed. It returns
// false when the queue ran dry and the maze was finished instead.
func (m *Maze) step() bool {
	m.backtrack.Enqueue(m.current)
	m.queued++
	m.grid.visit(m.current)

	m.candidates = m.grid.appendUnvisitedNeighbors(m.candidates[:0], m.current)
	for len(m.candidates) == 0 {
		next, ok := m.nextBranch()
		if !ok {
			m.finish()
			return false
		}
		m.current = next
	}

	chosen := m.candidates[m.rng.Intn(len(m.candidates))]
	m.grid.RemoveWall(m.current, chosen)

	next := m.grid.cell(chosen)
	next.WalkDistance = m.grid.cell(m.current).WalkDistance + 1
	next.Visited = true
	if next.WalkDistance > m.longest {
		m.longest = next.WalkDistance
	}
	m.current = chosen
	return true
}

// nextBranch pops queued cells until one still has an unvisited neighbor and
// leaves that cell's neighbors in m.candidates. Stale entries are discarded
// only here, as they are popped.
func (m *Maze) nextBranch() (Coord, bool) {
	for !m.backtrack.Empty() {
		c := m.backtrack.Dequeue()
		m.queued--
		m.candidates = m.grid.appendUnvisitedNeighbors(m.candidates[:0], c)
		if len(m.candidates) > 0 {
			return c, true
		}
	}
	return Coord{}, false
}

func (m *Maze) finish() {
	m.grid.AddBoundary()
	m.state = Generated
}

// State returns the generation state.
func (m *Maze) State() State { return m.state }

// Width returns the number of columns of the current pass.
func (m *Maze) Width() int { return m.grid.Width() }

// Height returns the number of rows of the current pass.
func (m *Maze) Height() int { return m.grid.Height() }

// Origin returns the effective origin of the current pass.
func (m *Maze) Origin() Coord { return m.origin }

// Seed returns the seed of the current pass. For a pass started with seed 0 it
// is the time-derived seed, so the same maze can be carved again.
func (m *Maze) Seed() int64 { return m.seed }

// StepBudget returns the budget Update uses.
func (m *Maze) StepBudget() int { return m.stepBudget }

// Current returns the cell carving continues from. It is only meaningful while
// the maze is being generated.
func (m *Maze) Current() (Coord, bool) {
	return m.current, m.state == BeingGenerated
}

// Backtracking returns the number of entries in the backtrack queue.
func (m *Maze) Backtracking() int { return m.queued }

// Cells returns a copy of every cell in row order.
func (m *Maze) Cells() []Cell { return m.grid.Cells() }

// Cell returns a copy of the cell at c.
func (m *Maze) Cell(c Coord) (Cell, bool) { return m.grid.Cell(c) }

// Walls returns every standing wall.
func (m *Maze) Walls() []Wall { return m.grid.Walls() }

// HasWall reports whether a wall stands between a and b.
func (m *Maze) HasWall(a, b Coord) bool { return m.grid.HasWall(a, b) }

// Passages returns the neighbors of c reachable without crossing a wall.
func (m *Maze) Passages(c Coord) []Coord { return m.grid.Passages(c) }

// InteriorWallCount returns the number of interior walls still standing.
func (m *Maze) InteriorWallCount() int { return m.grid.InteriorWallCount() }

// RemovedWallCount returns the number of walls carved in the current pass.
func (m *Maze) RemovedWallCount() int { return m.grid.RemovedWallCount() }

// BoundaryWallCount returns the number of perimeter walls.
func (m *Maze) BoundaryWallCount() int { return m.grid.BoundaryWallCount() }

// LongestWalkDistance returns the largest walk distance reached so far.
func (m *Maze) LongestWalkDistance() int { return m.longest }
