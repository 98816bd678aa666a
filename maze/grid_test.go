package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridBuild(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cells         int
		interior      int
	}{
		{name: "unit", width: 1, height: 1, cells: 1, interior: 0},
		{name: "row", width: 2, height: 1, cells: 2, interior: 1},
		{name: "column", width: 1, height: 4, cells: 4, interior: 3},
		{name: "square", width: 3, height: 3, cells: 9, interior: 12},
		{name: "wide", width: 10, height: 4, cells: 40, interior: 9*4 + 10*3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid()
			require.NoError(t, g.Build(tt.width, tt.height))

			assert.Equal(t, tt.cells, g.Len())
			assert.Equal(t, tt.interior, g.InteriorWallCount())
			assert.Len(t, g.Walls(), tt.interior)
			assert.Zero(t, g.BoundaryWallCount())
			assert.Zero(t, g.RemovedWallCount())

			for i, c := range g.Cells() {
				assert.Equal(t, Coord{X: i % tt.width, Y: i / tt.width}, c.Coord)
				assert.False(t, c.Visited)
				assert.Zero(t, c.WalkDistance)
			}
		})
	}
}

func TestGridBuildInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {0, 5}, {5, 0}, {-1, 3}} {
		g := NewGrid()
		require.NoError(t, g.Build(2, 2))

		err := g.Build(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		assert.Zero(t, g.Len())
		assert.Empty(t, g.Walls())
		assert.Zero(t, g.Width())
		assert.Zero(t, g.Height())
	}
}

func TestGridWallsAreUniqueAndAdjacent(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Build(4, 3))

	seen := make(map[edge]bool)
	for _, w := range g.Walls() {
		assert.True(t, w.A.Adjacent(w.B), "wall %v-%v is not between adjacent cells", w.A, w.B)
		e := newEdge(w.A, w.B)
		assert.False(t, seen[e], "duplicate wall %v-%v", w.A, w.B)
		seen[e] = true
	}
}

func TestUnvisitedNeighborsOrder(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Build(3, 3))

	t.Run("center lists left, right, up, down", func(t *testing.T) {
		got := g.UnvisitedNeighbors(Coord{X: 1, Y: 1})
		assert.Equal(t, []Coord{{X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 2}}, got)
	})

	t.Run("corner skips positions outside the grid", func(t *testing.T) {
		got := g.UnvisitedNeighbors(Coord{X: 0, Y: 0})
		assert.Equal(t, []Coord{{X: 1, Y: 0}, {X: 0, Y: 1}}, got)
	})

	t.Run("visited cells are skipped", func(t *testing.T) {
		g.visit(Coord{X: 2, Y: 1})
		g.visit(Coord{X: 1, Y: 0})
		got := g.UnvisitedNeighbors(Coord{X: 1, Y: 1})
		assert.Equal(t, []Coord{{X: 0, Y: 1}, {X: 1, Y: 2}}, got)
	})
}

func TestRemoveWall(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Build(3, 2))
	a, b := Coord{X: 1, Y: 0}, Coord{X: 1, Y: 1}

	require.True(t, g.HasWall(a, b))
	require.True(t, g.HasWall(b, a))

	assert.True(t, g.RemoveWall(b, a), "pair order must not matter")
	assert.False(t, g.HasWall(a, b))
	assert.Equal(t, 1, g.RemovedWallCount())
	assert.Equal(t, 6, g.InteriorWallCount())

	t.Run("missing wall is a no-op", func(t *testing.T) {
		assert.False(t, g.RemoveWall(a, b))
		assert.Equal(t, 1, g.RemovedWallCount())
	})

	t.Run("non-adjacent pair is a no-op", func(t *testing.T) {
		assert.False(t, g.RemoveWall(Coord{X: 0, Y: 0}, Coord{X: 2, Y: 0}))
		assert.False(t, g.RemoveWall(Coord{X: 0, Y: 0}, Coord{X: 1, Y: 1}))
		assert.Equal(t, 6, g.InteriorWallCount())
	})

	t.Run("passages follow removed walls", func(t *testing.T) {
		assert.Equal(t, []Coord{b}, g.Passages(a))
		assert.Equal(t, []Coord{a}, g.Passages(b))
		assert.Empty(t, g.Passages(Coord{X: 0, Y: 0}))
	})
}

func TestAddBoundary(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Build(3, 2))
	g.AddBoundary()

	assert.Equal(t, 2*(3+2), g.BoundaryWallCount())
	for y := 0; y < 2; y++ {
		assert.True(t, g.HasWall(Coord{X: -1, Y: y}, Coord{X: 0, Y: y}))
		assert.True(t, g.HasWall(Coord{X: 3, Y: y}, Coord{X: 2, Y: y}))
	}
	for x := 0; x < 3; x++ {
		assert.True(t, g.HasWall(Coord{X: x, Y: -1}, Coord{X: x, Y: 0}))
		assert.True(t, g.HasWall(Coord{X: x, Y: 1}, Coord{X: x, Y: 2}))
	}
	assert.False(t, g.HasWall(Coord{X: -1, Y: -1}, Coord{X: 0, Y: -1}))

	g.AddBoundary()
	assert.Equal(t, 10, g.BoundaryWallCount(), "a second call must not duplicate walls")

	walls := g.Walls()
	require.Len(t, walls, 7+10)
	for _, w := range walls[7:] {
		assert.True(t, w.Boundary)
	}
}

func TestWallOrientation(t *testing.T) {
	assert.Equal(t, Horizontal, NewWall(Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}).Orientation)
	assert.Equal(t, Vertical, NewWall(Coord{X: 0, Y: 0}, Coord{X: 0, Y: 1}).Orientation)
	assert.Equal(t, Horizontal, NewWall(Coord{X: -1, Y: 2}, Coord{X: 0, Y: 2}).Orientation)

	text, err := Vertical.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "vertical", string(text))
}
