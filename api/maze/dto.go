package mazeapi

import (
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/google/uuid"
)

// AdvanceRequest asks for a number of carving steps.
type AdvanceRequest struct {
	Steps int `json:"steps" binding:"required,min=1"`
}

// AdvanceResponse reports the outcome of an advance.
type AdvanceResponse struct {
	Removed int        `json:"removed"`
	State   maze.State `json:"state"`
}

// CommandRequest names a single parameter edit.
type CommandRequest struct {
	Command string `json:"command" binding:"required"`
}

// CellsResponse lists every cell with its walk distance.
type CellsResponse struct {
	State               maze.State  `json:"state"`
	LongestWalkDistance int         `json:"longest_walk_distance"`
	Cells               []maze.Cell `json:"cells"`
}

// WallsResponse lists every standing wall.
type WallsResponse struct {
	State maze.State  `json:"state"`
	Walls []maze.Wall `json:"walls"`
}

// StreamMessage is pushed to stream clients after every change.
type StreamMessage struct {
	GenerationID uuid.UUID    `json:"generation_id"`
	State        maze.State   `json:"state"`
	RemovedWalls int          `json:"removed_walls"`
	Frame        render.Frame `json:"frame"`
}
