package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/audit"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/google/uuid"
)

// Command is a single parameter edit, named after the key that triggered it
// in the interactive generator.
type Command string

const (
	CmdRegenerate        Command = "regenerate"
	CmdReset             Command = "reset"
	CmdWidthUp           Command = "width+"
	CmdWidthDown         Command = "width-"
	CmdHeightUp          Command = "height+"
	CmdHeightDown        Command = "height-"
	CmdCellUp            Command = "cell+"
	CmdCellDown          Command = "cell-"
	CmdWallUp            Command = "wall+"
	CmdWallDown          Command = "wall-"
	CmdOriginLeft        Command = "origin-left"
	CmdOriginRight       Command = "origin-right"
	CmdOriginUp          Command = "origin-up"
	CmdOriginDown        Command = "origin-down"
	CmdOriginRandom      Command = "origin-random"
	CmdToggleWalls       Command = "toggle-walls"
	CmdToggleInfo        Command = "toggle-info"
	CmdColorOriginRandom Command = "color-origin-random"
	CmdColorFarRandom    Command = "color-far-random"
	CmdColorWallRandom   Command = "color-wall-random"
	CmdColorWallBlack    Command = "color-wall-black"
)

// Params are the editable generation and drawing parameters.
type Params struct {
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Origin        maze.Coord     `json:"origin"`
	StepBudget    int            `json:"step_budget"`
	Seed          int64          `json:"seed"` // 0 seeds every pass from the clock
	CellSize      int            `json:"cell_size"`
	WallThickness int            `json:"wall_thickness"`
	WallsVisible  bool           `json:"walls_visible"`
	InfoVisible   bool           `json:"info_visible"`
	Palette       render.Palette `json:"palette"`
}

// Snapshot is a consistent copy of the generator taken between steps.
type Snapshot struct {
	GenerationID        uuid.UUID     `json:"generation_id"`
	Params              Params        `json:"params"`
	State               maze.State    `json:"state"`
	Seed                int64         `json:"seed"`
	Cells               []maze.Cell   `json:"cells"`
	Walls               []maze.Wall   `json:"walls"`
	LongestWalkDistance int           `json:"longest_walk_distance"`
	RemovedWalls        int           `json:"removed_walls"`
	Current             *maze.Coord   `json:"current,omitempty"`
	Audit               *audit.Report `json:"audit,omitempty"`

	// Frame is drawn from the same state as the fields above. It is served on
	// its own route, not with the snapshot.
	Frame render.Frame `json:"-"`
}

// MazeGenerator owns one maze and drives its generation.
type MazeGenerator interface {
	Params() Params
	Configure(ctx context.Context, p Params) error
	Apply(ctx context.Context, cmd Command) error
	Restart(ctx context.Context)
	Advance(ctx context.Context, steps int) (int, error)
	Snapshot() Snapshot
	Frame() render.Frame
	ASCII() string
	Subscribe() (<-chan Snapshot, func())
}
