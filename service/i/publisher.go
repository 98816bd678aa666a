package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Event kinds published over a generation's lifetime.
const (
	EventStarted   = "started"
	EventGenerated = "generated"
)

// GenerationEvent describes a lifecycle change of one generation pass.
type GenerationEvent struct {
	GenerationID        uuid.UUID  `json:"generation_id"`
	Kind                string     `json:"kind"`
	Width               int        `json:"width"`
	Height              int        `json:"height"`
	Origin              maze.Coord `json:"origin"`
	Seed                int64      `json:"seed"`
	State               maze.State `json:"state"`
	LongestWalkDistance int        `json:"longest_walk_distance"`
	RemovedWalls        int        `json:"removed_walls"`
	At                  time.Time  `json:"at"`
}

// Publisher broadcasts generation events.
type Publisher interface {
	Publish(ctx context.Context, e GenerationEvent) error
}
