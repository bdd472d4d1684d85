package i

import (
	"context"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/google/uuid"
)

// MazeGenerator builds a single maze. *maze.Generator satisfies it.
type MazeGenerator interface {
	Generate(width, height int, seed *int64) (*maze.Maze, error)
}

// Replay is a recorded generation run handed to renderers for animation.
type Replay struct {
	Width   int
	Height  int
	Seed    int64
	DelayMs int // Pacing hint between steps, chosen by configuration
	Steps   []maze.Step
}

// MazeService exposes maze generation, storage and replay.
type MazeService interface {
	Generate(ctx context.Context, width, height int, seed *int64) (*maze.Maze, error)
	Preview(ctx context.Context, width, height int, seed *int64) (*dmn.MazeRecord, error)
	Replay(ctx context.Context, width, height int, seed *int64) (*Replay, error)
	Create(ctx context.Context, ownerID uuid.UUID, name string, width, height int, seed *int64) (*dmn.MazeRecord, error)
	ByID(ctx context.Context, ownerID, id uuid.UUID) (*dmn.MazeRecord, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
