/*
Package domain holds the entities persisted by the maze service: registered
users and the mazes they save.
*/
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/google/uuid"
)

const maxMazeNameLength = 64

var (
	ErrInvalidMazeName = errors.New("invalid maze name")
	ErrMazeNotFound    = errors.New("maze not found")
	ErrNotOwner        = errors.New("maze belongs to another user")
)

// MazeRecord is a generated maze frozen for storage and transport.
type MazeRecord struct {
	ID        uuid.UUID       `bson:"_id" json:"id"`
	OwnerID   uuid.UUID       `bson:"ownerId" json:"owner_id"`
	Name      string          `bson:"name" json:"name"`
	Width     int             `bson:"width" json:"width"`
	Height    int             `bson:"height" json:"height"`
	Seed      int64           `bson:"seed" json:"seed"`
	Start     maze.Coordinate `bson:"start" json:"start"`
	Exit      maze.Coordinate `bson:"exit" json:"exit"`
	Rows      []string        `bson:"rows" json:"rows"`
	CreatedAt time.Time       `bson:"createdAt" json:"created_at"`
}

// NewMazeRecord snapshots m under the given owner and name.
func NewMazeRecord(id, ownerID uuid.UUID, name string, m *maze.Maze) (*MazeRecord, error) {
	if name == "" || len(name) > maxMazeNameLength {
		return nil, fmt.Errorf("%w: length must be 1..%d", ErrInvalidMazeName, maxMazeNameLength)
	}

	return &MazeRecord{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Width:     m.Width,
		Height:    m.Height,
		Seed:      m.Seed,
		Start:     m.Start,
		Exit:      m.Exit,
		Rows:      m.Rows(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Snapshot freezes an anonymous maze, as served by previews.
func Snapshot(m *maze.Maze) *MazeRecord {
	return &MazeRecord{
		Width:     m.Width,
		Height:    m.Height,
		Seed:      m.Seed,
		Start:     m.Start,
		Exit:      m.Exit,
		Rows:      m.Rows(),
		CreatedAt: time.Now().UTC(),
	}
}

// String renders the stored rows one per line.
func (r *MazeRecord) String() string {
	var out string
	for _, row := range r.Rows {
		out += row + "\n"
	}
	return out
}
