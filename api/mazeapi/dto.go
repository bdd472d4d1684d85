// Package mazeapi exposes maze generation, replay and storage over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/beka-birhanu/backtrack-maze/maze"
	"github.com/beka-birhanu/backtrack-maze/service/i"
	"github.com/google/uuid"
)

// GenerateQuery carries the maze size for preview and steps requests.
type GenerateQuery struct {
	Width  int    `form:"width" binding:"required"`
	Height int    `form:"height" binding:"required"`
	Seed   *int64 `form:"seed"`
	Format string `form:"format"`
}

// CreateMazeRequest asks for a maze to be generated and saved.
type CreateMazeRequest struct {
	Name   string `json:"name" binding:"required"`
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
	Seed   *int64 `json:"seed"`
}

// MazeResponse is a generated maze as served to renderers.
type MazeResponse struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Seed      int64           `json:"seed"`
	Start     maze.Coordinate `json:"start"`
	Exit      maze.Coordinate `json:"exit"`
	Rows      []string        `json:"rows"`
	CreatedAt time.Time       `json:"created_at"`
}

// StepsResponse is a recorded generation run for paced replay.
type StepsResponse struct {
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Seed    int64       `json:"seed"`
	DelayMs int         `json:"delay_ms"`
	Steps   []maze.Step `json:"steps"`
}

func mazeResponse(r *dmn.MazeRecord) *MazeResponse {
	resp := &MazeResponse{
		Name:      r.Name,
		Width:     r.Width,
		Height:    r.Height,
		Seed:      r.Seed,
		Start:     r.Start,
		Exit:      r.Exit,
		Rows:      r.Rows,
		CreatedAt: r.CreatedAt,
	}
	if r.ID != uuid.Nil {
		resp.ID = r.ID.String()
	}
	return resp
}

func stepsResponse(r *i.Replay) *StepsResponse {
	return &StepsResponse{
		Width:   r.Width,
		Height:  r.Height,
		Seed:    r.Seed,
		DelayMs: r.DelayMs,
		Steps:   r.Steps,
	}
}
