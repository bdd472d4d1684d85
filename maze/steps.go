package maze

import (
	"errors"
	"fmt"
)

// StepKind identifies what happened in a recorded generation step.
type StepKind uint8

const (
	StepVisit     StepKind = iota // A room cell was entered and opened.
	StepCarve                     // The passage cell between two rooms was opened.
	StepBacktrack                 // The cell was popped off the carving stack.
	StepStart                     // The start marker was placed.
	StepExit                      // The exit marker was placed.
)

var stepKindNames = map[StepKind]string{
	StepVisit:     "visit",
	StepCarve:     "carve",
	StepBacktrack: "backtrack",
	StepStart:     "start",
	StepExit:      "exit",
}

var ErrInvalidStep = errors.New("invalid step")

func (k StepKind) String() string {
	if name, ok := stepKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StepKind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k StepKind) MarshalText() ([]byte, error) {
	if _, ok := stepKindNames[k]; !ok {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidStep, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind from its name.
func (k *StepKind) UnmarshalText(text []byte) error {
	for kind, name := range stepKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: unknown kind %q", ErrInvalidStep, text)
}

// Step is a single event of an instrumented generation run.
type Step struct {
	Kind StepKind   `json:"kind"`
	Cell Coordinate `json:"cell"`
}

// Frame is a grid snapshot produced by replaying steps, indexed as [y][x].
type Frame [][]CellState

// Replay applies steps in order to an all-wall grid of the given size and
// returns the result. Replaying every step of a recorded run reproduces the
// generated maze; replaying a prefix yields the intermediate state.
func Replay(width, height int, steps []Step) (Frame, error) {
	if width < minDimension || height < minDimension || width%2 == 0 || height%2 == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	frame := Frame(newGrid(width, height))
	for i, s := range steps {
		if err := frame.Apply(s); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return frame, nil
}

// Apply mutates the frame with a single step.
func (f Frame) Apply(s Step) error {
	if s.Cell.Y < 0 || s.Cell.Y >= len(f) || s.Cell.X < 0 || s.Cell.X >= len(f[s.Cell.Y]) {
		return fmt.Errorf("%w: %v out of bounds", ErrInvalidStep, s.Cell)
	}

	switch s.Kind {
	case StepVisit, StepCarve:
		f[s.Cell.Y][s.Cell.X] = Floor
	case StepBacktrack:
	case StepStart:
		f[s.Cell.Y][s.Cell.X] = Start
	case StepExit:
		f[s.Cell.Y][s.Cell.X] = Exit
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidStep, uint8(s.Kind))
	}
	return nil
}

// Rows renders the frame the same way Maze.Rows does.
func (f Frame) Rows() []string {
	return renderRows(f)
}
