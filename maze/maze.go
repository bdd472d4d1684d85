/*
Package maze generates perfect mazes on a grid of wall and floor cells.

A maze is carved with a randomized depth-first backtracker over the lattice of
odd/odd cells; the even rows and columns between them hold the walls that get
opened as passages. Every generated maze is a spanning tree over its rooms, so
exactly one path joins any two floor cells. A start and an exit are then placed
on the outer border next to a carved floor cell.

Generation is synchronous and owns all of its state. A seeded call is fully
reproducible; an unseeded call draws its seed from the process entropy source
and reports it back on the Maze so the run can be repeated.
*/
package maze

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"strings"
)

const (
	minDimension = 3
)

var (
	ErrInvalidDimensions     = errors.New("invalid maze dimensions")
	ErrNoValidBoundaryCell   = errors.New("no valid boundary cell")
	ErrRandomnessUnavailable = errors.New("randomness unavailable")
)

// Maze is a fully generated maze. It is read-only once returned.
type Maze struct {
	Width  int        // Width of the grid, always odd and at least 3
	Height int        // Height of the grid, always odd and at least 3
	Start  Coordinate // Entrance on the border
	Exit   Coordinate // Exit on the border
	Seed   int64      // Seed that reproduces this maze

	grid  [][]CellState // grid[y][x]
	steps []Step
}

// Options configures a Generator.
type Options struct {
	MaxDimension int       // Upper bound on requested width and height, 0 disables it
	RecordSteps  bool      // Record every carve step for replay
	Entropy      io.Reader // Seed source for unseeded calls, defaults to crypto/rand
}

// Generator creates mazes. It holds configuration only, so a single
// Generator may be used from several goroutines at once.
type Generator struct {
	maxDimension int
	recordSteps  bool
	entropy      io.Reader
}

var defaultGenerator = NewGenerator(nil)

// NewGenerator returns a Generator configured by opts. A nil opts uses defaults.
func NewGenerator(opts *Options) *Generator {
	if opts == nil {
		opts = &Options{}
	}

	g := &Generator{
		maxDimension: opts.MaxDimension,
		recordSteps:  opts.RecordSteps,
		entropy:      opts.Entropy,
	}
	if g.maxDimension < 0 {
		g.maxDimension = 0
	}
	if g.entropy == nil {
		g.entropy = rand.Reader
	}
	return g
}

// New generates a maze from process randomness.
func New(width, height int) (*Maze, error) {
	return defaultGenerator.Generate(width, height, nil)
}

// NewSeeded generates the maze identified by seed.
func NewSeeded(width, height int, seed int64) (*Maze, error) {
	return defaultGenerator.Generate(width, height, &seed)
}

// Normalize returns the grid size actually generated for a request.
// Even values grow by one and values below 3 are raised to 3.
func Normalize(width, height int) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return normalizeDimension(width), normalizeDimension(height), nil
}

func normalizeDimension(n int) int {
	if n%2 == 0 {
		n++
	}
	return max(n, minDimension)
}

// Generate builds a maze of the requested size. When seed is nil a seed is
// drawn from the generator's entropy source.
func (g *Generator) Generate(width, height int, seed *int64) (*Maze, error) {
	if g.maxDimension > 0 && max(width, height) > g.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, g.maxDimension)
	}

	width, height, err := Normalize(width, height)
	if err != nil {
		return nil, err
	}

	s, err := g.resolveSeed(seed)
	if err != nil {
		return nil, err
	}

	b := newBuilder(width, height, s, g.recordSteps)
	b.carve()
	if err := b.placeEndpoints(); err != nil {
		return nil, err
	}

	return &Maze{
		Width:  width,
		Height: height,
		Start:  b.start,
		Exit:   b.exit,
		Seed:   s,
		grid:   b.grid,
		steps:  b.steps,
	}, nil
}

func (g *Generator) resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}

	var buf [8]byte
	if _, err := io.ReadFull(g.entropy, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRandomnessUnavailable, err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// builder owns the mutable state of a single generation run.
type builder struct {
	width  int
	height int
	grid   [][]CellState
	rng    *mrand.Rand
	record bool
	steps  []Step
	start  Coordinate
	exit   Coordinate
}

func newBuilder(width, height int, seed int64, record bool) *builder {
	return &builder{
		width:  width,
		height: height,
		grid:   newGrid(width, height),
		rng:    mrand.New(mrand.NewSource(seed)),
		record: record,
	}
}

// newGrid returns a width×height grid of walls.
func newGrid(width, height int) [][]CellState {
	grid := make([][]CellState, height)
	for y := range grid {
		// Wall is the zero value.
		grid[y] = make([]CellState, width)
	}
	return grid
}

func (b *builder) set(c Coordinate, state CellState, kind StepKind) {
	b.grid[c.Y][c.X] = state
	if b.record {
		b.steps = append(b.steps, Step{Kind: kind, Cell: c})
	}
}

// carve runs the recursive backtracker from (1,1) with an explicit stack.
func (b *builder) carve() {
	origin := Coordinate{X: 1, Y: 1}
	visited := map[Coordinate]struct{}{origin: {}}
	stack := []Coordinate{origin}
	b.set(origin, Floor, StepVisit)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		neighbors := b.unvisitedRooms(current, visited)
		if len(neighbors) == 0 {
			pop(&stack)
			if b.record {
				b.steps = append(b.steps, Step{Kind: StepBacktrack, Cell: current})
			}
			continue
		}

		next := neighbors[b.rng.Intn(len(neighbors))]
		b.set(midpoint(current, next), Floor, StepCarve)
		b.set(next, Floor, StepVisit)
		visited[next] = struct{}{}
		stack = append(stack, next)
	}
}

// unvisitedRooms lists the odd/odd cells two steps away from c that are
// still inside the border and not yet visited.
func (b *builder) unvisitedRooms(c Coordinate, visited map[Coordinate]struct{}) []Coordinate {
	var result []Coordinate
	for _, d := range Directions {
		n := c.Add(d, 2)
		if n.X < 1 || n.X > b.width-2 || n.Y < 1 || n.Y > b.height-2 {
			continue
		}
		if _, seen := visited[n]; seen {
			continue
		}
		result = append(result, n)
	}
	return result
}

// placeEndpoints picks the start and then the exit among border cells that
// touch a floor cell.
func (b *builder) placeEndpoints() error {
	b.grid[1][1] = Floor
	b.grid[b.height-2][b.width-2] = Floor

	border := b.borderCells()
	candidates := b.touchingFloor(border)
	if len(candidates) == 0 {
		return fmt.Errorf("%w: placing start", ErrNoValidBoundaryCell)
	}
	b.start = candidates[b.rng.Intn(len(candidates))]
	b.set(b.start, Start, StepStart)

	border = without(border, b.start)
	candidates = b.touchingFloor(border)
	if len(candidates) == 0 {
		return fmt.Errorf("%w: placing exit", ErrNoValidBoundaryCell)
	}
	b.exit = candidates[b.rng.Intn(len(candidates))]
	b.set(b.exit, Exit, StepExit)

	return nil
}

// borderCells returns every cell of the outer ring exactly once.
func (b *builder) borderCells() []Coordinate {
	cells := make([]Coordinate, 0, 2*(b.width+b.height))
	for x := 0; x < b.width; x++ {
		cells = append(cells, Coordinate{X: x, Y: 0}, Coordinate{X: x, Y: b.height - 1})
	}
	for y := 1; y < b.height-1; y++ {
		cells = append(cells, Coordinate{X: 0, Y: y}, Coordinate{X: b.width - 1, Y: y})
	}
	return cells
}

func (b *builder) touchingFloor(cells []Coordinate) []Coordinate {
	var result []Coordinate
	for _, c := range cells {
		if hasFloorNeighbor(b.grid, c) {
			result = append(result, c)
		}
	}
	return result
}

func hasFloorNeighbor(grid [][]CellState, c Coordinate) bool {
	for _, d := range Directions {
		n := c.Add(d, 1)
		if n.Y < 0 || n.Y >= len(grid) || n.X < 0 || n.X >= len(grid[n.Y]) {
			continue
		}
		if grid[n.Y][n.X] == Floor {
			return true
		}
	}
	return false
}

// without returns cells minus every entry equal to c.
func without(cells []Coordinate, c Coordinate) []Coordinate {
	result := make([]Coordinate, 0, len(cells))
	for _, cell := range cells {
		if cell != c {
			result = append(result, cell)
		}
	}
	return result
}

// pop removes the last element of a stack of coordinates.
func pop(s *[]Coordinate) Coordinate {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// InBounds reports whether c lies on the grid.
func (m *Maze) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// At returns the state of the cell at (x, y). Cells off the grid read as Wall.
func (m *Maze) At(x, y int) CellState {
	if !m.InBounds(Coordinate{X: x, Y: y}) {
		return Wall
	}
	return m.grid[y][x]
}

// Cells returns a copy of the grid indexed as [y][x].
func (m *Maze) Cells() [][]CellState {
	return copyGrid(m.grid)
}

// Steps returns the recorded carve steps, or nil when recording was off.
func (m *Maze) Steps() []Step {
	if m.steps == nil {
		return nil
	}
	steps := make([]Step, len(m.steps))
	copy(steps, m.steps)
	return steps
}

// Rows renders the maze as one string per grid row.
func (m *Maze) Rows() []string {
	return renderRows(m.grid)
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return strings.Join(m.Rows(), "\n") + "\n"
}

func copyGrid(grid [][]CellState) [][]CellState {
	cells := make([][]CellState, len(grid))
	for y := range grid {
		cells[y] = make([]CellState, len(grid[y]))
		copy(cells[y], grid[y])
	}
	return cells
}

func renderRows(grid [][]CellState) []string {
	rows := make([]string, len(grid))
	var sb strings.Builder
	for y, row := range grid {
		sb.Reset()
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		rows[y] = sb.String()
	}
	return rows
}
