package maze

// CellState is the content of a single grid cell.
type CellState uint8

const (
	Wall  CellState = iota // Wall is a closed cell.
	Floor                  // Floor is an open, carved cell.
	Start                  // Start marks the entrance on the outer border.
	Exit                   // Exit marks the way out on the outer border.
)

// String returns the single-character glyph used by the ASCII renderer.
func (s CellState) String() string {
	switch s {
	case Floor:
		return " "
	case Start:
		return "S"
	case Exit:
		return "E"
	default:
		return "#"
	}
}

// IsOpen reports whether a walker can stand on the cell.
func (s CellState) IsOpen() bool {
	return s != Wall
}

// Coordinate is the position of a cell in the grid.
// X grows to the east and Y grows to the south.
type Coordinate struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Directions holds the four axis-aligned unit offsets in a fixed order.
var Directions = [4]Coordinate{
	{X: 0, Y: -1}, // North
	{X: 0, Y: 1},  // South
	{X: 1, Y: 0},  // East
	{X: -1, Y: 0}, // West
}

// Add returns the coordinate shifted by d scaled by k.
func (c Coordinate) Add(d Coordinate, k int) Coordinate {
	return Coordinate{X: c.X + d.X*k, Y: c.Y + d.Y*k}
}

// midpoint returns the cell halfway between a and b.
func midpoint(a, b Coordinate) Coordinate {
	return Coordinate{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
