package occupancy

import (
	"errors"
	"fmt"
)

// Sentinel errors for occupancy operations.
var (
	// ErrNoSegments indicates Build received an empty segment list.
	ErrNoSegments = errors.New("occupancy: at least one segment is required")
	// ErrBadResolution indicates a non-positive resolution factor.
	ErrBadResolution = errors.New("occupancy: resolution must be positive")
	// ErrEmptyGrid indicates input rows are empty.
	ErrEmptyGrid = errors.New("occupancy: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("occupancy: all rows must have the same length")
	// ErrBadCell indicates a cell value other than Free or Occupied.
	ErrBadCell = errors.New("occupancy: cell value must be 0 or 1")
	// ErrBadDump indicates a malformed persisted grid.
	ErrBadDump = errors.New("occupancy: malformed grid dump")
	// ErrBadCoordinate indicates a NaN or infinite coordinate.
	ErrBadCoordinate = errors.New("occupancy: coordinate must be finite")
	// ErrGridTooLarge indicates a scaled coordinate beyond MaxSide or a grid
	// of more than MaxCells cells.
	ErrGridTooLarge = errors.New("occupancy: grid too large")
)

// Limits enforced by Build.
const (
	MaxSide  = 1 << 16 // largest |scaled coordinate|
	MaxCells = 1 << 26 // largest height × width
)

// Cell values stored in the grid.
const (
	Free     uint8 = 0
	Occupied uint8 = 1
)

// Position addresses a grid cell by row and column.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Add returns p shifted by (dRow, dCol).
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Manhattan returns |p.Row-q.Row| + |p.Col-q.Col|.
func (p Position) Manhattan(q Position) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

// Point is a coordinate in world units, X to the right and Y downwards.
type Point struct {
	X, Y float64
}

// Segment is a wall between two world points.
type Segment struct {
	Start, End Point
}

// neighborOffsets4 lists orthogonal offsets in N, S, W, E order as {dRow, dCol}.
var neighborOffsets4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is an immutable binary occupancy grid. Cells are stored row-major;
// the zero value is not usable, construct with Build or FromRows.
type Grid struct {
	height, width int
	cells         []uint8
}
