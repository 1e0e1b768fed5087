// Package explored tracks which grid cells the radar has swept.
//
// A Mask is a boolean bitmap the size of the occupancy grid. Rays are
// re-walked with the same occupancy.Ray geometry the radar uses, from step 0
// to RoundHalfEven(distance) inclusive, so every free cell a beam crosses is
// marked, not just the cell it struck. Cells only ever go from unexplored
// to explored; marking is idempotent.
package explored

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/radarmaze/occupancy"
	"github.com/katalvlaran/radarmaze/radar"
)

// Sentinel errors for mask construction.
var (
	// ErrEmptyMask indicates a mask with no rows or no columns.
	ErrEmptyMask = errors.New("explored: mask must have at least one row and one column")
	// ErrShapeMismatch indicates a mask whose shape differs from its grid.
	ErrShapeMismatch = errors.New("explored: mask shape differs from grid shape")
)

// Mask is the persistent explored-cell bitmap. It is not safe for
// concurrent use.
type Mask struct {
	height, width int
	cells         []bool
	count         int
}

// New returns an all-unexplored h×w mask.
func New(h, w int) (*Mask, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyMask, h, w)
	}
	return &Mask{height: h, width: w, cells: make([]bool, h*w)}, nil
}

// NewFor returns an all-unexplored mask shaped like g.
func NewFor(g *occupancy.Grid) *Mask {
	return &Mask{height: g.Height(), width: g.Width(), cells: make([]bool, g.Height()*g.Width())}
}

// CheckShape returns ErrShapeMismatch unless m and g have equal dimensions.
func (m *Mask) CheckShape(g *occupancy.Grid) error {
	if m.height != g.Height() || m.width != g.Width() {
		return fmt.Errorf("%w: mask %dx%d, grid %dx%d",
			ErrShapeMismatch, m.height, m.width, g.Height(), g.Width())
	}
	return nil
}

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// Explored reports whether p is an in-bounds explored cell.
func (m *Mask) Explored(p occupancy.Position) bool {
	if !m.inBounds(p) {
		return false
	}
	return m.cells[p.Row*m.width+p.Col]
}

// Mark sets p explored and reports whether it was previously unexplored.
// Out-of-bounds cells are ignored.
func (m *Mask) Mark(p occupancy.Position) bool {
	if !m.inBounds(p) {
		return false
	}
	i := p.Row*m.width + p.Col
	if m.cells[i] {
		return false
	}
	m.cells[i] = true
	m.count++

	return true
}

// MarkRay marks every in-bounds cell on the ray from origin at angleDeg,
// steps 0 through RoundHalfEven(distance), and returns how many cells were
// newly explored.
func (m *Mask) MarkRay(origin occupancy.Position, angleDeg int, distance float64) int {
	ray := occupancy.NewRay(origin, float64(angleDeg))
	last := occupancy.RoundHalfEven(distance)
	added := 0
	for step := 0; step <= last; step++ {
		cell, _, _ := ray.At(step)
		if m.Mark(cell) {
			added++
		}
	}

	return added
}

// MarkScan applies MarkRay to every reading of scan taken at origin.
func (m *Mask) MarkScan(origin occupancy.Position, scan radar.Scan) int {
	added := 0
	for angle, reading := range scan {
		added += m.MarkRay(origin, angle, reading.Distance)
	}

	return added
}

// Count returns the number of explored cells.
func (m *Mask) Count() int { return m.count }

// Snapshot returns a deep copy of the mask as rows of booleans.
func (m *Mask) Snapshot() [][]bool {
	out := make([][]bool, m.height)
	for r := range out {
		out[r] = make([]bool, m.width)
		copy(out[r], m.cells[r*m.width:(r+1)*m.width])
	}

	return out
}

// Equal reports whether m and o mark exactly the same cells.
func (m *Mask) Equal(o *Mask) bool {
	if m.height != o.height || m.width != o.width || m.count != o.count {
		return false
	}
	for i, v := range m.cells {
		if o.cells[i] != v {
			return false
		}
	}

	return true
}

func (m *Mask) inBounds(p occupancy.Position) bool {
	return p.Row >= 0 && p.Row < m.height && p.Col >= 0 && p.Col < m.width
}
