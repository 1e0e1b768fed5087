package astar

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// Sentinel errors returned by the A* implementation.
var (
	// ErrNilGrid indicates that a nil *occupancy.Grid was passed to FindPath.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrOutOfBounds indicates that the start or goal lies outside the grid.
	// It is returned before any search work is done.
	ErrOutOfBounds = errors.New("astar: position out of grid bounds")

	// ErrOptionViolation indicates an invalid functional option value:
	// a negative penalty or a penalty window smaller than one.
	ErrOptionViolation = errors.New("astar: invalid option")

	// ErrInvalidPath is returned by Path.Valid for an empty path, a cell
	// outside the grid or OCCUPIED, or two consecutive cells that are not
	// 4-adjacent.
	ErrInvalidPath = errors.New("astar: invalid path")
)

// Defaults for the recent-cell penalty.
const (
	// DefaultPenalty is the extra cost of stepping onto a recent cell.
	DefaultPenalty = 5

	// DefaultPenaltyWindow is how many trailing entries of the recent list
	// are penalized.
	DefaultPenaltyWindow = 3
)

// Options configures a FindPath call.
//
// Recent        – recently visited cells, oldest first. Nil disables the penalty.
// Penalty       – extra cost for stepping onto one of the last PenaltyWindow
//
//	entries of Recent. Must be ≥ 0. Default DefaultPenalty.
//
// PenaltyWindow – number of trailing Recent entries that are penalized.
//
//	Must be ≥ 1. Default DefaultPenaltyWindow.
type Options struct {
	Recent        []occupancy.Position
	Penalty       int
	PenaltyWindow int

	err error // first option violation, surfaced by FindPath
}

// Option represents a functional option for configuring FindPath.
type Option func(*Options)

// DefaultOptions returns the defaults: no recent cells, penalty 5, window 3.
func DefaultOptions() Options {
	return Options{
		Penalty:       DefaultPenalty,
		PenaltyWindow: DefaultPenaltyWindow,
	}
}

// WithAvoidRecent enables the soft penalty for the given recent cells,
// oldest first. The slice is copied.
func WithAvoidRecent(recent []occupancy.Position) Option {
	return func(o *Options) {
		o.Recent = append([]occupancy.Position(nil), recent...)
	}
}

// WithPenalty sets the extra step cost onto a recent cell.
// A negative cost records ErrOptionViolation.
func WithPenalty(cost int) Option {
	return func(o *Options) {
		if cost < 0 {
			o.err = fmt.Errorf("%w: penalty %d < 0", ErrOptionViolation, cost)
			return
		}
		o.Penalty = cost
	}
}

// WithPenaltyWindow sets how many trailing recent cells are penalized.
// A window below one records ErrOptionViolation.
func WithPenaltyWindow(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: penalty window %d < 1", ErrOptionViolation, n)
			return
		}
		o.PenaltyWindow = n
	}
}

// Path is an ordered list of cells from start to goal inclusive.
type Path []occupancy.Position

// Len returns the number of cells, start and goal included.
func (p Path) Len() int { return len(p) }

// Steps returns the number of moves along the path.
func (p Path) Steps() int { return max(len(p)-1, 0) }

// Valid checks that every cell is an in-bounds FREE cell of grid and that
// consecutive cells are 4-adjacent.
func (p Path) Valid(grid *occupancy.Grid) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	for i, c := range p {
		if !grid.Free(c) {
			return fmt.Errorf("%w: cell %d %v is not a free grid cell", ErrInvalidPath, i, c)
		}
		if i > 0 && Manhattan(p[i-1], c) != 1 {
			return fmt.Errorf("%w: %v → %v is not a unit step", ErrInvalidPath, p[i-1], c)
		}
	}

	return nil
}

// Connects reports whether the path runs from start to goal.
func (p Path) Connects(start, goal occupancy.Position) bool {
	return len(p) > 0 && p[0] == start && p[len(p)-1] == goal
}

// Clone returns a copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

// Manhattan returns the 4-connected grid distance between a and b.
func Manhattan(a, b occupancy.Position) int {
	return a.Manhattan(b)
}
