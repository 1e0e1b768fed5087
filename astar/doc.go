// Package astar finds paths on an occupancy grid with A*.
//
// The search runs over the 4-connected FREE cells of an occupancy.Grid.
// Every step costs 1. When a recent-cell list is supplied, stepping onto one
// of its last PenaltyWindow entries costs an extra Penalty: a soft deterrent
// against oscillation, not a block, so a recent cell is still used when no
// better route exists. The heuristic is the Manhattan distance to the goal.
//
// With a penalty the heuristic may overestimate the true remaining cost, so
// a penalized search is not guaranteed optimal. Without one it is.
//
// Implementation:
//
//   - Open set:   binary min-heap on f = g + h, ties broken by insertion order.
//   - Decrease-key is lazy: improved entries are pushed again and stale ones
//     are skipped when popped.
//   - Closed set: a cell is expanded at most once.
//
// Complexity:
//
//   - Time:  O(V log V), V = rows×cols.
//   - Space: O(V) for cost, predecessor and closed arrays plus the heap.
//
// Results:
//
//   - start == goal returns the single-cell path [start].
//   - An unreachable goal returns a nil Path and a nil error. This is the
//     normal "no path" answer, not a failure.
//
// Errors:
//
//   - ErrNilGrid:         nil grid.
//   - ErrOutOfBounds:     start or goal outside the grid.
//   - ErrOptionViolation: negative penalty or penalty window < 1.
//
// Example:
//
//	path, err := astar.FindPath(g, start, goal, astar.WithAvoidRecent(history))
//	if err != nil {
//	    return err
//	}
//	if path == nil {
//	    // unreachable
//	}
package astar
