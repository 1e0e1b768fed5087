// Package frontier finds the growth boundary of explored territory.
//
// A cell is a frontier when it is not explored itself and at least one of
// its in-bounds 4-neighbours is both explored and FREE. The cell's own
// occupancy does not matter: an unexplored wall next to explored floor is a
// frontier too, which keeps the sweep hugging walls until the border cells
// used for exit detection have been seen.
//
// Frontiers are derived on demand; nothing is cached between calls.
//
// Complexity: Find is O(rows×cols); SortByDistance is O(F log F).
package frontier

import (
	"sort"

	"github.com/katalvlaran/radarmaze/explored"
	"github.com/katalvlaran/radarmaze/occupancy"
)

// IsFrontier reports whether p is a frontier cell of grid under mask.
// Out-of-bounds cells are never frontiers.
func IsFrontier(grid *occupancy.Grid, mask *explored.Mask, p occupancy.Position) bool {
	if !grid.InBounds(p) || mask.Explored(p) {
		return false
	}
	for _, nb := range grid.Neighbors4(p) {
		if mask.Explored(nb) && grid.Free(nb) {
			return true
		}
	}

	return false
}

// Find returns every frontier cell in row-major order.
func Find(grid *occupancy.Grid, mask *explored.Mask) []occupancy.Position {
	var out []occupancy.Position
	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			p := occupancy.Position{Row: r, Col: c}
			if IsFrontier(grid, mask, p) {
				out = append(out, p)
			}
		}
	}

	return out
}

// Count returns the number of frontier cells without materializing them.
func Count(grid *occupancy.Grid, mask *explored.Mask) int {
	n := 0
	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			if IsFrontier(grid, mask, occupancy.Position{Row: r, Col: c}) {
				n++
			}
		}
	}

	return n
}

// SortByDistance orders cells in place by Manhattan distance to from,
// ascending. Equal distances keep their relative order.
func SortByDistance(cells []occupancy.Position, from occupancy.Position) {
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Manhattan(from) < cells[j].Manhattan(from)
	})
}
