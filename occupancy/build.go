package occupancy

import (
	"fmt"
	"math"
)

// Build rasterizes segments into a new Grid.
//
// Every coordinate is multiplied by resolution and discretized with
// RoundHalfEven. The grid spans (maxY+1) rows × (maxX+1) columns over all
// scaled endpoints and starts FREE; each segment is then drawn with an
// integer Bresenham walk that marks every visited cell OCCUPIED. Cells that
// fall outside the grid (negative coordinates) are skipped silently.
//
// start is the agent's start in world units; nil means the world origin.
// The returned Position is (scaled start Y, scaled start X).
//
// Scaled coordinates, start included, must be finite and within ±MaxSide,
// and the grid may hold at most MaxCells cells.
//
// Returns ErrNoSegments, ErrBadResolution, ErrBadCoordinate or
// ErrGridTooLarge; no partial grid is produced.
// Complexity: O(S·L + W×H).
func Build(segments []Segment, resolution float64, start *Point) (*Grid, Position, error) {
	if len(segments) == 0 {
		return nil, Position{}, ErrNoSegments
	}
	if !(resolution > 0) || math.IsInf(resolution, 1) {
		return nil, Position{}, fmt.Errorf("%w: got %v", ErrBadResolution, resolution)
	}

	type scaledSegment struct{ x0, y0, x1, y1 int }
	scaled := make([]scaledSegment, len(segments))
	maxX, maxY := 0, 0
	for i, s := range segments {
		var v [4]int
		for j, f := range [4]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y} {
			var err error
			if v[j], err = scale(f, resolution); err != nil {
				return nil, Position{}, fmt.Errorf("segment %d: %w", i, err)
			}
		}
		ss := scaledSegment{x0: v[0], y0: v[1], x1: v[2], y1: v[3]}
		maxX = max(maxX, ss.x0, ss.x1)
		maxY = max(maxY, ss.y0, ss.y1)
		scaled[i] = ss
	}
	if (maxY+1)*(maxX+1) > MaxCells {
		return nil, Position{}, fmt.Errorf("%w: %d×%d exceeds %d cells", ErrGridTooLarge, maxY+1, maxX+1, MaxCells)
	}

	origin := Point{}
	if start != nil {
		origin = *start
	}
	row, err := scale(origin.Y, resolution)
	if err != nil {
		return nil, Position{}, fmt.Errorf("start: %w", err)
	}
	col, err := scale(origin.X, resolution)
	if err != nil {
		return nil, Position{}, fmt.Errorf("start: %w", err)
	}

	g := newGrid(maxY+1, maxX+1)
	for _, ss := range scaled {
		g.drawLine(ss.x0, ss.y0, ss.x1, ss.y1)
	}

	return g, Position{Row: row, Col: col}, nil
}

// scale maps a world coordinate to a grid coordinate within ±MaxSide.
func scale(v, resolution float64) (int, error) {
	f := v * resolution
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrBadCoordinate, v)
	}
	if math.Abs(f) > MaxSide {
		return 0, fmt.Errorf("%w: %v scales beyond %d", ErrGridTooLarge, v, MaxSide)
	}

	return RoundHalfEven(f), nil
}

// drawLine marks every cell on the Bresenham line (x0,y0)→(x1,y1) as OCCUPIED.
// Coordinates are (x=column, y=row). Coincident endpoints mark a single cell.
func (g *Grid) drawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	xStep, yStep := -1, -1
	if x0 < x1 {
		xStep = 1
	}
	if y0 < y1 {
		yStep = 1
	}

	errTerm := dx - dy
	x, y := x0, y0
	for {
		g.set(y, x, Occupied)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x += xStep
		}
		if e2 < dx {
			errTerm += dx
			y += yStep
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
