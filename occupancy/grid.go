package occupancy

// FromRows constructs a Grid from a non-empty, rectangular 0/1 matrix.
// It deep-copies the input so later mutation of rows cannot leak in.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrBadCell.
// Complexity: O(W×H) time and memory.
func FromRows(rows [][]uint8) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	g := newGrid(h, w)
	for r, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		for c, v := range row {
			if v != Free && v != Occupied {
				return nil, ErrBadCell
			}
			g.cells[g.index(r, c)] = v
		}
	}

	return g, nil
}

// newGrid allocates an all-FREE grid.
func newGrid(h, w int) *Grid {
	return &Grid{height: h, width: w, cells: make([]uint8, h*w)}
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// InBounds reports whether p lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// Occupied reports whether p is an in-bounds OCCUPIED cell.
func (g *Grid) Occupied(p Position) bool {
	return g.InBounds(p) && g.cells[g.index(p.Row, p.Col)] == Occupied
}

// Free reports whether p is an in-bounds FREE cell.
func (g *Grid) Free(p Position) bool {
	return g.InBounds(p) && g.cells[g.index(p.Row, p.Col)] == Free
}

// At returns the raw cell value at p. p must be in bounds.
func (g *Grid) At(p Position) uint8 {
	return g.cells[g.index(p.Row, p.Col)]
}

// OnBorder reports whether p lies on row 0, the last row, column 0 or the last column.
func (g *Grid) OnBorder(p Position) bool {
	return g.InBounds(p) &&
		(p.Row == 0 || p.Row == g.height-1 || p.Col == 0 || p.Col == g.width-1)
}

// Neighbors4 returns the in-bounds orthogonal neighbours of p in N, S, W, E order,
// regardless of occupancy.
func (g *Grid) Neighbors4(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range neighborOffsets4 {
		n := p.Add(d[0], d[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}

	return out
}

// Rows returns a deep copy of the grid as a 0/1 matrix.
func (g *Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.height)
	for r := 0; r < g.height; r++ {
		rows[r] = make([]uint8, g.width)
		copy(rows[r], g.cells[r*g.width:(r+1)*g.width])
	}

	return rows
}

// CountOccupied returns the number of OCCUPIED cells.
func (g *Grid) CountOccupied() int {
	n := 0
	for _, v := range g.cells {
		if v == Occupied {
			n++
		}
	}

	return n
}

// index maps (row, col) to a row-major index: row*width + col.
func (g *Grid) index(row, col int) int {
	return row*g.width + col
}

// Index maps an in-bounds position to its row-major index.
// Complexity: O(1).
func (g *Grid) Index(p Position) int {
	return g.index(p.Row, p.Col)
}

// Coordinate converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Position {
	return Position{Row: idx / g.width, Col: idx % g.width}
}

// set marks (row, col) as v, silently skipping out-of-bounds cells.
// Only Build calls it, before the grid is handed out.
func (g *Grid) set(row, col int, v uint8) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return
	}
	g.cells[g.index(row, col)] = v
}
