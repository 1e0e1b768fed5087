package occupancy

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// WriteText writes one line per row, cells as concatenated '0'/'1' digits
// with no delimiter.
func (g *Grid) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, g.width+1)
	line[g.width] = '\n'
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			line[c] = '0' + g.cells[g.index(r, c)]
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadText parses a dump produced by WriteText. Blank trailing lines and
// CR line endings are tolerated.
func ReadText(r io.Reader) (*Grid, error) {
	var rows [][]uint8
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		row := make([]uint8, len(line))
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '0':
				row[i] = Free
			case '1':
				row[i] = Occupied
			default:
				return nil, fmt.Errorf("%w: line %d column %d: unexpected %q",
					ErrBadDump, len(rows)+1, i+1, line[i])
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return FromRows(rows)
}

// WriteBinary writes height and width as little-endian uint32 followed by
// one byte (0 or 1) per cell in row-major order.
func (g *Grid) WriteBinary(w io.Writer) error {
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(g.height))
	binary.LittleEndian.PutUint32(header[4:8], uint32(g.width))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(g.cells)

	return err
}

// ReadBinary decodes a dump produced by WriteBinary.
func ReadBinary(r io.Reader) (*Grid, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadDump, err)
	}
	h := int(binary.LittleEndian.Uint32(header[0:4]))
	w := int(binary.LittleEndian.Uint32(header[4:8]))
	if h == 0 || w == 0 {
		return nil, ErrEmptyGrid
	}

	g := newGrid(h, w)
	if _, err := io.ReadFull(r, g.cells); err != nil {
		return nil, fmt.Errorf("%w: cells: %v", ErrBadDump, err)
	}
	for _, v := range g.cells {
		if v != Free && v != Occupied {
			return nil, ErrBadCell
		}
	}

	return g, nil
}

// Preview renders at most maxRows × maxCols cells from the top-left corner,
// '█' for walls and '·' for free space, one row per line.
func (g *Grid) Preview(maxRows, maxCols int) string {
	rows, cols := min(maxRows, g.height), min(maxCols, g.width)
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.cells[g.index(r, c)] == Occupied {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('·')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
