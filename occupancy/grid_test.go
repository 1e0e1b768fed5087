package occupancy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// TestFromRows_Errors verifies that FromRows rejects empty, ragged or non-binary inputs.
func TestFromRows_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]uint8
		err  error
	}{
		{"EmptyRows", [][]uint8{}, occupancy.ErrEmptyGrid},
		{"EmptyCols", [][]uint8{{}}, occupancy.ErrEmptyGrid},
		{"NonRectangular", [][]uint8{{1, 0}, {0}}, occupancy.ErrNonRectangular},
		{"BadCell", [][]uint8{{0, 2}}, occupancy.ErrBadCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := occupancy.FromRows(tc.rows)
			if !errors.Is(err, tc.err) {
				t.Errorf("FromRows(%v) error = %v; want %v", tc.rows, err, tc.err)
			}
		})
	}
}

func TestFromRows_DeepCopy(t *testing.T) {
	rows := [][]uint8{{0, 1}, {0, 0}}
	g, err := occupancy.FromRows(rows)
	require.NoError(t, err)

	rows[0][0] = 1
	assert.True(t, g.Free(occupancy.Position{Row: 0, Col: 0}))

	out := g.Rows()
	out[1][1] = 1
	assert.True(t, g.Free(occupancy.Position{Row: 1, Col: 1}))
}

// TestInBounds checks InBounds and the Free/Occupied predicates on a 2×3 grid.
func TestInBounds(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{
		{0, 1, 0},
		{1, 0, 1},
	})
	require.NoError(t, err)

	for _, p := range []occupancy.Position{{0, 0}, {1, 2}, {1, 1}} {
		assert.True(t, g.InBounds(p), "InBounds%v", p)
	}
	for _, p := range []occupancy.Position{{-1, 0}, {0, 3}, {2, 1}, {1, -1}} {
		assert.False(t, g.InBounds(p), "InBounds%v", p)
		assert.False(t, g.Free(p), "Free%v", p)
		assert.False(t, g.Occupied(p), "Occupied%v", p)
	}
	assert.True(t, g.Occupied(occupancy.Position{Row: 0, Col: 1}))
	assert.True(t, g.Free(occupancy.Position{Row: 1, Col: 1}))
}

func TestNeighbors4(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, []occupancy.Position{{0, 1}, {2, 1}, {1, 0}, {1, 2}},
		g.Neighbors4(occupancy.Position{Row: 1, Col: 1}))
	assert.Equal(t, []occupancy.Position{{1, 0}, {0, 1}},
		g.Neighbors4(occupancy.Position{Row: 0, Col: 0}))
}

func TestOnBorder(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	assert.True(t, g.OnBorder(occupancy.Position{Row: 0, Col: 1}))
	assert.True(t, g.OnBorder(occupancy.Position{Row: 2, Col: 2}))
	assert.True(t, g.OnBorder(occupancy.Position{Row: 1, Col: 0}))
	assert.False(t, g.OnBorder(occupancy.Position{Row: 1, Col: 1}))
	assert.False(t, g.OnBorder(occupancy.Position{Row: 3, Col: 1}))
}

func TestIndexCoordinate(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{{0, 0, 0, 0}, {0, 0, 0, 0}})
	require.NoError(t, err)

	for r := 0; r < 2; r++ {
		for c := 0; c < 4; c++ {
			p := occupancy.Position{Row: r, Col: c}
			assert.Equal(t, p, g.Coordinate(g.Index(p)))
		}
	}
}

func TestPosition_Manhattan(t *testing.T) {
	a := occupancy.Position{Row: 1, Col: 4}
	b := occupancy.Position{Row: 3, Col: -2}

	assert.Equal(t, 8, a.Manhattan(b))
	assert.Equal(t, 8, b.Manhattan(a))
	assert.Zero(t, a.Manhattan(a))
	assert.Equal(t, "(1,4)", a.String())
}
