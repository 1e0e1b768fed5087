package explored_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radarmaze/explored"
	"github.com/katalvlaran/radarmaze/occupancy"
	"github.com/katalvlaran/radarmaze/radar"
)

func openGrid(t testing.TB, h, w int) *occupancy.Grid {
	t.Helper()
	rows := make([][]uint8, h)
	for r := range rows {
		rows[r] = make([]uint8, w)
	}
	g, err := occupancy.FromRows(rows)
	require.NoError(t, err)
	return g
}

func pos(r, c int) occupancy.Position { return occupancy.Position{Row: r, Col: c} }

func TestNew(t *testing.T) {
	_, err := explored.New(0, 3)
	assert.ErrorIs(t, err, explored.ErrEmptyMask)

	m, err := explored.New(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, 3, m.Width())
	assert.Zero(t, m.Count())

	assert.ErrorIs(t, m.CheckShape(openGrid(t, 3, 2)), explored.ErrShapeMismatch)
	assert.NoError(t, m.CheckShape(openGrid(t, 2, 3)))
}

func TestMark(t *testing.T) {
	m := explored.NewFor(openGrid(t, 3, 3))

	assert.True(t, m.Mark(pos(1, 1)))
	assert.False(t, m.Mark(pos(1, 1)), "second mark is a no-op")
	assert.False(t, m.Mark(pos(-1, 0)), "out of bounds is ignored")
	assert.False(t, m.Mark(pos(0, 3)))
	assert.Equal(t, 1, m.Count())
	assert.True(t, m.Explored(pos(1, 1)))
	assert.False(t, m.Explored(pos(0, 0)))
	assert.False(t, m.Explored(pos(5, 5)))
}

// TestMarkRay_HorizontalToEdge walks 0..10 along row 0 of a 10-wide grid;
// step 10 leaves the grid and is skipped.
func TestMarkRay_HorizontalToEdge(t *testing.T) {
	m := explored.NewFor(openGrid(t, 10, 10))

	added := m.MarkRay(pos(0, 0), 0, 10)
	assert.Equal(t, 10, added)
	for c := 0; c < 10; c++ {
		assert.True(t, m.Explored(pos(0, c)), "col %d", c)
	}
	assert.False(t, m.Explored(pos(1, 0)))
}

func TestMarkRay_RoundsDistance(t *testing.T) {
	m := explored.NewFor(openGrid(t, 1, 10))

	// 2.5 rounds to 2 (half to even): steps 0, 1, 2.
	assert.Equal(t, 3, m.MarkRay(pos(0, 0), 0, 2.5))
	assert.False(t, m.Explored(pos(0, 3)))

	// 3.5 rounds to 4: steps 3 and 4 are new.
	assert.Equal(t, 2, m.MarkRay(pos(0, 0), 0, 3.5))
	assert.True(t, m.Explored(pos(0, 4)))
	assert.False(t, m.Explored(pos(0, 5)))
}

func TestMarkRay_IncludesWallCell(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{{0, 0, 0, 1, 0}})
	require.NoError(t, err)
	r, err := radar.New(g, pos(0, 0), radar.WithMaxRange(10))
	require.NoError(t, err)

	reading := r.CastRay(0)
	m := explored.NewFor(g)
	m.MarkRay(pos(0, 0), 0, reading.Distance)

	assert.True(t, m.Explored(pos(0, 3)), "the struck wall is seen")
	assert.False(t, m.Explored(pos(0, 4)), "nothing behind the wall is seen")
}

// TestMarkScan_OpenGrid sweeps a 10×10 open grid from the corner at 90°
// steps: rays 0° and 90° cover the first row and column; 180° and 270° only
// touch the origin.
func TestMarkScan_OpenGrid(t *testing.T) {
	g := openGrid(t, 10, 10)
	r, err := radar.New(g, pos(0, 0), radar.WithMaxRange(15))
	require.NoError(t, err)
	scan, err := r.Scan360(90)
	require.NoError(t, err)

	m := explored.NewFor(g)
	assert.Equal(t, 19, m.MarkScan(pos(0, 0), scan))
	assert.Equal(t, 19, m.Count())

	snap := m.Snapshot()
	for i := 0; i < 10; i++ {
		assert.True(t, snap[0][i])
		assert.True(t, snap[i][0])
	}
	assert.False(t, snap[1][1])
}

// TestMarkScan_Idempotent applies the same scan twice and checks nothing
// changes the second time.
func TestMarkScan_Idempotent(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{
		{0, 0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	r, err := radar.New(g, pos(3, 2))
	require.NoError(t, err)
	scan, err := r.Scan360(5)
	require.NoError(t, err)

	once := explored.NewFor(g)
	once.MarkScan(pos(3, 2), scan)

	twice := explored.NewFor(g)
	twice.MarkScan(pos(3, 2), scan)
	assert.Zero(t, twice.MarkScan(pos(3, 2), scan))
	assert.True(t, once.Equal(twice))
	assert.Equal(t, once.Snapshot(), twice.Snapshot())
}

func TestSnapshot_IsCopy(t *testing.T) {
	m := explored.NewFor(openGrid(t, 2, 2))
	snap := m.Snapshot()
	snap[0][0] = true

	assert.False(t, m.Explored(pos(0, 0)))
}
