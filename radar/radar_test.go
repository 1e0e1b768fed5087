package radar_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/radarmaze/occupancy"
	"github.com/katalvlaran/radarmaze/radar"
)

// openGrid returns an all-FREE h×w grid.
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

func TestNew_Errors(t *testing.T) {
	g := openGrid(t, 3, 3)

	_, err := radar.New(nil, pos(0, 0))
	assert.ErrorIs(t, err, radar.ErrNilGrid)

	_, err = radar.New(g, pos(3, 0))
	assert.ErrorIs(t, err, radar.ErrOutOfBounds)

	_, err = radar.New(g, pos(0, 0), radar.WithMaxRange(0))
	assert.ErrorIs(t, err, radar.ErrBadRange)
}

func TestNew_DefaultRangeIsDiagonal(t *testing.T) {
	r, err := radar.New(openGrid(t, 10, 10), pos(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 14, r.MaxRange())
}

// TestCastRay_EdgeHits checks that leaving the grid reports the step count
// and the out-of-bounds cell, not a clamped one.
func TestCastRay_EdgeHits(t *testing.T) {
	r, err := radar.New(openGrid(t, 10, 10), pos(0, 0), radar.WithMaxRange(15))
	require.NoError(t, err)

	cases := []struct {
		angle int
		dist  float64
		hit   occupancy.Position
	}{
		{0, 10, pos(0, 10)},
		{90, 10, pos(10, 0)},
		{180, 1, pos(0, -1)},
		{270, 1, pos(-1, 0)},
	}
	for _, tc := range cases {
		got := r.CastRay(tc.angle)
		assert.Equal(t, tc.dist, got.Distance, "angle %d", tc.angle)
		require.NotNil(t, got.Hit, "angle %d", tc.angle)
		assert.Equal(t, tc.hit, *got.Hit, "angle %d", tc.angle)
	}
}

func TestCastRay_RangeExhausted(t *testing.T) {
	r, err := radar.New(openGrid(t, 10, 10), pos(0, 0), radar.WithMaxRange(5))
	require.NoError(t, err)

	got := r.CastRay(0)
	assert.Equal(t, 5.0, got.Distance)
	assert.Nil(t, got.Hit)
}

func TestCastRay_WallHit(t *testing.T) {
	rows := [][]uint8{
		{0, 0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 1, 0},
	}
	g, err := occupancy.FromRows(rows)
	require.NoError(t, err)
	r, err := radar.New(g, pos(1, 1), radar.WithMaxRange(20))
	require.NoError(t, err)

	got := r.CastRay(0)
	assert.InDelta(t, 5.0, got.Distance, 1e-9)
	require.NotNil(t, got.Hit)
	assert.Equal(t, pos(1, 6), *got.Hit)
}

// TestCastRay_DiagonalWallUsesEuclideanDistance follows a 20° ray through
// (0,1) (1,2) (1,3) (1,4) until step 5 rounds onto the wall at (2,5).
func TestCastRay_DiagonalWallUsesEuclideanDistance(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 0},
	})
	require.NoError(t, err)
	r, err := radar.New(g, pos(0, 0), radar.WithMaxRange(10))
	require.NoError(t, err)

	got := r.CastRay(20)
	require.NotNil(t, got.Hit)
	assert.Equal(t, pos(2, 5), *got.Hit)
	assert.InDelta(t, 5.0, got.Distance, 1e-9)
}

func TestCastRay_StandingOnWall(t *testing.T) {
	g, err := occupancy.FromRows([][]uint8{{1, 0}})
	require.NoError(t, err)
	r, err := radar.New(g, pos(0, 0), radar.WithMaxRange(4))
	require.NoError(t, err)

	got := r.CastRay(0)
	assert.Equal(t, 0.0, got.Distance)
	assert.Equal(t, pos(0, 0), *got.Hit)
}

// TestCastRay_Properties checks range and hit-point bounds on random grids.
func TestCastRay_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		h, w := 5+rng.Intn(15), 5+rng.Intn(15)
		rows := make([][]uint8, h)
		for i := range rows {
			rows[i] = make([]uint8, w)
			for j := range rows[i] {
				if rng.Intn(5) == 0 {
					rows[i][j] = occupancy.Occupied
				}
			}
		}
		g, err := occupancy.FromRows(rows)
		require.NoError(t, err)

		maxRange := 1 + rng.Intn(25)
		r, err := radar.New(g, pos(rng.Intn(h), rng.Intn(w)), radar.WithMaxRange(maxRange))
		require.NoError(t, err)

		for angle := 0; angle < 360; angle += 7 {
			got := r.CastRay(angle)
			assert.GreaterOrEqual(t, got.Distance, 0.0)
			assert.LessOrEqual(t, got.Distance, float64(maxRange))
			if got.Hit == nil {
				assert.Equal(t, float64(maxRange), got.Distance)
				continue
			}
			if g.InBounds(*got.Hit) {
				assert.True(t, g.Occupied(*got.Hit), "in-bounds hit must be a wall")
			} else {
				assert.Equal(t, math.Trunc(got.Distance), got.Distance, "edge hits report step counts")
			}
		}
	}
}

func TestScan360(t *testing.T) {
	r, err := radar.New(openGrid(t, 10, 10), pos(0, 0), radar.WithMaxRange(15))
	require.NoError(t, err)

	_, err = r.Scan360(0)
	assert.ErrorIs(t, err, radar.ErrBadAngleStep)
	_, err = r.Scan360(361)
	assert.ErrorIs(t, err, radar.ErrBadAngleStep)

	scan, err := r.Scan360(90)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 90, 180, 270}, scan.Angles())
	assert.Equal(t, []float64{10, 10, 1, 1}, scan.Distances())
	assert.Equal(t, []occupancy.Position{pos(0, 10), pos(10, 0), pos(0, -1), pos(-1, 0)}, scan.Points(pos(0, 0)))

	full, err := r.Scan360(1)
	require.NoError(t, err)
	assert.Len(t, full, 360)

	odd, err := r.Scan360(7)
	require.NoError(t, err)
	assert.Len(t, odd, 52)
}

func TestScan360_Cache(t *testing.T) {
	r, err := radar.New(openGrid(t, 10, 10), pos(0, 0), radar.WithMaxRange(15))
	require.NoError(t, err)

	_, ok := r.Cached()
	assert.False(t, ok)

	first, err := r.Scan360(45)
	require.NoError(t, err)
	cached, ok := r.Cached()
	require.True(t, ok)
	assert.Equal(t, first, cached)

	require.NoError(t, r.Move(pos(5, 5)))
	_, ok = r.Cached()
	assert.False(t, ok, "move invalidates the cache")

	second, err := r.Scan360(45)
	require.NoError(t, err)
	assert.NotEqual(t, first[0], second[0])

	require.NoError(t, r.SetRange(2))
	_, ok = r.Cached()
	assert.False(t, ok, "range change invalidates the cache")

	third, err := r.Scan360(45)
	require.NoError(t, err)
	assert.Equal(t, 2.0, third[0].Distance)
	assert.Nil(t, third[0].Hit)
}

func TestMoveAndSetRange_Errors(t *testing.T) {
	r, err := radar.New(openGrid(t, 4, 4), pos(1, 1))
	require.NoError(t, err)

	assert.ErrorIs(t, r.Move(pos(4, 0)), radar.ErrOutOfBounds)
	assert.Equal(t, pos(1, 1), r.Position())

	assert.ErrorIs(t, r.SetRange(-1), radar.ErrBadRange)
	assert.Equal(t, 5, r.MaxRange())
}

func TestScan_PointsWithoutHit(t *testing.T) {
	r, err := radar.New(openGrid(t, 10, 10), pos(0, 0), radar.WithMaxRange(5))
	require.NoError(t, err)

	scan, err := r.Scan360(90)
	require.NoError(t, err)
	points := scan.Points(pos(0, 0))
	assert.Equal(t, pos(0, 5), points[0])
	assert.Equal(t, pos(5, 0), points[1])
}

func TestScan_Clone(t *testing.T) {
	hit := pos(1, 1)
	s := radar.Scan{0: {Distance: 1, Hit: &hit}}
	c := s.Clone()
	c[0].Hit.Row = 9

	assert.Equal(t, 1, s[0].Hit.Row)
	assert.Nil(t, radar.Scan(nil).Clone())
}
