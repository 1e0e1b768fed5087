package radar

import (
	"fmt"
	"math"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// Radar is a range sensor bound to one grid. It is not safe for
// concurrent use; the owning explorer serializes access.
type Radar struct {
	grid     *occupancy.Grid
	pos      occupancy.Position
	maxRange int

	cache     Scan
	cacheStep int
}

// New places a radar on grid at pos.
// Without WithMaxRange the range defaults to the truncated grid diagonal.
func New(grid *occupancy.Grid, pos occupancy.Position, opts ...Option) (*Radar, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !grid.InBounds(pos) {
		return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}

	maxRange := o.MaxRange
	if maxRange == 0 {
		h, w := float64(grid.Height()), float64(grid.Width())
		maxRange = max(int(math.Sqrt(h*h+w*w)), 1)
	}

	return &Radar{grid: grid, pos: pos, maxRange: maxRange}, nil
}

// Position returns the radar's current cell.
func (r *Radar) Position() occupancy.Position { return r.pos }

// MaxRange returns the number of unit steps per ray.
func (r *Radar) MaxRange() int { return r.maxRange }

// Move relocates the radar and drops the cached scan.
func (r *Radar) Move(pos occupancy.Position) error {
	if !r.grid.InBounds(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}
	r.pos = pos
	r.cache = nil

	return nil
}

// SetRange changes the maximum range and drops the cached scan.
func (r *Radar) SetRange(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrBadRange, n)
	}
	r.maxRange = n
	r.cache = nil

	return nil
}

// Cached returns the last scan if it is still valid.
func (r *Radar) Cached() (Scan, bool) {
	return r.cache, r.cache != nil
}

// CastRay steps a ray at angleDeg out of the current position.
// Distance never exceeds MaxRange; Hit is outside the grid only for edge hits.
func (r *Radar) CastRay(angleDeg int) Reading {
	ray := occupancy.NewRay(r.pos, float64(angleDeg))
	for step := 0; step < r.maxRange; step++ {
		cell, _, _ := ray.At(step)
		if !r.grid.InBounds(cell) {
			return Reading{Distance: float64(step), Hit: &cell}
		}
		if r.grid.Occupied(cell) {
			return Reading{Distance: ray.Distance(step), Hit: &cell}
		}
	}

	return Reading{Distance: float64(r.maxRange)}
}

// Scan360 casts a ray at every angle in [0, 360) spaced by angleStep.
// The result is cached; a repeat call with the same step returns the cache.
// Callers must not mutate the returned Scan.
func (r *Radar) Scan360(angleStep int) (Scan, error) {
	if angleStep < 1 || angleStep > 360 {
		return nil, fmt.Errorf("%w: got %d", ErrBadAngleStep, angleStep)
	}
	if r.cache != nil && r.cacheStep == angleStep {
		return r.cache, nil
	}

	scan := make(Scan, (360+angleStep-1)/angleStep)
	for angle := 0; angle < 360; angle += angleStep {
		scan[angle] = r.CastRay(angle)
	}
	r.cache, r.cacheStep = scan, angleStep

	return scan, nil
}
