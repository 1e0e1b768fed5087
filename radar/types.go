package radar

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// Sentinel errors for radar operations.
var (
	// ErrOutOfBounds indicates a radar position outside the grid.
	ErrOutOfBounds = errors.New("radar: position out of grid bounds")
	// ErrBadRange indicates a maximum range ≤ 0.
	ErrBadRange = errors.New("radar: max range must be positive")
	// ErrBadAngleStep indicates an angle step outside [1, 360].
	ErrBadAngleStep = errors.New("radar: angle step must be within [1, 360]")
	// ErrNilGrid indicates a nil grid.
	ErrNilGrid = errors.New("radar: grid is nil")
)

// Reading is the outcome of one ray.
type Reading struct {
	// Distance is ≥ 0 and ≤ the radar's max range.
	Distance float64 `json:"distance"`
	// Hit is the struck cell, possibly outside the grid for edge hits;
	// nil when the ray ran out of range.
	Hit *occupancy.Position `json:"hit,omitempty"`
}

// Scan maps angles in degrees, [0, 360), to readings.
type Scan map[int]Reading

// Angles returns the scanned angles in ascending order.
func (s Scan) Angles() []int {
	angles := make([]int, 0, len(s))
	for a := range s {
		angles = append(angles, a)
	}
	sort.Ints(angles)

	return angles
}

// Distances returns the distances aligned with Angles.
func (s Scan) Distances() []float64 {
	angles := s.Angles()
	out := make([]float64, len(angles))
	for i, a := range angles {
		out[i] = s[a].Distance
	}

	return out
}

// Points returns one point per angle, in Angles order: the hit cell when
// there is one, otherwise the end of the ray truncated toward zero.
func (s Scan) Points(origin occupancy.Position) []occupancy.Position {
	angles := s.Angles()
	out := make([]occupancy.Position, len(angles))
	for i, a := range angles {
		r := s[a]
		if r.Hit != nil {
			out[i] = *r.Hit
			continue
		}
		rad := float64(a) * math.Pi / 180
		out[i] = occupancy.Position{
			Row: int(float64(origin.Row) + r.Distance*math.Sin(rad)),
			Col: int(float64(origin.Col) + r.Distance*math.Cos(rad)),
		}
	}

	return out
}

// Clone returns a deep copy of s.
func (s Scan) Clone() Scan {
	if s == nil {
		return nil
	}
	c := make(Scan, len(s))
	for a, r := range s {
		if r.Hit != nil {
			h := *r.Hit
			r.Hit = &h
		}
		c[a] = r
	}

	return c
}

// Option configures a Radar at construction.
type Option func(*Options)

// Options holds radar parameters.
type Options struct {
	// MaxRange is the number of unit steps per ray; 0 means the grid diagonal.
	MaxRange int

	err error
}

// WithMaxRange sets the maximum number of unit steps per ray.
//
//	n > 0: use n
//	n ≤ 0: invalid option → ErrBadRange
func WithMaxRange(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: got %d", ErrBadRange, n)
			return
		}
		o.MaxRange = n
	}
}
