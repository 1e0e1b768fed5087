package occupancy

import "math"

// RoundHalfEven rounds v to the nearest integer, ties to even.
// It is the only discretization rule used for rays and scaling, so what the
// radar senses and what the tracker marks always land on the same cells.
func RoundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// Ray is a unit direction vector anchored at a grid cell.
// Dy follows rows (sin θ) and Dx follows columns (cos θ).
type Ray struct {
	Origin Position
	Dy, Dx float64
}

// NewRay builds the ray leaving origin at angleDeg degrees.
func NewRay(origin Position, angleDeg float64) Ray {
	rad := angleDeg * math.Pi / 180
	return Ray{Origin: origin, Dy: math.Sin(rad), Dx: math.Cos(rad)}
}

// At returns the continuous point reached after step unit increments and
// the cell it rounds to. The cell may lie outside any grid.
func (r Ray) At(step int) (cell Position, fy, fx float64) {
	fy = float64(r.Origin.Row) + r.Dy*float64(step)
	fx = float64(r.Origin.Col) + r.Dx*float64(step)

	return Position{Row: RoundHalfEven(fy), Col: RoundHalfEven(fx)}, fy, fx
}

// Distance is the Euclidean distance from the origin to the continuous point
// at step, not to the centre of the rounded cell.
func (r Ray) Distance(step int) float64 {
	_, fy, fx := r.At(step)
	return math.Hypot(fy-float64(r.Origin.Row), fx-float64(r.Origin.Col))
}
