package mind

import "fmt"

// Position is a cell coordinate on the dungeon grid.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the position offset by a direction.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Chebyshev returns max(|dx|,|dy|), the square-grid tactical metric where
// diagonal and orthogonal steps both count as one.
func (p Position) Chebyshev(o Position) int {
	dx := abs(p.X - o.X)
	dy := abs(p.Y - o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// DistanceSquared returns the squared Euclidean distance, used for circular
// range checks without a sqrt.
func (p Position) DistanceSquared(o Position) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// DistanceMetric selects how range is measured.
type DistanceMetric int

const (
	// MetricEuclidean gives a circular field, natural for vision.
	MetricEuclidean DistanceMetric = iota
	// MetricChebyshev gives a square field, natural for targeting range.
	MetricChebyshev
)

// WithinRange reports whether o lies within r of p under the metric.
func (m DistanceMetric) WithinRange(p, o Position, r int) bool {
	switch m {
	case MetricChebyshev:
		return p.Chebyshev(o) <= r
	default:
		return p.DistanceSquared(o) <= r*r
	}
}

// Direction is one of the eight grid steps.
type Direction struct {
	DX, DY int
}

// Directions lists all eight neighbours in a fixed scan order. Every consumer
// that iterates neighbours uses this slice so tie-breaks stay deterministic.
var Directions = [8]Direction{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// DirectionTo returns the unit step from p toward o (each component clamped
// to -1/0/1).
func (p Position) DirectionTo(o Position) Direction {
	return Direction{DX: sign(o.X - p.X), DY: sign(o.Y - p.Y)}
}

// IsZero reports a no-op direction.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
