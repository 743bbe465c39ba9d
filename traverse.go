package pathlength

import (
	"iter"
	"math"
)

// A Ray is a directed segment between two positions.
type Ray struct {
	Start  Position
	End    Position
	Dir    Position // Unit direction, zero if degenerate.
	Length float64
}

// NewRay returns the ray from start to end.
func NewRay(start, end Position) Ray {
	r := Ray{
		Start:  start,
		End:    end,
		Length: math.Hypot(end.X-start.X, end.Y-start.Y),
	}
	if r.Length > Epsilon {
		r.Dir = Position{
			X: (end.X - start.X) / r.Length,
			Y: (end.Y - start.Y) / r.Length,
		}
	}
	return r
}

// Degenerate returns whether r has no length.
func (r Ray) Degenerate() bool {
	return r.Length <= Epsilon
}

// crossY returns the Y coordinate where r crosses the vertical line at x.
func (r Ray) crossY(x float64) float64 {
	return r.Start.Y + (x-r.Start.X)*(r.End.Y-r.Start.Y)/(r.End.X-r.Start.X)
}

// crossX returns the X coordinate where r crosses the horizontal line at y.
func (r Ray) crossX(y float64) float64 {
	return r.Start.X + (y-r.Start.Y)*(r.End.X-r.Start.X)/(r.End.Y-r.Start.Y)
}

// contains returns whether p lies within the bounding rectangle of r.
func (r Ray) contains(p Position) bool {
	return math.Min(r.Start.X, r.End.X)-Epsilon <= p.X && p.X <= math.Max(r.Start.X, r.End.X)+Epsilon &&
		math.Min(r.Start.Y, r.End.Y)-Epsilon <= p.Y && p.Y <= math.Max(r.Start.Y, r.End.Y)+Epsilon
}

// An axisStepper tracks the next grid boundary along one axis.
type axisStepper struct {
	start    float64
	dir      float64
	step     float64
	boundary float64
}

func newAxisStepper(start, dir float64) axisStepper {
	s := axisStepper{
		start: start,
		dir:   dir,
	}
	if rounded := math.Round(start); math.Abs(rounded-start) <= Epsilon {
		start = rounded
	}
	switch {
	case dir > 0:
		s.step = 1
		s.boundary = math.Floor(start) + 1
	case dir < 0:
		s.step = -1
		s.boundary = math.Ceil(start) - 1
	}
	return s
}

// next returns the ray length to the next boundary. An axis that the ray
// does not move along is never crossed.
func (s *axisStepper) next() float64 {
	if s.dir == 0 {
		return math.Inf(1)
	}
	return (s.boundary - s.start) / s.dir
}

func (s *axisStepper) advance() {
	s.boundary += s.step
}

// Traverse returns the cell boundary crossings strictly between start and
// end, ordered by increasing distance from start. Crossed coordinates are
// exact integers. When a crossing hits both axes at once, a single grid
// point is returned.
func Traverse(start, end Position) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		ray := NewRay(start, end)
		if ray.Degenerate() {
			return
		}

		dir := ray.Dir
		if math.Abs(dir.X) <= Epsilon {
			dir.X = 0
		}
		if math.Abs(dir.Y) <= Epsilon {
			dir.Y = 0
		}
		xs := newAxisStepper(start.X, dir.X)
		ys := newAxisStepper(start.Y, dir.Y)

		maxSteps := int(math.Abs(end.X-start.X)+math.Abs(end.Y-start.Y)) + 2
		for range maxSteps {
			tx, ty := xs.next(), ys.next()
			t := math.Min(tx, ty)
			if t >= ray.Length-Epsilon {
				return
			}

			var p Position
			switch {
			case math.Abs(tx-ty) <= Epsilon:
				p = Position{X: xs.boundary, Y: ys.boundary}
				xs.advance()
				ys.advance()
			case tx < ty:
				p = Position{X: xs.boundary, Y: ray.crossY(xs.boundary)}
				xs.advance()
			default:
				p = Position{X: ray.crossX(ys.boundary), Y: ys.boundary}
				ys.advance()
			}

			if !ray.contains(p) {
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}
