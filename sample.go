package pathlength

import (
	"fmt"
	"math"
)

// A Kind classifies where a position lies relative to the grid.
type Kind int

const (
	OnGridPoint      Kind = iota // Integer X and Y.
	OnHorizontalEdge             // Integer Y only.
	OnVerticalEdge               // Integer X only.
	Interior                     // On the cell's "/" diagonal.
	InTriangle                   // Inside one of the cell's two triangles.
)

func (k Kind) String() string {
	switch k {
	case OnGridPoint:
		return "OnGridPoint"
	case OnHorizontalEdge:
		return "OnHorizontalEdge"
	case OnVerticalEdge:
		return "OnVerticalEdge"
	case Interior:
		return "Interior"
	case InTriangle:
		return "InTriangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Location is a classified position.
type Location struct {
	Kind  Kind
	Left  int
	Top   int
	FracX float64
	FracY float64
}

// Classify classifies pos. Coordinates within Epsilon of an integer are
// treated as that integer.
func Classify(pos Position) Location {
	left, fracX, onX := snap(pos.X)
	top, fracY, onY := snap(pos.Y)
	l := Location{
		Left:  left,
		Top:   top,
		FracX: fracX,
		FracY: fracY,
	}
	switch {
	case onX && onY:
		l.Kind = OnGridPoint
	case onY:
		l.Kind = OnHorizontalEdge
	case onX:
		l.Kind = OnVerticalEdge
	case math.Abs(fracX+fracY-1) <= Epsilon:
		l.Kind = Interior
	default:
		l.Kind = InTriangle
	}
	return l
}

// snap returns the integer part and fractional part of v, and whether v is
// within Epsilon of an integer.
func snap(v float64) (int, float64, bool) {
	if rounded := math.Round(v); math.Abs(rounded-v) <= Epsilon {
		return int(rounded), 0, true
	}
	floor := math.Floor(v)
	return int(floor), v - floor, false
}

// A Sample is an interpolated elevation together with the values it was
// interpolated from. C, ValueC and Weights are only set for InTriangle
// samples, where A and B are the cell's diagonal corners and C is the
// triangle's third corner.
type Sample struct {
	Position Position
	Kind     Kind
	A        Position
	B        Position
	C        Position
	ValueA   float64
	ValueB   float64
	ValueC   float64
	Factor   float64
	Weights  [3]float64 // Barycentric weights of A, B and C.
	Value    float64
}

// SampleGrid returns the elevation of grid at pos. Positions on grid points
// return the stored value. Positions on grid lines interpolate between the
// two neighbors on that line. Positions on a cell's "/" diagonal interpolate
// along it, and other positions inside a cell take the plane of the triangle
// containing them, so each cell is two planar triangles.
//
// SampleGrid panics if pos is outside grid.
func SampleGrid(grid Grid, pos Position) Sample {
	if !InBounds(grid, pos) {
		panic(fmt.Sprintf("pathlength: sample at (%g, %g) outside %dx%d grid", pos.X, pos.Y, grid.Width(), grid.Height()))
	}

	loc := Classify(pos)
	s := Sample{
		Position: pos,
		Kind:     loc.Kind,
	}
	switch loc.Kind {
	case OnGridPoint:
		s.A = Position{X: float64(loc.Left), Y: float64(loc.Top)}
		s.B = s.A
	case OnHorizontalEdge:
		s.A = Position{X: float64(loc.Left), Y: float64(loc.Top)}
		s.B = Position{X: float64(loc.Left + 1), Y: float64(loc.Top)}
		s.Factor = loc.FracX
	case OnVerticalEdge:
		s.A = Position{X: float64(loc.Left), Y: float64(loc.Top)}
		s.B = Position{X: float64(loc.Left), Y: float64(loc.Top + 1)}
		s.Factor = loc.FracY
	case Interior:
		s.A, s.B = diagonalCorners(float64(loc.Left), float64(loc.Top))
		s.Factor = clamp01(((1 - loc.FracX) + loc.FracY) / 2)
	case InTriangle:
		s.A, s.B = diagonalCorners(float64(loc.Left), float64(loc.Top))
		if loc.FracX+loc.FracY < 1 {
			s.C = Position{X: float64(loc.Left), Y: float64(loc.Top)}
			s.Weights = [3]float64{loc.FracX, loc.FracY, 1 - loc.FracX - loc.FracY}
		} else {
			s.C = Position{X: float64(loc.Left + 1), Y: float64(loc.Top + 1)}
			s.Weights = [3]float64{1 - loc.FracY, 1 - loc.FracX, loc.FracX + loc.FracY - 1}
		}
	}
	s.ValueA = float64(grid.At(int(s.A.X), int(s.A.Y)))
	s.ValueB = float64(grid.At(int(s.B.X), int(s.B.Y)))
	if s.Kind == InTriangle {
		s.ValueC = float64(grid.At(int(s.C.X), int(s.C.Y)))
		s.Value = s.Weights[0]*s.ValueA + s.Weights[1]*s.ValueB + s.Weights[2]*s.ValueC
	} else {
		s.Value = lerp(s.ValueA, s.ValueB, s.Factor)
	}
	return s
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
