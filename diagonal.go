package pathlength

import "math"

// diagonalCorners returns the corners of the "/" diagonal of the unit cell
// whose top-left corner is left, top. Y grows downwards, so a is the
// top-right corner and b is the bottom-left corner.
func diagonalCorners(left, top float64) (a, b Position) {
	return Position{X: left + 1, Y: top}, Position{X: left, Y: top + 1}
}

// DiagonalIntersection returns where the segment from p0 to p1 crosses the
// "/" diagonal of the unit cell containing its midpoint. It returns false if
// the segment is parallel to the diagonal or if the crossing is not inside
// the cell and strictly between p0 and p1.
func DiagonalIntersection(p0, p1 Position) (Position, bool) {
	left := math.Floor((p0.X + p1.X) / 2)
	top := math.Floor((p0.Y + p1.Y) / 2)
	c, d := diagonalCorners(left, top)

	// Both lines as a*x + b*y = c.
	a1 := p1.Y - p0.Y
	b1 := p0.X - p1.X
	c1 := a1*p0.X + b1*p0.Y

	a2 := d.Y - c.Y
	b2 := c.X - d.X
	c2 := a2*c.X + b2*c.Y

	det := a1*b2 - a2*b1
	if math.Abs(det) < Epsilon {
		return Position{}, false
	}
	p := Position{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}

	if p.X < left || p.X >= left+1 || p.Y < top || p.Y >= top+1 {
		return Position{}, false
	}

	// Reject crossings at or beyond either end of the segment.
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	var s float64
	if math.Abs(dx) >= math.Abs(dy) {
		s = (p.X - p0.X) / dx
	} else {
		s = (p.Y - p0.Y) / dy
	}
	length := math.Hypot(dx, dy)
	if s*length <= Epsilon || (1-s)*length <= Epsilon {
		return Position{}, false
	}

	return p, true
}
