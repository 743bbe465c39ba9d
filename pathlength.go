// Package pathlength measures the length of straight paths across elevation
// rasters.
package pathlength

import "errors"

// Epsilon is the tolerance used when comparing grid coordinates.
const Epsilon = 1e-9

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrOutOfBounds       = errors.New("out of bounds")
	ErrSizeMismatch      = errors.New("size mismatch")
)

// A Coord is an integer grid coordinate.
type Coord struct {
	X int
	Y int
}

// A Position is a continuous grid coordinate.
type Position struct {
	X float64
	Y float64
}

// A Grid is a read-only raster of quantized elevations.
type Grid interface {
	Width() int
	Height() int
	At(x, y int) byte
}

// InBounds returns whether p lies within grid.
func InBounds(grid Grid, p Position) bool {
	return 0 <= p.X && p.X <= float64(grid.Width()-1) &&
		0 <= p.Y && p.Y <= float64(grid.Height()-1)
}

func sameDimensions(grids []Grid) bool {
	for _, grid := range grids[1:] {
		if grid.Width() != grids[0].Width() || grid.Height() != grids[0].Height() {
			return false
		}
	}
	return true
}
