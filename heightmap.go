package pathlength

import (
	"fmt"
	"io/fs"
)

// A Heightmap is an immutable row-major grid of elevation bytes.
type Heightmap struct {
	width  int
	height int
	data   []byte
}

// NewHeightmap returns a new Heightmap. data is not copied and must not be
// modified afterwards.
func NewHeightmap(width, height int, data []byte) (*Heightmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrSizeMismatch)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%d bytes for %dx%d: %w", len(data), width, height, ErrSizeMismatch)
	}
	return &Heightmap{
		width:  width,
		height: height,
		data:   data,
	}, nil
}

// LoadHeightmap reads a raw heightmap of the given dimensions from fsys.
func LoadHeightmap(fsys fs.FS, filename string, width, height int) (*Heightmap, error) {
	data, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	h, err := NewHeightmap(width, height, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return h, nil
}

// Width returns h's width.
func (h *Heightmap) Width() int {
	return h.width
}

// Height returns h's height.
func (h *Heightmap) Height() int {
	return h.height
}

// At returns the elevation at x, y.
func (h *Heightmap) At(x, y int) byte {
	return h.data[y*h.width+x]
}

// Samples returns the raw elevations at coords.
func (h *Heightmap) Samples(coords []Coord) []float64 {
	samples := make([]float64, len(coords))
	for i, coord := range coords {
		samples[i] = float64(h.At(coord.X, coord.Y))
	}
	return samples
}
