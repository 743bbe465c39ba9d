package pathlength_test

import (
	"math"
	"testing"
	"testing/fstest"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-pathlength"
)

// newStHelensFS returns 512x512 pre and post snapshots of smooth synthetic
// terrain.
func newStHelensFS() fstest.MapFS {
	const size = 512
	pre := make([]byte, size*size)
	post := make([]byte, size*size)
	for y := range size {
		for x := range size {
			pre[y*size+x] = byte((x*x + y*y) / 2048)
			post[y*size+x] = byte((x + 2*y) / 6)
		}
	}
	return fstest.MapFS{
		"pre.data":  &fstest.MapFile{Data: pre},
		"post.data": &fstest.MapFile{Data: post},
	}
}

func newStHelensAnalyzer(t *testing.T) (*pathlength.SnapshotSet, *pathlength.Analyzer) {
	t.Helper()
	s, err := pathlength.NewStHelens(newStHelensFS())
	assert.NoError(t, err)
	analyzer, err := s.Analyzer(pathlength.StHelensPre, pathlength.StHelensPost)
	assert.NoError(t, err)
	return s, analyzer
}

func TestStHelens_Horizontal(t *testing.T) {
	s, analyzer := newStHelensAnalyzer(t)

	expected := pathlength.Delta{}
	for _, tc := range []struct {
		name   string
		length *float64
	}{
		{name: pathlength.StHelensPre, length: &expected.Before},
		{name: pathlength.StHelensPost, length: &expected.After},
	} {
		h, err := s.Snapshot(tc.name)
		assert.NoError(t, err)
		coords := make([]pathlength.Coord, 512)
		for x := range coords {
			coords[x] = pathlength.Coord{X: x, Y: 0}
		}
		row := h.Samples(coords)
		for x := 1; x < len(row); x++ {
			dh := 11 * math.Abs(row[x]-row[x-1])
			*tc.length += math.Sqrt(30*30 + dh*dh)
		}
	}

	actual, err := analyzer.Delta(pathlength.Position{X: 0, Y: 0}, pathlength.Position{X: 511, Y: 0})
	assert.NoError(t, err)
	assert.True(t, math.Abs(expected.Before-actual.Before) < 1e-6)
	assert.True(t, math.Abs(expected.After-actual.After) < 1e-6)
}

func TestStHelens_SplitDiagonal(t *testing.T) {
	_, analyzer := newStHelensAnalyzer(t)
	p0 := pathlength.Position{X: 0, Y: 0}
	p1 := pathlength.Position{X: 255, Y: 255}
	p2 := pathlength.Position{X: 511, Y: 511}

	d01, err := analyzer.Delta(p0, p1)
	assert.NoError(t, err)
	d12, err := analyzer.Delta(p1, p2)
	assert.NoError(t, err)
	d20, err := analyzer.Delta(p2, p0)
	assert.NoError(t, err)

	assert.True(t, math.Abs(d20.Before-d01.Before-d12.Before) < additivityTolerance)
	assert.True(t, math.Abs(d20.After-d01.After-d12.After) < additivityTolerance)
}

func TestStHelens_WrongSize(t *testing.T) {
	s, err := pathlength.NewStHelens(fstest.MapFS{
		"pre.data": &fstest.MapFile{Data: make([]byte, 256*256)},
	})
	assert.NoError(t, err)
	_, err = s.Snapshot(pathlength.StHelensPre)
	assert.IsError(t, err, pathlength.ErrSizeMismatch)
}
