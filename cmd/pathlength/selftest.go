package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/twpayne/go-pathlength"
)

// selfTestTolerance is the largest discrepancy in meters that runSelfTest
// accepts.
const selfTestTolerance = 1e-6

// runSelfTest checks path lengths over the before and after snapshots. The
// path along the top row must match the closed-form sum over its grid points,
// and the diagonal across the grid must match the sum of its two halves.
func runSelfTest(w io.Writer, snapshotSet *pathlength.SnapshotSet, before, after string, units pathlength.Units) error {
	analyzer, err := snapshotSet.Analyzer(before, after, pathlength.WithUnits(units))
	if err != nil {
		return err
	}
	width, height := analyzer.Width(), analyzer.Height()

	var expected pathlength.Delta
	coords := make([]pathlength.Coord, width)
	for x := range coords {
		coords[x] = pathlength.Coord{X: x, Y: 0}
	}
	for _, snapshot := range []struct {
		name   string
		length *float64
	}{
		{name: before, length: &expected.Before},
		{name: after, length: &expected.After},
	} {
		h, err := snapshotSet.Snapshot(snapshot.name)
		if err != nil {
			return err
		}
		row := h.Samples(coords)
		for x := 1; x < len(row); x++ {
			dh := units.Vertical * (row[x] - row[x-1])
			*snapshot.length += math.Sqrt(units.Horizontal*units.Horizontal + dh*dh)
		}
	}
	horizontal, err := analyzer.Delta(pathlength.Position{X: 0, Y: 0}, pathlength.Position{X: float64(width - 1), Y: 0})
	if err != nil {
		return err
	}

	m := min(width, height) - 1
	p0 := pathlength.Position{X: 0, Y: 0}
	p1 := pathlength.Position{X: float64(m / 2), Y: float64(m / 2)}
	p2 := pathlength.Position{X: float64(m), Y: float64(m)}
	d01, err := analyzer.Delta(p0, p1)
	if err != nil {
		return err
	}
	d12, err := analyzer.Delta(p1, p2)
	if err != nil {
		return err
	}
	d20, err := analyzer.Delta(p2, p0)
	if err != nil {
		return err
	}
	split := pathlength.Delta{
		Before: d01.Before + d12.Before,
		After:  d01.After + d12.After,
	}

	var errs []error
	for _, check := range []struct {
		name     string
		expected float64
		actual   float64
	}{
		{name: "horizontal before", expected: expected.Before, actual: horizontal.Before},
		{name: "horizontal after", expected: expected.After, actual: horizontal.After},
		{name: "split diagonal before", expected: d20.Before, actual: split.Before},
		{name: "split diagonal after", expected: d20.After, actual: split.After},
	} {
		discrepancy := math.Abs(check.expected - check.actual)
		fmt.Fprintf(w, "%s: expected %.6f, got %.6f\n", check.name, check.expected, check.actual)
		if discrepancy > selfTestTolerance {
			errs = append(errs, fmt.Errorf("%s: discrepancy %g exceeds %g", check.name, discrepancy, selfTestTolerance))
		}
	}
	return errors.Join(errs...)
}
