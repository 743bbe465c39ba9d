package pathlength

import "slices"

// A Delta is the length of the same path before and after a change.
type Delta struct {
	Before float64
	After  float64
}

// Change returns d.After - d.Before.
func (d Delta) Change() float64 {
	return d.After - d.Before
}

// An Analyzer compares path lengths across two snapshots of the same
// terrain.
type Analyzer struct {
	before  Grid
	after   Grid
	options []QueryOption
}

// NewAnalyzer returns a new Analyzer. before and after must have the same
// dimensions.
func NewAnalyzer(before, after Grid, options ...QueryOption) (*Analyzer, error) {
	if !sameDimensions([]Grid{before, after}) {
		return nil, ErrDimensionMismatch
	}
	return &Analyzer{
		before:  before,
		after:   after,
		options: options,
	}, nil
}

// Width returns the width of a's snapshots.
func (a *Analyzer) Width() int {
	return a.before.Width()
}

// Height returns the height of a's snapshots.
func (a *Analyzer) Height() int {
	return a.before.Height()
}

// Delta returns the lengths of the path from start to end before and after.
// options are applied after a's own options.
func (a *Analyzer) Delta(start, end Position, options ...QueryOption) (Delta, error) {
	before, after, err := PathLengths(a.before, a.after, start, end, slices.Concat(a.options, options)...)
	if err != nil {
		return Delta{}, err
	}
	return Delta{
		Before: before,
		After:  after,
	}, nil
}
