package pathlength

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_queries_total",
		Help: "The total number of path length queries",
	})
	boundaryCrossings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_boundary_crossings_total",
		Help: "The total number of cell boundary crossings visited",
	})
	diagonalSplits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pathlength_diagonal_splits_total",
		Help: "The total number of cell diagonal crossings inserted",
	})
)

// Units are the real-world sizes of one grid step.
type Units struct {
	Horizontal float64 // Distance per grid unit in X and Y.
	Vertical   float64 // Distance per elevation step.
}

// DefaultUnits are 30m horizontally and 11m vertically.
var DefaultUnits = Units{
	Horizontal: 30,
	Vertical:   11,
}

// Distance returns the real-world distance between p0 at elevation h0 and p1
// at elevation h1.
func (u Units) Distance(p0 Position, h0 float64, p1 Position, h1 float64) float64 {
	dx := u.Horizontal * (p1.X - p0.X)
	dy := u.Horizontal * (p1.Y - p0.Y)
	dh := u.Vertical * (h1 - h0)
	return math.Sqrt(dx*dx + dy*dy + dh*dh)
}

type query struct {
	units     Units
	collector Collector
}

// A QueryOption sets an option on a query.
type QueryOption func(*query)

// WithUnits sets the units.
func WithUnits(units Units) QueryOption {
	return func(q *query) {
		q.units = units
	}
}

// WithCollector sets a collector that receives every sample.
func WithCollector(collector Collector) QueryOption {
	return func(q *query) {
		q.collector = collector
	}
}

// PathLength returns the real-world length of the straight path from start
// to end over grid.
func PathLength(grid Grid, start, end Position, options ...QueryOption) (float64, error) {
	lengths, err := PathLengthsN([]Grid{grid}, start, end, options...)
	if err != nil {
		return 0, err
	}
	return lengths[0], nil
}

// PathLengths returns the lengths of the straight path from start to end
// over gridA and gridB. Both grids are sampled at identical positions.
func PathLengths(gridA, gridB Grid, start, end Position, options ...QueryOption) (float64, float64, error) {
	lengths, err := PathLengthsN([]Grid{gridA, gridB}, start, end, options...)
	if err != nil {
		return 0, 0, err
	}
	return lengths[0], lengths[1], nil
}

// PathLengthsN returns the lengths of the straight path from start to end
// over each of grids, using a single traversal.
func PathLengthsN(grids []Grid, start, end Position, options ...QueryOption) ([]float64, error) {
	if len(grids) == 0 {
		return nil, nil
	}
	if !sameDimensions(grids) {
		return nil, ErrDimensionMismatch
	}
	for _, p := range []Position{start, end} {
		if !InBounds(grids[0], p) {
			return nil, fmt.Errorf("(%g, %g): %w", p.X, p.Y, ErrOutOfBounds)
		}
	}

	q := query{
		units: DefaultUnits,
	}
	for _, option := range options {
		option(&q)
	}

	queries.Inc()
	a := newAccumulator(grids, q)
	a.add(start)
	prev := start
	for p := range Traverse(start, end) {
		boundaryCrossings.Inc()
		a.split(prev, p)
		a.add(p)
		prev = p
	}
	if NewRay(prev, end).Length > Epsilon {
		a.split(prev, end)
		a.add(end)
	}
	return a.lengths, nil
}

// An accumulator sums the distances between consecutive samples on each of
// several grids.
type accumulator struct {
	grids     []Grid
	query     query
	prevPos   Position
	prevElevs []float64
	lengths   []float64
	started   bool
}

func newAccumulator(grids []Grid, q query) *accumulator {
	return &accumulator{
		grids:     grids,
		query:     q,
		prevElevs: make([]float64, len(grids)),
		lengths:   make([]float64, len(grids)),
	}
}

// split adds the diagonal crossing between p0 and p1, if any.
func (a *accumulator) split(p0, p1 Position) {
	if p, ok := DiagonalIntersection(p0, p1); ok {
		diagonalSplits.Inc()
		a.add(p)
	}
}

func (a *accumulator) add(pos Position) {
	for i, grid := range a.grids {
		sample := SampleGrid(grid, pos)
		if a.query.collector != nil {
			a.query.collector.CollectSample(i, sample)
		}
		if a.started {
			a.lengths[i] += a.query.units.Distance(a.prevPos, a.prevElevs[i], pos, sample.Value)
		}
		a.prevElevs[i] = sample.Value
	}
	a.prevPos = pos
	a.started = true
}
