package pathlength

import (
	"encoding/csv"
	"io"
	"strconv"
)

// A Collector receives every sample taken during a query. grid is the index
// of the sampled grid.
type Collector interface {
	CollectSample(grid int, sample Sample)
}

// A CollectorFunc is a func that implements Collector.
type CollectorFunc func(grid int, sample Sample)

func (f CollectorFunc) CollectSample(grid int, sample Sample) {
	f(grid, sample)
}

// A SampleRecorder records samples in memory.
type SampleRecorder struct {
	Samples [][]Sample // Indexed by grid.
}

func (r *SampleRecorder) CollectSample(grid int, sample Sample) {
	for len(r.Samples) <= grid {
		r.Samples = append(r.Samples, nil)
	}
	r.Samples[grid] = append(r.Samples[grid], sample)
}

var csvHeader = []string{
	"grid",
	"pos.x", "pos.y",
	"posA.x", "posA.y",
	"posB.x", "posB.y",
	"lerp",
	"a", "b",
	"value",
	"posC.x", "posC.y",
	"c",
}

// A CSVCollector writes samples as CSV rows.
type CSVCollector struct {
	w             *csv.Writer
	headerWritten bool
	err           error
}

// NewCSVCollector returns a new CSVCollector that writes to w.
func NewCSVCollector(w io.Writer) *CSVCollector {
	return &CSVCollector{
		w: csv.NewWriter(w),
	}
}

func (c *CSVCollector) CollectSample(grid int, sample Sample) {
	if c.err != nil {
		return
	}
	if !c.headerWritten {
		c.headerWritten = true
		if c.err = c.w.Write(csvHeader); c.err != nil {
			return
		}
	}
	c.err = c.w.Write([]string{
		strconv.Itoa(grid),
		formatFloat(sample.Position.X), formatFloat(sample.Position.Y),
		formatFloat(sample.A.X), formatFloat(sample.A.Y),
		formatFloat(sample.B.X), formatFloat(sample.B.Y),
		formatFloat(sample.Factor),
		formatFloat(sample.ValueA), formatFloat(sample.ValueB),
		formatFloat(sample.Value),
		formatFloat(sample.C.X), formatFloat(sample.C.Y),
		formatFloat(sample.ValueC),
	})
}

// Flush flushes buffered rows and returns the first error encountered.
func (c *CSVCollector) Flush() error {
	c.w.Flush()
	if c.err != nil {
		return c.err
	}
	return c.w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
