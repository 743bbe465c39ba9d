// Command pathlength measures how the length of straight paths across a
// terrain changed between two elevation snapshots.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/twpayne/go-pathlength"
	"github.com/twpayne/go-pathlength/internal/config"
)

func run() error {
	configPath := flag.String("config", "pathlength.yaml", "path to config file")
	before := flag.String("before", "", "before snapshot, overrides config")
	after := flag.String("after", "", "after snapshot, overrides config")
	batch := flag.String("batch", "", "file of x0 y0 x1 y1 queries, - for stdin")
	csvPath := flag.String("csv", "", "write sampled points as CSV to this file")
	metricsAddr := flag.String("metrics-addr", "", "serve prometheus metrics on this address, overrides config")
	selfTest := flag.Bool("selftest", false, "check path lengths over the snapshots and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *before != "" {
		cfg.Snapshots.Before = *before
	}
	if *after != "" {
		cfg.Snapshots.After = *after
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	snapshotSet, err := pathlength.NewSnapshotSet(
		pathlength.WithFS(os.DirFS(cfg.Snapshots.Dir)),
		pathlength.WithSize(cfg.Width, cfg.Height),
		pathlength.WithFormat(pathlength.Format(cfg.Snapshots.Format)),
		pathlength.WithCacheSize(cfg.CacheSize),
	)
	if err != nil {
		return err
	}

	units, err := resolveUnits(cfg.Units, snapshotSet, cfg.Snapshots.Before)
	if err != nil {
		return err
	}

	if *selfTest {
		return runSelfTest(os.Stdout, snapshotSet, cfg.Snapshots.Before, cfg.Snapshots.After, units)
	}

	options := []pathlength.QueryOption{
		pathlength.WithUnits(units),
	}
	var csvFile *os.File
	var csvCollector *pathlength.CSVCollector
	if *csvPath != "" {
		csvFile, err = os.Create(*csvPath)
		if err != nil {
			return err
		}
		defer csvFile.Close()
		csvCollector = pathlength.NewCSVCollector(csvFile)
		options = append(options, pathlength.WithCollector(csvCollector))
	}

	analyzer, err := snapshotSet.Analyzer(cfg.Snapshots.Before, cfg.Snapshots.After, options...)
	if err != nil {
		return err
	}
	slog.Info("snapshots loaded",
		"dir", cfg.Snapshots.Dir,
		"before", cfg.Snapshots.Before,
		"after", cfg.Snapshots.After,
		"width", analyzer.Width(),
		"height", analyzer.Height(),
		"horizontal", units.Horizontal,
		"vertical", units.Vertical,
	)

	switch {
	case flag.NArg() == 4:
		q, err := parseQuery(flag.Args())
		if err != nil {
			return err
		}
		if err := printDelta(os.Stdout, analyzer, q); err != nil {
			return err
		}
	case flag.NArg() != 0:
		return errors.New("syntax: pathlength [flags] [x0 y0 x1 y1]")
	case *batch != "":
		if csvCollector != nil {
			return errors.New("-csv cannot be used with -batch")
		}
		r, err := openBatch(*batch)
		if err != nil {
			return err
		}
		defer r.Close()
		if err := runBatch(ctx, os.Stdout, analyzer, r, cfg.Concurrency); err != nil {
			return err
		}
	default:
		if err := runInteractive(ctx, os.Stdin, os.Stdout, analyzer); err != nil {
			return err
		}
	}

	if csvCollector != nil {
		if err := csvCollector.Flush(); err != nil {
			return err
		}
		return csvFile.Close()
	}
	return nil
}

// resolveUnits returns units with a zero horizontal unit replaced by the
// pixel scale of the named GeoTIFF snapshot.
func resolveUnits(configUnits config.Units, snapshotSet *pathlength.SnapshotSet, name string) (pathlength.Units, error) {
	units := pathlength.Units{
		Horizontal: configUnits.Horizontal,
		Vertical:   configUnits.Vertical,
	}
	if units.Horizontal != 0 {
		return units, nil
	}
	metadata, err := snapshotSet.Metadata(name)
	if err != nil {
		return pathlength.Units{}, err
	}
	return unitsFromPixelScale(units, name, metadata)
}

func unitsFromPixelScale(units pathlength.Units, name string, metadata *pathlength.GeoTIFFMetadata) (pathlength.Units, error) {
	if metadata == nil || metadata.ScaleX <= 0 {
		return pathlength.Units{}, fmt.Errorf("%s: no pixel scale for horizontal unit", name)
	}
	if metadata.ScaleY != 0 && metadata.ScaleY != metadata.ScaleX {
		slog.Warn("non-square pixels", "name", name, "scaleX", metadata.ScaleX, "scaleY", metadata.ScaleY)
	}
	slog.Info("horizontal unit from pixel scale", "name", name, "horizontal", metadata.ScaleX, "nodata", metadata.NoData)
	units.Horizontal = metadata.ScaleX
	return units, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server", "err", err)
	}
}

func openBatch(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// A query is a path between two positions.
type query struct {
	Start pathlength.Position
	End   pathlength.Position
}

// parseQuery parses four coordinates in x0 y0 x1 y1 order.
func parseQuery(fields []string) (query, error) {
	if len(fields) != 4 {
		return query{}, fmt.Errorf("expected 4 coordinates, got %d", len(fields))
	}
	var values [4]float64
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return query{}, err
		}
		values[i] = value
	}
	return query{
		Start: pathlength.Position{X: values[0], Y: values[1]},
		End:   pathlength.Position{X: values[2], Y: values[3]},
	}, nil
}

func printDelta(w io.Writer, analyzer *pathlength.Analyzer, q query) error {
	delta, err := analyzer.Delta(q.Start, q.End)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "before: %.3f\nafter: %.3f\ndelta: %.3f\n", delta.Before, delta.After, delta.Change())
	return err
}

// runInteractive reads queries from r until EOF, a line starting with -1, or
// ctx is done. Invalid queries are reported and skipped.
func runInteractive(ctx context.Context, r io.Reader, w io.Writer, analyzer *pathlength.Analyzer) error {
	fmt.Fprintf(w, "Enter x0 y0 x1 y1 between 0,0 and %d,%d. -1 to exit.\n", analyzer.Width()-1, analyzer.Height()-1)

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		fmt.Fprint(w, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(w)
				if err := <-errc; err != nil && ctx.Err() == nil {
					return err
				}
				return nil
			}
			line = l
		}

		fields := strings.Fields(line)
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "-1":
			return nil
		}
		q, err := parseQuery(fields)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if err := printDelta(w, analyzer, q); err != nil {
			fmt.Fprintln(w, err)
		}
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error("pathlength", "err", err)
		os.Exit(1)
	}
}
