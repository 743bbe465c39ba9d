package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/twpayne/go-pathlength"
)

// readQueries reads one query per line, skipping blank lines and lines
// starting with #.
func readQueries(r io.Reader) ([]query, error) {
	var queries []query
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		q, err := parseQuery(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		queries = append(queries, q)
	}
	return queries, scanner.Err()
}

// runBatch evaluates all queries in r concurrently and writes one
// tab-separated result line per query, in input order.
func runBatch(ctx context.Context, w io.Writer, analyzer *pathlength.Analyzer, r io.Reader, concurrency int) error {
	queries, err := readQueries(r)
	if err != nil {
		return err
	}

	deltas := make([]pathlength.Delta, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			delta, err := analyzer.Delta(q.Start, q.End)
			if err != nil {
				return fmt.Errorf("%g %g %g %g: %w", q.Start.X, q.Start.Y, q.End.X, q.End.Y, err)
			}
			deltas[i] = delta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, q := range queries {
		delta := deltas[i]
		if _, err := fmt.Fprintf(w, "%g\t%g\t%g\t%g\t%.3f\t%.3f\t%.3f\n",
			q.Start.X, q.Start.Y, q.End.X, q.End.Y,
			delta.Before, delta.After, delta.Change()); err != nil {
			return err
		}
	}
	return nil
}
