package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"toposort/graph"
)

type loggerKey struct{}

func withLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// printOrder drains g and writes one element per line, or one round of
// ready elements per line when batches is set. Elements within a round are
// sorted so the output is stable.
func printOrder(ctx context.Context, out io.Writer, g graph.Graph[string], batches bool) error {
	logger := loggerFrom(ctx)
	ts := g.Sorter()
	w := bufio.NewWriter(out)

	if batches {
		for round := 0; !ts.IsEmpty(); round++ {
			batch := ts.PopAll()
			if len(batch) == 0 {
				break
			}
			slices.Sort(batch)
			logger.Debug("Extracted round", "round", round, "elements", len(batch), "remaining", ts.Len())
			fmt.Fprintln(w, strings.Join(batch, " "))
		}
	} else {
		for elt := range ts.All() {
			fmt.Fprintln(w, elt)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if err := ts.Err(); err != nil {
		logger.Warn("Dependency cycle left elements unsorted", "remaining", ts.Len())
		return fmt.Errorf("%d elements left unsorted: %w", ts.Len(), err)
	}
	logger.Debug("Graph drained", "elements", len(g.Nodes))
	return nil
}
