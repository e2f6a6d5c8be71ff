package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"toposort/graph"
)

type options struct {
	format  string
	batches bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "tsort [file]",
		Short: "Print elements in dependency order",
		Long: `tsort reads a dependency graph and prints its elements so that every
element comes after the elements it depends on.

Input formats:
  pairs - whitespace separated pairs "before after", as read by tsort(1)
  yaml  - a mapping from each element to the list of elements it depends on

With no file, or when file is -, the graph is read from standard input.
If the graph contains a cycle, the elements that could be ordered are printed
and tsort exits with an error.`,
		Args:         cobra.MaximumNArgs(1),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pairs", "Input format (pairs, yaml)")
	cmd.Flags().BoolVarP(&opts.batches, "batches", "b", false, "Print each round of ready elements on one line")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.SetVersionTemplate(`{{printf "tsort version %s\n" .Version}}`)

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tsort",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tsort version %s\n", version)
		},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runSort(cmd *cobra.Command, args []string, opts *options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	ctx := withLogger(cmd.Context(), logger)

	format, err := graph.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	g, err := graph.Parse(in, format)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	logger.Debug("Parsed graph", "input", name, "format", format, "nodes", len(g.Nodes), "edges", len(g.Edges))

	return printOrder(ctx, cmd.OutOrStdout(), g, opts.batches)
}
