package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"selector-inspector/internal/inference"
	"selector-inspector/internal/report"
	"selector-inspector/internal/usecase"
)

type inferOptions struct {
	format   string
	tags     []string
	all      bool
	maxDepth int
	verbose  bool
}

func newInferCmd() *cobra.Command {
	var opts inferOptions

	cmd := &cobra.Command{
		Use:   "infer <file|->",
		Short: "Infer selectors for the elements of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfer(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", report.FormatText, "output format: text, json or yaml")
	flags.StringSliceVarP(&opts.tags, "tag", "t", nil, "only elements with these tags")
	flags.BoolVarP(&opts.all, "all", "a", false, "include every visible element, not only interactive ones")
	flags.IntVar(&opts.maxDepth, "max-depth", inference.DefaultMaxPathDepth, "structural path depth bound")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	return cmd
}

func runInfer(cmd *cobra.Command, source string, opts inferOptions) error {
	switch opts.format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.maxDepth <= 0 {
		return fmt.Errorf("max-depth must be positive, got %d", opts.maxDepth)
	}

	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()
		logger = l
	}

	var in io.Reader = cmd.InOrStdin()
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	filter := report.Interactive
	switch {
	case len(opts.tags) > 0:
		filter = report.Tags(opts.tags...)
	case opts.all:
		filter = report.Visible
	}

	svc := usecase.NewInspectorService(usecase.Params{
		Logger: logger,
		Engine: inference.NewEngine(inference.WithMaxPathDepth(opts.maxDepth)),
	})

	snap, err := svc.Infer(cmd.Context(), in, source, filter)
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), snap, opts.format)
}
