package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sfclint/internal/config"
	"sfclint/internal/lsp"
	"sfclint/internal/trace"
	"sfclint/internal/version"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the sfclint language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Bool("stdio", true, "communicate over stdin/stdout (the only transport)")
	lspCmd.Flags().Int("trace-dump-ring", 0, "keep the last N trace events and dump them to stderr on exit")
	lspCmd.Flags().Bool("trace-dump-errors", false, "dump only error events from the ring")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	opts := lsp.ServerOptions{
		Version: version.Version,
		Tracer:  trace.FromContext(cmd.Context()),
	}

	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		cfg, err := config.Load(explicit)
		if err != nil {
			return err
		}
		opts.Config = &cfg
	}
	if opts.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	ringSize, err := cmd.Flags().GetInt("trace-dump-ring")
	if err != nil {
		return fmt.Errorf("failed to get trace-dump-ring flag: %w", err)
	}
	errorsOnly, err := cmd.Flags().GetBool("trace-dump-errors")
	if err != nil {
		return fmt.Errorf("failed to get trace-dump-errors flag: %w", err)
	}
	var ring *trace.RingTracer
	if ringSize > 0 {
		// stdout занят протоколом: события только в памяти, дамп в stderr
		ring = trace.NewRingTracer(ringSize, trace.LevelDetail)
		if opts.Tracer == nil || opts.Tracer == trace.Nop {
			opts.Tracer = ring
		} else {
			opts.Tracer = trace.NewMultiTracer(trace.LevelDetail, opts.Tracer, ring)
		}
		defer func() {
			dump := ring.Dump
			if errorsOnly {
				dump = ring.DumpErrors
			}
			if err := dump(os.Stderr, trace.FormatText); err != nil {
				fmt.Fprintf(os.Stderr, "lsp: trace dump failed: %v\n", err)
			}
		}()
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, opts)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return &exitError{code: 1}
		}
		return err
	}
	return nil
}
