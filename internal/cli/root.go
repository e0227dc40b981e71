package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is resolved before a subcommand runs: defaults, then the
	// config file, then explicitly set flags.
	Config Config

	// Logger writes structured diagnostics to the command's error stream.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the parfold CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

// newRootCommand creates the root command, and resolves the global flags
// into opts before a subcommand runs.
func newRootCommand(opts *RootOptions) *cobra.Command {
	opts.Config = DefaultConfig()
	var flagConfig Config

	cmd := &cobra.Command{
		Use:   "parfold",
		Short: "Parallel folds over partitioned input",
		Long: `Fold numbers and words read from files, standard input, or SQLite
queries in parallel, using one of several reduction engines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg := DefaultConfig()
			if opts.ConfigPath != "" {
				var err error
				if cfg, err = LoadConfig(opts.ConfigPath); err != nil {
					return WrapExitError(ExitCommandError, "invalid config", err)
				}
			}
			flags := cmd.Flags()
			if flags.Changed("chunk-size") {
				cfg.ChunkSize = flagConfig.ChunkSize
			}
			if flags.Changed("threshold") {
				cfg.Threshold = flagConfig.Threshold
			}
			if flags.Changed("workers") {
				cfg.Workers = flagConfig.Workers
			}
			if flags.Changed("engine") {
				cfg.Engine = flagConfig.Engine
			}
			if err := cfg.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid config", err)
			}
			opts.Config = cfg

			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			opts.Logger = slog.New(handler).With("run_id", uuid.NewString())
			opts.Logger.Debug("resolved config",
				"engine", cfg.Engine,
				"chunk_size", cfg.ChunkSize,
				"threshold", cfg.Threshold,
				"workers", cfg.Workers)
			return nil
		},
	}

	defaults := DefaultConfig()

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML config file")
	pf.IntVar(&flagConfig.ChunkSize, "chunk-size", defaults.ChunkSize, "elements per chunk (0 derives it from --threshold)")
	pf.IntVar(&flagConfig.Threshold, "threshold", defaults.Threshold, "chunks per worker when deriving the chunk size")
	pf.IntVar(&flagConfig.Workers, "workers", defaults.Workers, "workers of the queue engine (0 uses GOMAXPROCS)")
	pf.StringVar(&flagConfig.Engine, "engine", defaults.Engine, fmt.Sprintf("reduction engine %v", ValidEngines))

	// Add subcommands
	cmd.AddCommand(NewSumCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewWordCountCommand(opts))
	cmd.AddCommand(NewDeltasCommand(opts))

	return cmd
}

// Execute runs the CLI with args, and reports a failure on stderr, or as a
// JSON error response on stdout with --format json. It returns the exit
// code of the run.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	formatter := &OutputFormatter{Format: "text", Writer: stderr}
	if opts.Format == "json" {
		formatter = &OutputFormatter{Format: "json", Writer: stdout}
	}
	_ = formatter.Failure(err)
	return GetExitCode(err)
}

// formatter returns the output formatter for a command.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}
}

// logger returns opts.Logger, or a logger that discards everything when a
// command runs without the root command's pre-run hook.
func (opts *RootOptions) logger() *slog.Logger {
	if opts.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return opts.Logger
}
