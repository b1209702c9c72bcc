package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/roach88/rxcore/diag"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose        bool
	Format         string // "json" | "text"
	TraceResources bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rxtrace CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	var metrics *prometheus.Registry

	cmd := &cobra.Command{
		Use:   "rxtrace",
		Short: "rxtrace - run and record reactive pipeline scenarios",
		Long: `Run reactive stream scenarios described in YAML and inspect their traces.

A scenario names a source, a list of operator stages and optionally a
subject that shares the source between several subscribers. Traces can be
printed or recorded to a SQLite database for later inspection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)
			if opts.TraceResources {
				metrics = prometheus.NewRegistry()
				if err := diag.Enable(diag.WithLogger(slog.Default()), diag.WithRegisterer(metrics)); err != nil {
					return WrapExitError(ExitCommandError, "failed to enable resource tracing", err)
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if !opts.TraceResources {
				return
			}
			slog.Info("resource tracing",
				"live_subscriptions", diag.LiveSubscriptions(),
				"total_subscriptions", diag.TotalSubscriptions(),
			)
			if err := writeMetrics(cmd.ErrOrStderr(), metrics); err != nil {
				slog.Warn("failed to write subscription metrics", "error", err)
			}
			diag.Disable()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.TraceResources, "trace-resources", false, "track subscription lifetimes and report leaks")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// setupLogging installs a text handler on w as the default logger, at
// Debug level when verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newFormatter builds the formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// writeMetrics writes every metric in reg to w in the Prometheus text
// exposition format.
func writeMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
