package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/rxcore/internal/scenario"
	"github.com/roach88/rxcore/internal/store"
)

// DBOptions holds the database flag shared by the storage commands.
type DBOptions struct {
	*RootOptions
	Database string
}

func addDBFlag(cmd *cobra.Command, opts *DBOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
}

// openStore opens the database and reports failures through f.
func openStore(f *OutputFormatter, opts *DBOptions) (*store.Store, error) {
	slog.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		_ = f.Error(ErrCodeStore, "failed to open database", err.Error())
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <scenario.yaml>",
		Short: "Run a scenario and store its trace",
		Long: `Run a scenario and persist its trace as a new run in a SQLite database.
The database is created if it does not exist.

Example:
  rxtrace record --db ./runs.db ./testdata/scenarios/squares.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args[0], cmd)
		},
	}
	addDBFlag(cmd, opts)

	return cmd
}

func runRecord(opts *DBOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	s, err := loadScenario(f, path)
	if err != nil {
		return err
	}

	tr, err := scenario.Run(s)
	if err != nil {
		return reportScenarioError(f, err)
	}

	st, err := openStore(f, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.SaveRun(cmd.Context(), tr)
	if err != nil {
		_ = f.Error(ErrCodeStore, "failed to save run", err.Error())
		return WrapExitError(ExitCommandError, "failed to save run", err)
	}
	slog.Info("run recorded", "id", run.ID, "scenario", run.Scenario, "entries", run.EntryCount)

	if opts.Format == "json" {
		return f.Success(run)
	}
	return f.Success(fmt.Sprintf("Recorded run %s (%s, %d entries)", run.ID, run.Scenario, run.EntryCount))
}
