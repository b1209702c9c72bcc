package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/rxcore/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DBOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Print the trace of a recorded run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}
	addDBFlag(cmd, opts)

	return cmd
}

func runShow(opts *DBOptions, id string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(f, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	run, tr, err := st.LoadRun(cmd.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = f.Error(ErrCodeRunNotFound, "run not found: "+id, nil)
		return WrapExitError(ExitFailure, ErrCodeRunNotFound, err)
	}
	if err != nil {
		_ = f.Error(ErrCodeStore, "failed to load run", err.Error())
		return WrapExitError(ExitCommandError, "failed to load run", err)
	}
	f.VerboseLog("Run %s recorded %s", run.ID, run.CreatedAt)

	return f.Trace(tr)
}
