package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/rxcore/internal/scenario"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print its trace",
		Long: `Validate a scenario, build its pipeline, subscribe every subscriber and
print the resulting trace.

Example:
  rxtrace run ./testdata/scenarios/squares.yaml
  rxtrace run --format json ./testdata/scenarios/multicast.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(rootOpts, args[0], cmd)
		},
	}
}

func runScenario(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	s, err := loadScenario(f, path)
	if err != nil {
		return err
	}

	tr, err := scenario.Run(s)
	if err != nil {
		return reportScenarioError(f, err)
	}
	f.VerboseLog("Recorded %d trace entries", len(tr.Entries))

	return f.Trace(tr)
}
