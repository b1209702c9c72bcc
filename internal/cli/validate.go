package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult is the JSON payload of a successful validate.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Scenario string `json:"scenario"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario without running it",
		Long: `Check a scenario file against the scenario schema and the structural
rules that the schema cannot express, without building or running it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	s, err := loadScenario(f, path)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return f.Success(ValidationResult{Valid: true, Scenario: s.Name})
	}
	return f.Success(fmt.Sprintf("✓ Scenario %s valid", s.Name))
}
