package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCyclesCommand creates the cycles command.
func NewCyclesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "List circular dependencies",
		Long: `List every dependency edge that closed a cycle when it was inserted.

Only the closing edge of each cycle is flagged; the edges it loops through
stay unflagged.

Examples:
  meshsim cycles --ecosystem ./eco.yaml
  meshsim cycles --ecosystem ./eco.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycles(rootOpts, cmd)
		},
	}

	return cmd
}

func runCycles(opts *RootOptions, cmd *cobra.Command) error {
	env, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	circular := env.Graph.CircularDependencies()
	if opts.Format == "json" {
		return outputJSON(cmd, circular)
	}

	w := cmd.OutOrStdout()
	if len(circular) == 0 {
		fmt.Fprintln(w, "No circular dependencies.")
		return nil
	}

	fmt.Fprintf(w, "Circular dependencies: %d\n", len(circular))
	for _, edge := range circular {
		fmt.Fprintf(w, "  %s -> %s (%s, severity=%s)\n",
			edge.SourceID, edge.TargetID, edge.Type, edge.Severity)
	}

	return nil
}
