package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshsim/meshsim/internal/graph"
)

// OverviewResult summarizes a loaded ecosystem.
type OverviewResult struct {
	Entities map[string]int `json:"entities"`
	Graph    graph.Overview `json:"graph"`
}

// NewOverviewCommand creates the overview command.
func NewOverviewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Summarize the loaded ecosystem",
		Long: `Print per-type entity counts and dependency graph statistics for the
loaded ecosystem.

Examples:
  meshsim overview --ecosystem ./eco.yaml
  meshsim overview --ecosystem ./eco.yaml --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(rootOpts, cmd)
		},
	}

	return cmd
}

func runOverview(opts *RootOptions, cmd *cobra.Command) error {
	env, err := loadEnvironment(opts)
	if err != nil {
		return err
	}

	result := OverviewResult{
		Entities: env.Catalog.Overview(),
		Graph:    env.Graph.Overview(),
	}
	if opts.Format == "json" {
		return outputJSON(cmd, result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== Entities ===")
	fmt.Fprintf(w, "  Services:   %d\n", result.Entities["service"])
	fmt.Fprintf(w, "  Platforms:  %d\n", result.Entities["platform"])
	fmt.Fprintf(w, "  Flows:      %d\n", result.Entities["flow"])
	fmt.Fprintf(w, "  Flow Steps: %d\n", result.Entities["flow_step"])
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Graph ===")
	fmt.Fprintf(w, "  Edges:    %d\n", result.Graph.Edges)
	fmt.Fprintf(w, "  Entities: %d\n", result.Graph.Entities)
	fmt.Fprintf(w, "  Circular: %d\n", result.Graph.Circular)

	return nil
}
