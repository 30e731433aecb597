package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meshsim/meshsim/internal/resolve"
)

// DepsOptions holds flags for the deps command.
type DepsOptions struct {
	*RootOptions
	Mode string // "direct" | "transitive" | "blast-radius"
}

// NewDepsCommand creates the deps command.
func NewDepsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DepsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deps SERVICE_ID",
		Short: "Resolve the dependencies of a service",
		Long: `Resolve what a service depends on, through the caching resolution layer.

Modes:
  direct       only the service's own edges
  transitive   forward BFS, depth-bounded, hop-tagged
  blast-radius reverse BFS of everything depending on the service

Examples:
  meshsim deps svc-orders --ecosystem ./eco.yaml
  meshsim deps svc-orders --ecosystem ./eco.yaml --mode transitive --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", "direct", "resolution mode (direct|transitive|blast-radius)")

	return cmd
}

func runDeps(opts *DepsOptions, cmd *cobra.Command, serviceID string) error {
	env, err := loadEnvironment(opts.RootOptions)
	if err != nil {
		return err
	}

	res := env.Resolver.Resolve(serviceID, resolve.Mode(opts.Mode))
	if opts.Format == "json" {
		return outputJSON(cmd, res)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Dependencies: %s (mode=%s)\n", serviceID, res.Mode)

	switch {
	case res.Blast != nil:
		for _, a := range res.Blast.Affected {
			fmt.Fprintf(w, "  [hop %d] %s (%s)\n", a.HopsAway, a.Name, a.ID)
		}
		fmt.Fprintf(w, "  blast radius: %d\n", res.Blast.BlastRadius)
	case len(res.Transitive) > 0:
		for _, dep := range res.Transitive {
			fmt.Fprintf(w, "  [hop %d] %s -> %s (%s, severity=%s)\n",
				dep.HopsFromSource, dep.SourceID, dep.TargetID, dep.Type, dep.Severity)
		}
	case len(res.Direct) > 0:
		for _, edge := range res.Direct {
			circular := ""
			if edge.IsCircular {
				circular = " [circular]"
			}
			fmt.Fprintf(w, "  %s -> %s (%s, severity=%s)%s\n",
				edge.SourceID, edge.TargetID, edge.Type, edge.Severity, circular)
		}
	default:
		fmt.Fprintln(w, "  (no dependencies)")
	}

	return nil
}
