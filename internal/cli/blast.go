package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BlastOptions holds flags for the blast command.
type BlastOptions struct {
	*RootOptions
	Simulate bool
}

// NewBlastCommand creates the blast command.
func NewBlastCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BlastOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "blast SERVICE_ID",
		Short: "Calculate the blast radius of a service failure",
		Long: `Calculate which entities are affected, directly or transitively, when a
service fails, with threshold-driven recommendations.

With --simulate, classify the failure's severity instead of producing the
full report.

Examples:
  meshsim blast svc-payments --ecosystem ./eco.yaml
  meshsim blast svc-payments --ecosystem ./eco.yaml --simulate
  meshsim blast svc-payments --ecosystem ./eco.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlast(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Simulate, "simulate", false, "classify failure severity instead of the full report")

	return cmd
}

func runBlast(opts *BlastOptions, cmd *cobra.Command, serviceID string) error {
	env, err := loadEnvironment(opts.RootOptions)
	if err != nil {
		return err
	}

	if opts.Simulate {
		sim := env.Calculator.SimulateFailure(serviceID)
		if opts.Format == "json" {
			return outputJSON(cmd, sim)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Failure Simulation: %s (%s)\n", sim.ServiceName, sim.ServiceID)
		fmt.Fprintf(w, "  Severity:     %s\n", sim.Severity)
		fmt.Fprintf(w, "  Total Impact: %d\n", sim.TotalImpact)
		return nil
	}

	report := env.Calculator.BlastRadius(serviceID)
	if opts.Format == "json" {
		return outputJSON(cmd, report)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Blast Radius: %s (%s)\n", report.ServiceName, report.ServiceID)
	fmt.Fprintf(w, "Platform: %s\n", report.Platform)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Affected ===")
	if len(report.Affected) == 0 {
		fmt.Fprintln(w, "  (nothing depends on this service)")
	} else {
		for _, a := range report.Affected {
			fmt.Fprintf(w, "  [hop %d] %s (%s, severity=%s)\n", a.HopsAway, a.Name, a.ID, a.Severity)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Blast Radius: %d\n", report.BlastRadius)
	fmt.Fprintf(w, "  Max Depth:    %d\n", report.MaxDepth)
	fmt.Fprintf(w, "  Upstream:     %d\n", report.Upstream)
	fmt.Fprintf(w, "  Downstream:   %d\n", report.Downstream)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Recommendations ===")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(w, "  - %s\n", rec)
	}

	return nil
}
