// Package impact layers failure analysis on top of the dependency graph:
// blast-radius reports enriched with directory context, and failure
// simulations with a fixed severity ladder.
package impact

import (
	"log/slog"

	"github.com/meshsim/meshsim/internal/graph"
)

// Directory resolves the platform owning a service. Implemented by the
// entity catalog; optional.
type Directory interface {
	PlatformOf(serviceID string) (string, bool)
}

// Calculator produces impact analyses from graph queries.
type Calculator struct {
	graph  *graph.Store
	dir    Directory
	logger *slog.Logger
}

// CalculatorOption configures a Calculator.
type CalculatorOption func(*Calculator)

// WithDirectory attaches the entity directory used for platform enrichment.
func WithDirectory(dir Directory) CalculatorOption {
	return func(c *Calculator) { c.dir = dir }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) CalculatorOption {
	return func(c *Calculator) { c.logger = logger }
}

// NewCalculator creates a Calculator over the given graph.
func NewCalculator(g *graph.Store, opts ...CalculatorOption) *Calculator {
	c := &Calculator{
		graph:  g,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report is a blast-radius analysis enriched with directory context and
// threshold-driven recommendations.
type Report struct {
	ServiceID       string                 `json:"service_id"`
	ServiceName     string                 `json:"service_name"`
	Platform        string                 `json:"platform"`
	BlastRadius     int                    `json:"blast_radius"`
	MaxDepth        int                    `json:"max_depth"`
	Upstream        int                    `json:"upstream_dependents"`
	Downstream      int                    `json:"downstream_dependencies"`
	Affected        []graph.AffectedEntity `json:"affected"`
	Recommendations []string               `json:"recommendations"`
}

// BlastRadius runs the reverse-BFS blast radius for a service and enriches
// it with the owning platform, upstream/downstream counts, and
// recommendations. Unknown services produce an empty report, not an error.
func (c *Calculator) BlastRadius(serviceID string) Report {
	blast := c.graph.BlastRadius(serviceID)
	upstream := len(c.graph.DependentsOf(serviceID))
	downstream := len(c.graph.DependenciesOf(serviceID))

	platform := "unknown"
	if c.dir != nil {
		if name, ok := c.dir.PlatformOf(serviceID); ok {
			platform = name
		}
	}

	report := Report{
		ServiceID:       serviceID,
		ServiceName:     blast.Root.Name,
		Platform:        platform,
		BlastRadius:     blast.BlastRadius,
		MaxDepth:        blast.MaxDepth,
		Upstream:        upstream,
		Downstream:      downstream,
		Affected:        blast.Affected,
		Recommendations: recommendations(blast.BlastRadius, upstream, downstream),
	}

	c.logger.Debug("blast radius calculated",
		"service_id", serviceID,
		"blast_radius", report.BlastRadius,
		"max_depth", report.MaxDepth)

	return report
}

// Simulation is the outcome of a simulated service failure.
type Simulation struct {
	ServiceID   string                 `json:"service_id"`
	ServiceName string                 `json:"service_name"`
	TotalImpact int                    `json:"total_impact"`
	Severity    graph.Severity         `json:"severity"`
	Affected    []graph.AffectedEntity `json:"affected"`
}

// SimulateFailure classifies the severity of a service failing outright.
// Total impact is the number of entities inside the blast radius.
func (c *Calculator) SimulateFailure(serviceID string) Simulation {
	blast := c.graph.BlastRadius(serviceID)
	return Simulation{
		ServiceID:   serviceID,
		ServiceName: blast.Root.Name,
		TotalImpact: blast.BlastRadius,
		Severity:    classifySeverity(blast.BlastRadius),
		Affected:    blast.Affected,
	}
}

// classifySeverity maps a total-impact count to a severity. The thresholds
// are fixed literals; downstream tooling keys off them.
func classifySeverity(total int) graph.Severity {
	switch {
	case total >= 10:
		return graph.SeverityCritical
	case total >= 5:
		return graph.SeverityHigh
	case total >= 2:
		return graph.SeverityMedium
	default:
		return graph.SeverityLow
	}
}

// recommendations applies the fixed advisory thresholds.
func recommendations(radius, upstream, downstream int) []string {
	recs := make([]string, 0, 4)

	if radius > 10 {
		recs = append(recs, "CRITICAL: High blast radius. Consider adding circuit breakers.")
	}
	if radius > 5 {
		recs = append(recs, "Add fallback/degraded-mode capabilities for downstream consumers.")
	}
	if upstream > 5 {
		recs = append(recs, "Many upstream dependents. Consider splitting into smaller services.")
	}
	if downstream > 3 {
		recs = append(recs, "Multiple critical dependencies. Implement bulkhead patterns.")
	}

	if len(recs) == 0 {
		recs = append(recs, "No immediate concerns. Continue monitoring.")
	}
	return recs
}
