package graph

import "time"

// Severity grades how badly a dependency failure hurts the source entity.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DependencyType categorizes why the source needs the target.
type DependencyType string

const (
	DependencyRuntime        DependencyType = "runtime"
	DependencyBuild          DependencyType = "build"
	DependencyData           DependencyType = "data"
	DependencyInfrastructure DependencyType = "infrastructure"
)

// EntityRef identifies an entity by opaque id and type. The graph never
// validates that an id exists anywhere outside the edges it was given.
type EntityRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// DependencyEdge is one directed edge: source depends on target.
//
// Edges are immutable once created. IsCircular is computed exactly once, at
// insertion time, and never re-evaluated when later edges are added — even if
// a later edge completes a cycle that makes this one circular in the
// graph-theoretic sense.
type DependencyEdge struct {
	ID         string         `json:"id"`
	SourceID   string         `json:"source_id"`
	SourceType string         `json:"source_type"`
	TargetID   string         `json:"target_id"`
	TargetType string         `json:"target_type"`
	Type       DependencyType `json:"dependency_type"`
	Severity   Severity       `json:"severity"`
	IsCircular bool           `json:"is_circular"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Source returns the edge's source as an EntityRef.
func (e DependencyEdge) Source() EntityRef {
	return EntityRef{ID: e.SourceID, Type: e.SourceType}
}

// Target returns the edge's target as an EntityRef.
func (e DependencyEdge) Target() EntityRef {
	return EntityRef{ID: e.TargetID, Type: e.TargetType}
}

// TransitiveDependency is a dependency edge discovered during a forward BFS,
// tagged with the hop distance at which it was discovered. The same target
// may appear more than once when reachable via several paths.
type TransitiveDependency struct {
	DependencyEdge
	HopsFromSource int `json:"hops_from_source"`
}

// AffectedEntity is one entity inside a blast radius: an entity that directly
// or transitively depends on the failed one.
type AffectedEntity struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	HopsAway int      `json:"hops_away"`
}

// RootEntity names the entity whose failure a blast radius describes.
type RootEntity struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// BlastRadiusResult is the full answer to "who breaks if this entity fails".
//
// Affected contains each reachable dependent exactly once, at its shortest
// discovered hop distance. MaxDepth is the largest HopsAway recorded, or 0
// when Affected is empty.
type BlastRadiusResult struct {
	Root        RootEntity       `json:"root"`
	BlastRadius int              `json:"blast_radius"`
	Affected    []AffectedEntity `json:"affected"`
	MaxDepth    int              `json:"max_depth"`
}
