package graph

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// cycleCheckDepth bounds the reachability BFS run at edge insertion. Chains
// deeper than this are treated as acyclic for flagging purposes.
const cycleCheckDepth = 20

// NameFunc resolves an entity's display name. Returning false means the
// entity is unknown to the directory; callers substitute "unknown".
type NameFunc func(entityType, id string) (string, bool)

// Option configures a Store.
type Option func(*Store)

// WithNameLookup injects the entity-directory lookup used to enrich
// blast-radius results with display names. Without it every name resolves
// to "unknown".
func WithNameLookup(fn NameFunc) Option {
	return func(s *Store) { s.names = fn }
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is the append-only edge store plus its adjacency indices.
//
// The Store exclusively owns every DependencyEdge it creates; query methods
// hand out copies, never references into the internal slice.
//
// NOT safe for concurrent mutation: AddEdge updates the edge slice and both
// indices non-atomically with respect to the cycle-check BFS. The design
// assumes a single writer; concurrent readers are fine between writes.
type Store struct {
	edges    []DependencyEdge
	bySource map[string][]int // source id -> positions in edges
	byTarget map[string][]int // target id -> positions in edges
	names    NameFunc
	logger   *slog.Logger
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		bySource: make(map[string][]int),
		byTarget: make(map[string][]int),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddEdge appends a directed dependency edge and updates both indices.
//
// Before the edge is stored, a bounded BFS checks whether the target can
// already reach the source through existing edges; if so, this new edge
// closes a cycle and is flagged circular. Pre-existing edges are never
// re-flagged.
//
// Empty dependency type and severity default to runtime and medium.
func (s *Store) AddEdge(source, target EntityRef, depType DependencyType, severity Severity) DependencyEdge {
	if depType == "" {
		depType = DependencyRuntime
	}
	if severity == "" {
		severity = SeverityMedium
	}

	edge := DependencyEdge{
		ID:         uuid.NewString(),
		SourceID:   source.ID,
		SourceType: source.Type,
		TargetID:   target.ID,
		TargetType: target.Type,
		Type:       depType,
		Severity:   severity,
		CreatedAt:  time.Now().UTC(),
	}

	// Only already-existing edges participate in the reachability check, so
	// the flag reflects whether THIS insertion closed a loop.
	if s.hasPath(target.ID, source.ID, cycleCheckDepth) {
		edge.IsCircular = true
		s.logger.Debug("circular dependency introduced",
			"source_id", source.ID, "target_id", target.ID)
	}

	pos := len(s.edges)
	s.edges = append(s.edges, edge)
	s.bySource[source.ID] = append(s.bySource[source.ID], pos)
	s.byTarget[target.ID] = append(s.byTarget[target.ID], pos)

	return edge
}

// DependenciesOf returns every edge whose source is id — what id depends on —
// in insertion order. Unknown ids yield an empty slice.
func (s *Store) DependenciesOf(id string) []DependencyEdge {
	return s.edgesAt(s.bySource[id])
}

// DependentsOf returns every edge whose target is id — who depends on id —
// in insertion order. Unknown ids yield an empty slice.
func (s *Store) DependentsOf(id string) []DependencyEdge {
	return s.edgesAt(s.byTarget[id])
}

// EdgeCount returns the total number of stored edges.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

func (s *Store) edgesAt(positions []int) []DependencyEdge {
	out := make([]DependencyEdge, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.edges[pos])
	}
	return out
}

// hasPath reports whether to is reachable from from by following dependency
// edges forward, visiting at most maxDepth hops. A node is trivially
// reachable from itself, so a self-referential edge is always circular.
func (s *Store) hasPath(from, to string, maxDepth int) bool {
	visited := make(map[string]bool)
	q := newVisitQueue(from, 0)

	for q.len() > 0 {
		v, _ := q.pop()
		if v.id == to {
			return true
		}
		if visited[v.id] || v.depth > maxDepth {
			continue
		}
		visited[v.id] = true
		for _, pos := range s.bySource[v.id] {
			q.push(visit{id: s.edges[pos].TargetID, depth: v.depth + 1})
		}
	}
	return false
}

// nameOf resolves a display name through the injected directory lookup.
func (s *Store) nameOf(entityType, id string) string {
	if s.names != nil {
		if name, ok := s.names(entityType, id); ok {
			return name
		}
	}
	return "unknown"
}
