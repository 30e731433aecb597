package graph

// DefaultTransitiveDepth bounds forward BFS walks when the caller does not
// supply a depth.
const DefaultTransitiveDepth = 10

// TransitiveDependencies walks forward from sourceID and returns every
// dependency edge discovered, tagged with the hop distance of its discovery.
// A maxDepth of zero or less falls back to DefaultTransitiveDepth.
//
// Nodes are marked visited at dequeue time. A node enqueued from several
// not-yet-processed predecessors is expanded only once, but edges pointing at
// it are reported once per discovering path — duplicates are intentional and
// preserved.
func (s *Store) TransitiveDependencies(sourceID string, maxDepth int) []TransitiveDependency {
	if maxDepth <= 0 {
		maxDepth = DefaultTransitiveDepth
	}

	visited := make(map[string]bool)
	q := newVisitQueue(sourceID, 0)
	result := make([]TransitiveDependency, 0)

	for q.len() > 0 {
		v, _ := q.pop()
		if visited[v.id] || v.depth > maxDepth {
			continue
		}
		visited[v.id] = true

		for _, edge := range s.DependenciesOf(v.id) {
			result = append(result, TransitiveDependency{
				DependencyEdge: edge,
				HopsFromSource: v.depth + 1,
			})
			if !visited[edge.TargetID] {
				q.push(visit{id: edge.TargetID, depth: v.depth + 1})
			}
		}
	}
	return result
}

// BlastRadius walks the reverse index from id and collects everything that
// directly or transitively depends on it.
//
// Each affected entity is recorded exactly once, at the first (shortest) hop
// distance it is discovered; breadth-first order guarantees that distance is
// minimal. An id with no dependents yields a zero radius, an empty affected
// list, and max depth 0.
func (s *Store) BlastRadius(id string) BlastRadiusResult {
	affected := make([]AffectedEntity, 0)
	visited := make(map[string]bool)
	recorded := map[string]bool{id: true}
	q := newVisitQueue(id, 0)
	maxDepth := 0

	for q.len() > 0 {
		v, _ := q.pop()
		if visited[v.id] {
			continue
		}
		visited[v.id] = true

		for _, edge := range s.DependentsOf(v.id) {
			src := edge.SourceID
			if recorded[src] {
				continue
			}
			recorded[src] = true
			hops := v.depth + 1
			affected = append(affected, AffectedEntity{
				ID:       src,
				Type:     edge.SourceType,
				Name:     s.nameOf(edge.SourceType, src),
				Severity: edge.Severity,
				HopsAway: hops,
			})
			if hops > maxDepth {
				maxDepth = hops
			}
			q.push(visit{id: src, depth: hops})
		}
	}

	rootType := s.entityTypeOf(id)
	return BlastRadiusResult{
		Root: RootEntity{
			ID:   id,
			Type: rootType,
			Name: s.nameOf(rootType, id),
		},
		BlastRadius: len(affected),
		Affected:    affected,
		MaxDepth:    maxDepth,
	}
}

// CircularDependencies returns every edge flagged circular at insertion time.
// Flat scan over the edge slice; no traversal.
func (s *Store) CircularDependencies() []DependencyEdge {
	circular := make([]DependencyEdge, 0)
	for _, edge := range s.edges {
		if edge.IsCircular {
			circular = append(circular, edge)
		}
	}
	return circular
}

// Overview summarizes the graph for status output.
type Overview struct {
	Edges    int `json:"edges"`
	Entities int `json:"entities"`
	Circular int `json:"circular"`
}

// Overview counts edges, distinct entities, and circular flags.
func (s *Store) Overview() Overview {
	seen := make(map[string]bool, len(s.bySource)+len(s.byTarget))
	for id := range s.bySource {
		seen[id] = true
	}
	for id := range s.byTarget {
		seen[id] = true
	}

	circular := 0
	for _, edge := range s.edges {
		if edge.IsCircular {
			circular++
		}
	}

	return Overview{
		Edges:    len(s.edges),
		Entities: len(seen),
		Circular: circular,
	}
}

// entityTypeOf infers an entity's type from the first edge that touches it.
// Ids the graph has never seen default to "service".
func (s *Store) entityTypeOf(id string) string {
	if positions := s.byTarget[id]; len(positions) > 0 {
		return s.edges[positions[0]].TargetType
	}
	if positions := s.bySource[id]; len(positions) > 0 {
		return s.edges[positions[0]].SourceType
	}
	return "service"
}
