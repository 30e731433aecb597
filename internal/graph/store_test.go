package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func svc(id string) EntityRef {
	return EntityRef{ID: id, Type: "service"}
}

// chain adds edges n0->n1->...->n<count> and returns the node ids.
func chain(s *Store, count int) []string {
	ids := make([]string, count+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
	}
	for i := 0; i < count; i++ {
		s.AddEdge(svc(ids[i]), svc(ids[i+1]), DependencyRuntime, SeverityMedium)
	}
	return ids
}

func TestStore_AddEdge_Defaults(t *testing.T) {
	s := New()

	edge := s.AddEdge(svc("a"), svc("b"), "", "")

	assert.NotEmpty(t, edge.ID)
	assert.Equal(t, DependencyRuntime, edge.Type)
	assert.Equal(t, SeverityMedium, edge.Severity)
	assert.False(t, edge.IsCircular)
	assert.False(t, edge.CreatedAt.IsZero())
}

func TestStore_AddEdge_FlagsOnlyClosingEdge(t *testing.T) {
	s := New()

	first := s.AddEdge(svc("a"), svc("b"), DependencyRuntime, SeverityHigh)
	second := s.AddEdge(svc("b"), svc("a"), DependencyRuntime, SeverityHigh)

	assert.False(t, first.IsCircular, "first edge must not be flagged")
	assert.True(t, second.IsCircular, "edge closing the loop must be flagged")

	// The stored copy of the first edge is never re-evaluated.
	stored := s.DependenciesOf("a")
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsCircular)
}

func TestStore_AddEdge_SelfReferenceIsCircular(t *testing.T) {
	s := New()

	edge := s.AddEdge(svc("a"), svc("a"), DependencyRuntime, SeverityLow)

	assert.True(t, edge.IsCircular)
}

func TestStore_AddEdge_LongCycleFlagged(t *testing.T) {
	s := New()
	ids := chain(s, 21)

	closing := s.AddEdge(svc(ids[len(ids)-1]), svc(ids[0]), DependencyRuntime, SeverityMedium)

	assert.True(t, closing.IsCircular)
}

func TestStore_AddEdge_CycleBeyondDepthBoundNotFlagged(t *testing.T) {
	s := New()
	ids := chain(s, 25)

	// The reachability check is bounded; a 25-hop return path is invisible.
	closing := s.AddEdge(svc(ids[len(ids)-1]), svc(ids[0]), DependencyRuntime, SeverityMedium)

	assert.False(t, closing.IsCircular)
}

func TestStore_DependenciesOf_InsertionOrder(t *testing.T) {
	s := New()
	s.AddEdge(svc("a"), svc("b"), DependencyRuntime, SeverityLow)
	s.AddEdge(svc("a"), svc("c"), DependencyData, SeverityHigh)
	s.AddEdge(svc("a"), svc("d"), DependencyBuild, SeverityMedium)

	deps := s.DependenciesOf("a")

	require.Len(t, deps, 3)
	assert.Equal(t, "b", deps[0].TargetID)
	assert.Equal(t, "c", deps[1].TargetID)
	assert.Equal(t, "d", deps[2].TargetID)
}

func TestStore_DependentsOf_InsertionOrder(t *testing.T) {
	s := New()
	s.AddEdge(svc("x"), svc("a"), DependencyRuntime, SeverityLow)
	s.AddEdge(svc("y"), svc("a"), DependencyRuntime, SeverityLow)

	dependents := s.DependentsOf("a")

	require.Len(t, dependents, 2)
	assert.Equal(t, "x", dependents[0].SourceID)
	assert.Equal(t, "y", dependents[1].SourceID)
}

func TestStore_UnknownIDsReturnEmpty(t *testing.T) {
	s := New()
	s.AddEdge(svc("a"), svc("b"), DependencyRuntime, SeverityLow)

	assert.Empty(t, s.DependenciesOf("ghost"))
	assert.Empty(t, s.DependentsOf("ghost"))
	assert.Empty(t, s.TransitiveDependencies("ghost", 0))
}

func TestStore_EdgeCount(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.EdgeCount())

	s.AddEdge(svc("a"), svc("b"), DependencyRuntime, SeverityLow)
	s.AddEdge(svc("b"), svc("c"), DependencyRuntime, SeverityLow)

	assert.Equal(t, 2, s.EdgeCount())
}
