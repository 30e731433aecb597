package testutil

import (
	"fmt"

	"github.com/meshsim/meshsim/internal/graph"
)

// Svc wraps an id as a service entity reference.
func Svc(id string) graph.EntityRef {
	return graph.EntityRef{ID: id, Type: "service"}
}

// Chain inserts the edges n0 -> n1 -> ... -> n<count> and returns the store.
// Every edge is runtime/low.
func Chain(s *graph.Store, count int) *graph.Store {
	for i := 0; i < count; i++ {
		s.AddEdge(Svc(fmt.Sprintf("n%d", i)), Svc(fmt.Sprintf("n%d", i+1)),
			graph.DependencyRuntime, graph.SeverityLow)
	}
	return s
}

// FanIn inserts count edges up-0..up-<count-1> all targeting target.
func FanIn(s *graph.Store, target string, count int) *graph.Store {
	for i := 0; i < count; i++ {
		s.AddEdge(Svc(fmt.Sprintf("up-%d", i)), Svc(target),
			graph.DependencyRuntime, graph.SeverityMedium)
	}
	return s
}
