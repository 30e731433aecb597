package catalog

import (
	"sort"

	"github.com/meshsim/meshsim/internal/trace"
)

// The catalog doubles as the synthesizer's flow source: flows, their ordered
// steps, and service-directory entries all resolve out of the entity store.

// Flow returns the flow entity with the given id, projected to the trace
// engine's shape.
func (s *Store) Flow(id string) (trace.Flow, bool) {
	e, ok := s.Get(TypeFlow, id)
	if !ok {
		return trace.Flow{}, false
	}
	return flowOf(e), true
}

// Flows returns every stored flow in insertion order.
func (s *Store) Flows() []trace.Flow {
	entities := s.All(TypeFlow)
	out := make([]trace.Flow, 0, len(entities))
	for _, e := range entities {
		out = append(out, flowOf(e))
	}
	return out
}

// Steps returns the flow's hops sorted by step number. A flow with no stored
// steps yields an empty slice.
func (s *Store) Steps(flowID string) []trace.Step {
	out := make([]trace.Step, 0)
	for _, e := range s.All(TypeFlowStep) {
		if e.StringAttr("flow_id") != flowID {
			continue
		}
		out = append(out, trace.Step{
			Number:        e.IntAttr("step_number"),
			FromServiceID: e.StringAttr("from_service_id"),
			ToServiceID:   e.StringAttr("to_service_id"),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Service returns the service entity with the given id, projected to the
// trace engine's directory shape.
func (s *Store) Service(id string) (trace.Service, bool) {
	e, ok := s.Get(TypeService, id)
	if !ok {
		return trace.Service{}, false
	}
	return trace.Service{
		ID:          e.ID,
		Name:        e.Name,
		ServiceType: e.StringAttr("service_type"),
		APIVersion:  e.StringAttr("api_version"),
		Metadata:    e.StringMapAttr("metadata"),
	}, true
}

func flowOf(e Entity) trace.Flow {
	return trace.Flow{
		ID:   e.ID,
		Name: e.Name,
		Type: e.StringAttr("flow_type"),
	}
}
