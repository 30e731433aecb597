package catalog

import "github.com/meshsim/meshsim/internal/trace"

// SaveTrace archives a completed trace. Re-saving a trace id replaces the
// indexed entry but keeps the original list position.
func (s *Store) SaveTrace(t *trace.Trace) {
	if _, seen := s.byTraceID[t.TraceID]; !seen {
		s.traces = append(s.traces, t)
	} else {
		for i, existing := range s.traces {
			if existing.TraceID == t.TraceID {
				s.traces[i] = t
				break
			}
		}
	}
	s.byTraceID[t.TraceID] = t

	s.logger.Debug("trace archived",
		"trace_id", t.TraceID,
		"flow_id", t.FlowID,
		"span_count", t.SpanCount)
}

// Trace returns the archived trace with the given trace id.
func (s *Store) Trace(traceID string) (*trace.Trace, bool) {
	t, ok := s.byTraceID[traceID]
	return t, ok
}

// Traces returns every archived trace in arrival order.
func (s *Store) Traces() []*trace.Trace {
	out := make([]*trace.Trace, len(s.traces))
	copy(out, s.traces)
	return out
}

// Spans returns the spans of an archived trace, root first. Unknown trace
// ids yield an empty slice.
func (s *Store) Spans(traceID string) []*trace.Span {
	t, ok := s.byTraceID[traceID]
	if !ok {
		return []*trace.Span{}
	}
	out := make([]*trace.Span, len(t.Spans))
	copy(out, t.Spans)
	return out
}
