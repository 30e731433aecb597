package trace

import "time"

// Flow identifies the flow being executed.
type Flow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"flow_type"`
}

// Step is one hop in a flow: FromServiceID calls ToServiceID. Steps execute
// in ascending Number order.
type Step struct {
	Number        int    `json:"step_number"`
	FromServiceID string `json:"from_service_id"`
	ToServiceID   string `json:"to_service_id"`
}

// Service is a typed service-directory entry.
type Service struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	ServiceType string            `json:"service_type"`
	APIVersion  string            `json:"api_version"`
	Metadata    map[string]string `json:"metadata"`
}

// Directory maps service ids to their directory entries. Hops referencing
// unknown ids get placeholder names and the default service type — absence
// is data, not an error.
type Directory map[string]Service

// StepError describes the hop at which an injected failure fired.
type StepError struct {
	Step        int    `json:"step"`
	FromService string `json:"from_service"`
	ToService   string `json:"to_service"`
	Error       string `json:"error"`
}

// Trace is the complete result of one flow execution: the root span plus a
// CLIENT/SERVER pair per completed hop. Immutable after return.
type Trace struct {
	TraceID     string
	ExecutionID string
	FlowID      string
	FlowName    string
	Environment string
	StartTime   time.Time
	EndTime     time.Time
	DurationMs  float64
	Status      Status
	SpanCount   int
	Error       *StepError
	Spans       []*Span // Spans[0] is always the root span
}

// OTelSpans serializes every span to the OTel JSON shape, root first.
func (t *Trace) OTelSpans() []OTelSpan {
	out := make([]OTelSpan, 0, len(t.Spans))
	for _, s := range t.Spans {
		out = append(out, s.OTel())
	}
	return out
}

// JaegerSpans serializes every span to the Jaeger JSON shape, root first.
func (t *Trace) JaegerSpans() []JaegerSpan {
	out := make([]JaegerSpan, 0, len(t.Spans))
	for _, s := range t.Spans {
		out = append(out, s.Jaeger())
	}
	return out
}

// Document is the JSON-serializable rendering of a Trace, carrying both span
// serializations side by side.
type Document struct {
	TraceID     string       `json:"trace_id"`
	ExecutionID string       `json:"execution_id"`
	FlowID      string       `json:"flow_id"`
	FlowName    string       `json:"flow_name"`
	Environment string       `json:"environment"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	DurationMs  float64      `json:"duration_ms"`
	Status      string       `json:"status"`
	SpanCount   int          `json:"span_count"`
	Error       *StepError   `json:"error"`
	Spans       []OTelSpan   `json:"spans"`
	SpansJaeger []JaegerSpan `json:"spans_jaeger"`
}

// Document renders the trace for serialization.
func (t *Trace) Document() Document {
	return Document{
		TraceID:     t.TraceID,
		ExecutionID: t.ExecutionID,
		FlowID:      t.FlowID,
		FlowName:    t.FlowName,
		Environment: t.Environment,
		StartTime:   t.StartTime.UTC().Format(time.RFC3339Nano),
		EndTime:     t.EndTime.UTC().Format(time.RFC3339Nano),
		DurationMs:  t.DurationMs,
		Status:      string(t.Status),
		SpanCount:   t.SpanCount,
		Error:       t.Error,
		Spans:       t.OTelSpans(),
		SpansJaeger: t.JaegerSpans(),
	}
}
