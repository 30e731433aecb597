package trace

import (
	"math"
	"sort"
	"time"
)

// Status is an OTel span status code.
type Status string

const (
	StatusOK    Status = "STATUS_CODE_OK"
	StatusError Status = "STATUS_CODE_ERROR"
	StatusUnset Status = "STATUS_CODE_UNSET"
)

// Kind is an OTel span kind.
type Kind string

const (
	KindClient   Kind = "SPAN_KIND_CLIENT"
	KindServer   Kind = "SPAN_KIND_SERVER"
	KindInternal Kind = "SPAN_KIND_INTERNAL"
)

// zeroSpanID is the Jaeger convention for "no parent".
const zeroSpanID = "0000000000000000"

// SpanEvent is a timestamped log line inside a span.
type SpanEvent struct {
	Name       string
	Timestamp  time.Time
	Attributes map[string]any
}

// SpanLink references another span, used for async/batch relationships.
type SpanLink struct {
	TraceID    string
	SpanID     string
	Attributes map[string]any
}

// Span is one timed unit of work inside a trace.
//
// A span is owned by its Trace for the duration of one execution call;
// ownership transfers to the caller on return and the synthesizer never
// mutates it afterwards.
type Span struct {
	TraceID       string // 32 hex chars
	SpanID        string // 16 hex chars
	ParentSpanID  string // "" for the root span
	OperationName string
	ServiceName   string
	ServiceType   string
	Kind          Kind
	StartTime     time.Time
	EndTime       time.Time
	DurationNanos int64
	StatusCode    Status
	StatusMessage string
	Attributes    map[string]any
	Events        []SpanEvent
	Links         []SpanLink
	Resource      map[string]any
}

// OTelStatus is the status object of the OTel JSON shape.
type OTelStatus struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OTelEvent is a span event in the OTel JSON shape.
type OTelEvent struct {
	Name       string         `json:"name"`
	Timestamp  string         `json:"timestamp"`
	Attributes map[string]any `json:"attributes"`
}

// OTelLink is a span link in the OTel JSON shape.
type OTelLink struct {
	TraceID    string         `json:"traceId"`
	SpanID     string         `json:"spanId"`
	Attributes map[string]any `json:"attributes"`
}

// OTelResource wraps resource attributes in the OTel JSON shape.
type OTelResource struct {
	Attributes map[string]any `json:"attributes"`
}

// OTelSpan is the OTel-style JSON serialization of a Span. Field names are
// part of the wire contract and must not change.
type OTelSpan struct {
	TraceID           string         `json:"traceId"`
	SpanID            string         `json:"spanId"`
	ParentSpanID      string         `json:"parentSpanId"`
	OperationName     string         `json:"operationName"`
	ServiceName       string         `json:"serviceName"`
	Kind              string         `json:"kind"`
	StartTimeUnixNano int64          `json:"startTimeUnixNano"`
	EndTimeUnixNano   int64          `json:"endTimeUnixNano"`
	DurationNano      int64          `json:"durationNano"`
	DurationMs        float64        `json:"durationMs"`
	Status            OTelStatus     `json:"status"`
	Attributes        map[string]any `json:"attributes"`
	Events            []OTelEvent    `json:"events"`
	Links             []OTelLink     `json:"links"`
	Resource          OTelResource   `json:"resource"`
}

// OTel serializes the span to the OTel JSON shape.
func (s *Span) OTel() OTelSpan {
	events := make([]OTelEvent, 0, len(s.Events))
	for _, e := range s.Events {
		events = append(events, OTelEvent{
			Name:       e.Name,
			Timestamp:  e.Timestamp.UTC().Format(time.RFC3339Nano),
			Attributes: orEmpty(e.Attributes),
		})
	}
	links := make([]OTelLink, 0, len(s.Links))
	for _, l := range s.Links {
		links = append(links, OTelLink{
			TraceID:    l.TraceID,
			SpanID:     l.SpanID,
			Attributes: orEmpty(l.Attributes),
		})
	}

	var endNano int64
	if !s.EndTime.IsZero() {
		endNano = s.EndTime.UnixNano()
	}

	return OTelSpan{
		TraceID:           s.TraceID,
		SpanID:            s.SpanID,
		ParentSpanID:      s.ParentSpanID,
		OperationName:     s.OperationName,
		ServiceName:       s.ServiceName,
		Kind:              string(s.Kind),
		StartTimeUnixNano: s.StartTime.UnixNano(),
		EndTimeUnixNano:   endNano,
		DurationNano:      s.DurationNanos,
		DurationMs:        round2(float64(s.DurationNanos) / 1e6),
		Status: OTelStatus{
			Code:    string(s.StatusCode),
			Message: s.StatusMessage,
		},
		Attributes: orEmpty(s.Attributes),
		Events:     events,
		Links:      links,
		Resource:   OTelResource{Attributes: orEmpty(s.Resource)},
	}
}

// JaegerTag is a typed key/value in the Jaeger JSON shape.
type JaegerTag struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// JaegerRef is a span reference in the Jaeger JSON shape.
type JaegerRef struct {
	RefType string `json:"refType"`
	TraceID string `json:"traceID"`
	SpanID  string `json:"spanID"`
}

// JaegerLog is a span log entry in the Jaeger JSON shape.
type JaegerLog struct {
	Timestamp int64       `json:"timestamp"`
	Fields    []JaegerTag `json:"fields"`
}

// JaegerProcess names the emitting service in the Jaeger JSON shape.
type JaegerProcess struct {
	ServiceName string      `json:"serviceName"`
	Tags        []JaegerTag `json:"tags"`
}

// JaegerSpan is the Jaeger-style JSON serialization of a Span. Times are in
// microseconds since epoch, durations in microseconds.
type JaegerSpan struct {
	TraceID       string        `json:"traceID"`
	SpanID        string        `json:"spanID"`
	ParentSpanID  string        `json:"parentSpanID"`
	OperationName string        `json:"operationName"`
	References    []JaegerRef   `json:"references"`
	StartTime     int64         `json:"startTime"`
	Duration      int64         `json:"duration"`
	Tags          []JaegerTag   `json:"tags"`
	Logs          []JaegerLog   `json:"logs"`
	Process       JaegerProcess `json:"process"`
}

// Jaeger serializes the span to the Jaeger JSON shape.
func (s *Span) Jaeger() JaegerSpan {
	parent := s.ParentSpanID
	references := make([]JaegerRef, 0, 1)
	if parent == "" {
		parent = zeroSpanID
	} else {
		references = append(references, JaegerRef{
			RefType: "CHILD_OF",
			TraceID: s.TraceID,
			SpanID:  s.ParentSpanID,
		})
	}

	logs := make([]JaegerLog, 0, len(s.Events))
	for _, e := range s.Events {
		logs = append(logs, JaegerLog{
			Timestamp: e.Timestamp.UnixMicro(),
			Fields:    jaegerTags(e.Attributes),
		})
	}

	return JaegerSpan{
		TraceID:       s.TraceID,
		SpanID:        s.SpanID,
		ParentSpanID:  parent,
		OperationName: s.OperationName,
		References:    references,
		StartTime:     s.StartTime.UnixMicro(),
		Duration:      s.DurationNanos / 1000,
		Tags:          jaegerTags(s.Attributes),
		Logs:          logs,
		Process: JaegerProcess{
			ServiceName: s.ServiceName,
			Tags:        jaegerTags(s.Resource),
		},
	}
}

// jaegerTags converts an attribute map to a sorted, typed tag list. Sorting
// keeps serialization deterministic for golden comparisons.
func jaegerTags(attrs map[string]any) []JaegerTag {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]JaegerTag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, JaegerTag{Key: k, Type: jaegerTagType(attrs[k]), Value: attrs[k]})
	}
	return tags
}

// jaegerTagType maps a Go value to the Jaeger tag type vocabulary.
func jaegerTagType(v any) string {
	switch v.(type) {
	case bool:
		return "bool"
	case int, int32, int64:
		return "int64"
	case float32, float64:
		return "float64"
	default:
		return "string"
	}
}

// orEmpty normalizes nil maps so JSON output is {} rather than null.
func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// round2 rounds to two decimal places, matching the wire precision of
// duration-in-milliseconds fields.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
