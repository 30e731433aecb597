package trace

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSpan builds a span with every field pinned so serialization output is
// stable across runs without touching the generator.
func staticSpan() *Span {
	return &Span{
		TraceID:       "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:        "00f067aa0ba902b7",
		ParentSpanID:  "a1b2c3d4e5f60718",
		OperationName: "GET /api/payments/status",
		ServiceName:   "payments",
		ServiceType:   "rest",
		Kind:          KindClient,
		StartTime:     time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		EndTime:       time.Date(2025, 3, 14, 9, 26, 53, 125000000, time.UTC),
		DurationNanos: 125000000,
		StatusCode:    StatusOK,
		Attributes: map[string]any{
			"http.method":      "GET",
			"http.status_code": 200,
			"retry":            false,
			"sample.rate":      0.25,
		},
		Events: []SpanEvent{{
			Name:       "request.received",
			Timestamp:  time.Date(2025, 3, 14, 9, 26, 53, 100000, time.UTC),
			Attributes: map[string]any{"service.name": "payments"},
		}},
		Resource: map[string]any{
			"service.name":    "payments",
			"service.version": "v2",
		},
	}
}

func TestSpan_OTel_Golden(t *testing.T) {
	data, err := json.MarshalIndent(staticSpan().OTel(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "span_otel", data)
}

func TestSpan_Jaeger_Golden(t *testing.T) {
	data, err := json.MarshalIndent(staticSpan().Jaeger(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "span_jaeger", data)
}

func TestSpan_OTel_NilMapsSerializeAsObjects(t *testing.T) {
	s := &Span{
		TraceID:   "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:    "00f067aa0ba902b7",
		Kind:      KindInternal,
		StartTime: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}

	data, err := json.Marshal(s.OTel())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"attributes":{}`)
	assert.Contains(t, string(data), `"events":[]`)
	assert.Contains(t, string(data), `"links":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestSpan_Jaeger_RootHasZeroParentAndNoReferences(t *testing.T) {
	s := staticSpan()
	s.ParentSpanID = ""

	j := s.Jaeger()

	assert.Equal(t, zeroSpanID, j.ParentSpanID)
	assert.Empty(t, j.References)
}

func TestSpan_Jaeger_ChildReferencesParent(t *testing.T) {
	j := staticSpan().Jaeger()

	require.Len(t, j.References, 1)
	assert.Equal(t, "CHILD_OF", j.References[0].RefType)
	assert.Equal(t, "a1b2c3d4e5f60718", j.References[0].SpanID)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", j.References[0].TraceID)
}

func TestSpan_Jaeger_TagsSortedAndTyped(t *testing.T) {
	j := staticSpan().Jaeger()

	keys := make([]string, 0, len(j.Tags))
	types := map[string]string{}
	for _, tag := range j.Tags {
		keys = append(keys, tag.Key)
		types[tag.Key] = tag.Type
	}

	assert.Equal(t, []string{"http.method", "http.status_code", "retry", "sample.rate"}, keys)
	assert.Equal(t, "string", types["http.method"])
	assert.Equal(t, "int64", types["http.status_code"])
	assert.Equal(t, "bool", types["retry"])
	assert.Equal(t, "float64", types["sample.rate"])
}

func TestSpan_Jaeger_MicrosecondUnits(t *testing.T) {
	j := staticSpan().Jaeger()

	assert.Equal(t, int64(1741944413000000), j.StartTime)
	assert.Equal(t, int64(125000), j.Duration)
	require.Len(t, j.Logs, 1)
	assert.Equal(t, int64(1741944413000100), j.Logs[0].Timestamp)
}
