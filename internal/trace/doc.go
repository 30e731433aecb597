// Package trace synthesizes distributed traces for flow executions.
//
// Given an ordered chain of service hops and a typed service directory, the
// Synthesizer fabricates a complete, internally-consistent trace: one root
// span wrapping the whole flow, plus a CLIENT/SERVER span pair per hop, with
// realistic per-service-type latency distributions and optional failure
// injection. Spans serialize to both OTel-style and Jaeger-style JSON, field
// names bit-exact for downstream consumers.
//
// ARCHITECTURE:
//
// State machine over the hop list:
// Each hop generates a CLIENT span on the calling service and a SERVER span
// on the receiving service (the server span's parent is the client span, the
// client span's parent is the flow's single root span). A hop designated as
// the failure step marks both spans ERROR with a message from a fixed
// vocabulary and terminates the walk — later hops never execute.
//
// Determinism:
// All randomness — ids, latencies, attribute choices, failure placement —
// flows through one seeded *rand.Rand supplied at construction. Timestamps
// derive from a single starting instant (injectable for tests, wall clock
// otherwise) plus generator-derived offsets. For a fixed generator state,
// start instant, and inputs, repeated executions are byte-identical.
//
// No I/O, no goroutines, no suspension: everything here runs synchronously
// on bounded in-memory data.
package trace
