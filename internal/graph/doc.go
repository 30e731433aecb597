// Package graph implements the in-memory dependency graph at the core of meshsim.
//
// The graph is an append-only collection of typed, directed dependency edges
// between enterprise entities (services, platforms, microservices, data
// stores). Two adjacency indices — forward (source id to edge positions) and
// reverse (target id to edge positions) — make direct lookups O(1) and keep
// every BFS walk allocation-light.
//
// ARCHITECTURE:
//
// Single-Writer Graph:
// Edge insertion mutates the edge slice and both indices non-atomically, so
// the Store assumes a single writer (or external locking). Reads may happen
// concurrently with each other. This mirrors the rest of the engine: queries
// are bounded, synchronous, and never perform I/O.
//
// Cycle Flagging:
// AddEdge runs a bounded breadth-first reachability check (depth 20) from the
// new edge's target back to its source, using only edges that already exist.
// If a path is found, the new edge — and only the new edge — is flagged
// circular. Existing edges are never re-evaluated; an edge is "circular"
// exactly when its insertion closed a loop. CircularDependencies is therefore
// a flat O(E) scan with no traversal.
//
// BFS Semantics:
// All walks use an explicit FIFO queue and mark nodes visited at dequeue time,
// not at enqueue time. For transitive queries this means a node reachable via
// several paths can contribute duplicate result records before its own visit
// is finalized; that is intentional and preserved (every discovered path is
// reported). Blast-radius walks additionally record each affected entity only
// once, at its first-discovered (shortest) hop distance.
//
// Unknown entity ids are a valid, non-exceptional state: every query returns
// empty results for them, never an error.
package graph
