// Package catalog is the in-memory entity directory: services, platforms,
// flows, and flow steps, stored per type in insertion order.
//
// The catalog is a collaborator, not a database. It resolves names for graph
// output, supplies flows and service records to the trace synthesizer, and
// archives completed traces. Nothing here touches disk.
//
// Like the rest of the engine the catalog assumes a single writer; reads
// return copies so callers cannot mutate stored state.
package catalog
