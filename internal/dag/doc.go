// Package dag provides a small, generic Directed Acyclic Graph keyed by string
// IDs. It knows nothing about resources: callers add nodes and edges, then ask
// for cycle validation, a deterministic topological order, or the realization
// waves an execution engine may run in parallel.
//
// Every query that returns a collection returns it sorted, so two graphs with
// the same nodes and edges always produce identical output regardless of
// insertion order or map iteration.
package dag
