// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. Edges are kept in a dag.Graph keyed by
// canonical address strings; declaration sequence numbers enforce that every
// edge points at an earlier declaration.
package inmemorytopology
