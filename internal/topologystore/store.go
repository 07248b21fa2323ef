// Package topologystore defines the interface for storing and retrieving the
// static structure of the provisioning graph: declared resources and the
// dependency edges between them.
//
// # Lifecycle and Usage
//
// The topology store is:
//  1. **Created** once per synthesis pass
//  2. **Populated** by the provisioners, strictly in declaration order
//  3. **Read-only** afterwards, when validators and encoders walk it
//
// Nothing is ever removed. Dropping a resource means removing it from the
// topology description and synthesizing again.
package topologystore

import (
	"context"

	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
)

// Edge is one dependency: From is realized after To.
type Edge struct {
	From nodeid.Address
	To   nodeid.Address
}

// Store is the interface for managing the static topology of the
// provisioning graph.
//
// # Acyclicity
//
// Implementations MUST reject a dependency whose target was declared after
// its source. Because every edge points backwards in declaration order, the
// graph is acyclic by construction and needs no runtime cycle detector.
type Store interface {
	// AddNode registers a new resource. Declaring the same address twice
	// returns a *DuplicateNodeError.
	AddNode(ctx context.Context, n *node.Node) error

	// AddDependency records that dependent must be realized after
	// dependency. Both must already be declared (*MissingNodeError), and
	// dependency must have been declared first (*OrderingError). Adding the
	// same edge twice is not an error.
	AddDependency(ctx context.Context, dependent, dependency nodeid.Address) error

	// GetNode retrieves a single resource by its address.
	GetNode(ctx context.Context, id nodeid.Address) (*node.Node, bool)

	// AllNodes returns every resource in declaration order.
	AllNodes(ctx context.Context) []*node.Node

	// DependenciesOf returns the sorted addresses id directly depends on.
	DependenciesOf(ctx context.Context, id nodeid.Address) ([]nodeid.Address, error)

	// Edges returns every dependency edge, sorted by From then To.
	Edges(ctx context.Context) []Edge

	// Order returns every resource with dependencies first. Independent
	// resources are ordered lexically by address.
	Order(ctx context.Context) ([]*node.Node, error)

	// Waves groups resources into sets that may be realized in parallel.
	Waves(ctx context.Context) ([][]nodeid.Address, error)
}
