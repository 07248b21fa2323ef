package inmemorytopology

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/caregrid/internal/ctxlog"
	"github.com/specialistvlad/caregrid/internal/dag"
	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/topologystore"
)

// Store implements the topologystore.Store interface using maps, a dag.Graph
// and a mutex for thread-safe concurrent access.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*node.Node
	seq   map[string]int
	order []*node.Node
	graph *dag.Graph
}

var _ topologystore.Store = (*Store)(nil)

// New creates a new, empty in-memory topology store.
func New() *Store {
	return &Store{
		nodes: make(map[string]*node.Node),
		seq:   make(map[string]int),
		graph: dag.New(),
	}
}

// AddNode adds a new node to the store.
func (s *Store) AddNode(ctx context.Context, n *node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := n.ID.String()
	if _, exists := s.nodes[key]; exists {
		return &topologystore.DuplicateNodeError{ID: n.ID}
	}
	s.nodes[key] = n
	s.seq[key] = len(s.order)
	s.order = append(s.order, n)
	s.graph.AddNode(key)

	ctxlog.FromContext(ctx).Debug("Resource declared.", "address", key, "seq", s.seq[key])
	return nil
}

// AddDependency records that dependent is realized after dependency.
func (s *Store) AddDependency(ctx context.Context, dependent, dependency nodeid.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fromKey := dependent.String()
	toKey := dependency.String()

	if _, exists := s.nodes[fromKey]; !exists {
		return &topologystore.UndeclaredDependentError{From: dependent, To: dependency}
	}
	if _, exists := s.nodes[toKey]; !exists {
		return &topologystore.MissingNodeError{From: dependent, To: dependency}
	}
	if s.seq[toKey] >= s.seq[fromKey] {
		return &topologystore.OrderingError{From: dependent, To: dependency}
	}

	if err := s.graph.AddEdge(toKey, fromKey); err != nil {
		return fmt.Errorf("failed to link %s -> %s: %w", fromKey, toKey, err)
	}
	ctxlog.FromContext(ctx).Debug("Dependency declared.", "address", fromKey, "depends_on", toKey)
	return nil
}

// GetNode retrieves a single node by its address.
func (s *Store) GetNode(ctx context.Context, id nodeid.Address) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id.String()]
	return n, ok
}

// AllNodes returns a snapshot of all nodes in declaration order.
func (s *Store) AllNodes(ctx context.Context) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]*node.Node(nil), s.order...)
}

// DependenciesOf returns the addresses of all nodes that the given node depends on.
func (s *Store) DependenciesOf(ctx context.Context, id nodeid.Address) ([]nodeid.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := id.String()
	if _, exists := s.nodes[key]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", key)
	}

	depKeys, err := s.graph.Dependencies(key)
	if err != nil {
		return nil, err
	}
	return s.addresses(depKeys), nil
}

// Edges returns every dependency edge.
func (s *Store) Edges(ctx context.Context) []topologystore.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dagEdges := s.graph.Edges()
	edges := make([]topologystore.Edge, 0, len(dagEdges))
	for _, e := range dagEdges {
		edges = append(edges, topologystore.Edge{
			From: s.nodes[e.Node].ID,
			To:   s.nodes[e.DependsOn].ID,
		})
	}
	return edges
}

// Order returns every node with dependencies first.
func (s *Store) Order(ctx context.Context) ([]*node.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys, err := s.graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	nodes := make([]*node.Node, len(keys))
	for i, k := range keys {
		nodes[i] = s.nodes[k]
	}
	return nodes, nil
}

// Waves groups nodes into realization waves.
func (s *Store) Waves(ctx context.Context) ([][]nodeid.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keyWaves, err := s.graph.Waves()
	if err != nil {
		return nil, err
	}
	waves := make([][]nodeid.Address, len(keyWaves))
	for i, w := range keyWaves {
		waves[i] = s.addresses(w)
	}
	return waves, nil
}

// addresses must be called with the mutex held.
func (s *Store) addresses(keys []string) []nodeid.Address {
	addrs := make([]nodeid.Address, len(keys))
	for i, k := range keys {
		addrs[i] = s.nodes[k].ID
	}
	return addrs
}
