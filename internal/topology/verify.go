package topology

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/caregrid/internal/dag"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/provision"
	"github.com/specialistvlad/caregrid/internal/topologystore"
)

// Verify checks a plain edge set against the requirement table. It reports
// every missing edge and any cycle. It needs no resource construction, so
// edge sets can be checked after the fact or built by hand in tests.
func Verify(edges []topologystore.Edge, reqs []Requirement) error {
	present := make(map[topologystore.Edge]struct{}, len(edges))
	g := dag.New()
	for _, e := range edges {
		present[e] = struct{}{}
		g.AddNode(e.From.String())
		g.AddNode(e.To.String())
		if err := g.AddEdge(e.To.String(), e.From.String()); err != nil {
			return fmt.Errorf("invalid edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	var errs []error
	for _, r := range reqs {
		for _, dep := range r.Requires {
			if _, ok := present[topologystore.Edge{From: r.Service, To: dep}]; !ok {
				errs = append(errs, &MissingEdgeError{From: r.Service, To: dep})
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CheckReferences verifies that every token reference held by a resource
// points at a declared resource that the holder transitively depends on.
func CheckReferences(ctx context.Context, store topologystore.Store) error {
	closure := make(map[nodeid.Address]map[nodeid.Address]struct{})

	var ancestors func(addr nodeid.Address) (map[nodeid.Address]struct{}, error)
	ancestors = func(addr nodeid.Address) (map[nodeid.Address]struct{}, error) {
		if set, ok := closure[addr]; ok {
			return set, nil
		}
		deps, err := store.DependenciesOf(ctx, addr)
		if err != nil {
			return nil, err
		}
		set := make(map[nodeid.Address]struct{})
		for _, dep := range deps {
			set[dep] = struct{}{}
			upstream, err := ancestors(dep)
			if err != nil {
				return nil, err
			}
			for a := range upstream {
				set[a] = struct{}{}
			}
		}
		closure[addr] = set
		return set, nil
	}

	for _, n := range store.AllNodes(ctx) {
		refs, err := n.References()
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			continue
		}
		upstream, err := ancestors(n.ID)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if _, ok := store.GetNode(ctx, ref.Resource); !ok {
				return &provision.UnresolvedDependencyError{From: n.ID, To: ref.Resource}
			}
			if _, ok := upstream[ref.Resource]; !ok {
				return &UnsequencedReferenceError{From: n.ID, Ref: ref}
			}
		}
	}
	return nil
}
