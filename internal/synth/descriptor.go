package synth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/specialistvlad/caregrid/internal/ctxlog"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/topologystore"
	"github.com/zclconf/go-cty/cty"
)

// FormatVersion is bumped whenever the descriptor layout changes.
const FormatVersion = 1

// Resource is one declared resource of the descriptor.
type Resource struct {
	Address    nodeid.Address
	LogicalID  string
	DependsOn  []nodeid.Address
	Attributes cty.Value
}

// Descriptor is the synthesized deployment description.
type Descriptor struct {
	FormatVersion int
	// Digest is the SHA-256 of the canonical JSON encoding of Resources.
	Digest    string
	Resources []Resource
}

// Build snapshots store into a descriptor.
func Build(ctx context.Context, store topologystore.Store) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	nodes, err := store.Order(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to order resources: %w", err)
	}

	d := &Descriptor{
		FormatVersion: FormatVersion,
		Resources:     make([]Resource, 0, len(nodes)),
	}
	for _, n := range nodes {
		deps, err := store.DependenciesOf(ctx, n.ID)
		if err != nil {
			return nil, err
		}
		d.Resources = append(d.Resources, Resource{
			Address:    n.ID,
			LogicalID:  n.LogicalID.String(),
			DependsOn:  deps,
			Attributes: n.Attributes,
		})
	}

	canonical, err := marshalResources(d.Resources)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(canonical)
	d.Digest = hex.EncodeToString(sum[:])

	logger.Debug("Descriptor built.", "resources", len(d.Resources), "digest", d.Digest)
	return d, nil
}

// Edges returns the dependency edges of the descriptor in resource order.
func (d *Descriptor) Edges() []topologystore.Edge {
	var edges []topologystore.Edge
	for _, r := range d.Resources {
		for _, dep := range r.DependsOn {
			edges = append(edges, topologystore.Edge{From: r.Address, To: dep})
		}
	}
	return edges
}
