package provision

import (
	"context"
	"fmt"

	"github.com/specialistvlad/caregrid/internal/ctxlog"
	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/topologystore"
	"github.com/zclconf/go-cty/cty"
)

// Options are the deployment-wide settings every provisioner reads.
type Options struct {
	// BrokerBootstrap is the comma separated list of advertised broker
	// endpoints. It is static configuration, not a reference.
	BrokerBootstrap string `validate:"required,endpoint_list"`
	// DiscoveryDomain is the suffix of every service discovery name.
	DiscoveryDomain string `validate:"required,hostname_rfc1123"`
}

// DefaultOptions returns the options of the local deployment.
func DefaultOptions() Options {
	return Options{
		BrokerBootstrap: platform.DefaultBrokerBootstrap,
		DiscoveryDomain: platform.DefaultDiscoveryDomain,
	}
}

// Provisioner declares platform resources into a topology store.
type Provisioner struct {
	store topologystore.Store
	opts  Options
}

// New creates a provisioner writing into store.
func New(store topologystore.Store, opts Options) (*Provisioner, error) {
	if err := platform.Validate(opts); err != nil {
		return nil, fmt.Errorf("invalid provisioner options: %w", err)
	}
	return &Provisioner{store: store, opts: opts}, nil
}

// Options returns the options the provisioner was created with.
func (p *Provisioner) Options() Options {
	return p.opts
}

// declare adds a node and its dependencies in one step. The node is added
// first so a duplicate address is reported before anything else.
func (p *Provisioner) declare(ctx context.Context, addr nodeid.Address, attrs map[string]cty.Value, deps ...nodeid.Address) error {
	logger := ctxlog.FromContext(ctx).With("address", addr.String(), "kind", string(addr.Kind))
	if err := addr.Validate(); err != nil {
		return err
	}
	if err := p.store.AddNode(ctx, node.New(addr, attrs)); err != nil {
		return err
	}
	for _, dep := range deps {
		if err := p.store.AddDependency(ctx, addr, dep); err != nil {
			return fmt.Errorf("failed to declare %s: %w", addr, err)
		}
	}
	logger.Debug("Resource declared.", "depends_on", len(deps))
	return nil
}

// DependsOn records an explicit ordering edge that no attribute implies.
func (p *Provisioner) DependsOn(ctx context.Context, dependent, dependency nodeid.Address) error {
	if _, ok := p.store.GetNode(ctx, dependency); !ok {
		return &UnresolvedDependencyError{From: dependent, To: dependency}
	}
	if err := p.store.AddDependency(ctx, dependent, dependency); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Explicit dependency declared.", "from", dependent.String(), "to", dependency.String())
	return nil
}
