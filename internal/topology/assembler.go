package topology

import (
	"context"
	"fmt"

	"github.com/specialistvlad/caregrid/internal/ctxlog"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/provision"
	"github.com/specialistvlad/caregrid/internal/topologystore"
)

// Deployment holds the handles of every assembled resource.
type Deployment struct {
	Network    platform.NetworkHandle
	Cluster    platform.ClusterHandle
	Broker     platform.BrokerHandle
	SigningKey platform.SecretHandle
	Databases  map[string]platform.DatabaseHandle
	Probes     map[string]platform.ProbeHandle
	Workloads  map[string]platform.WorkloadHandle
}

// Assembler declares a catalog into a topology store.
type Assembler struct {
	Catalog      Catalog
	Requirements []Requirement
	Options      provision.Options
}

// NewAssembler returns an assembler for the platform catalog and its
// requirement table.
func NewAssembler(opts provision.Options) *Assembler {
	return &Assembler{
		Catalog:      PlatformCatalog(),
		Requirements: PlatformRequirements(),
		Options:      opts,
	}
}

// Assemble declares the whole platform into store using the default
// catalog and requirement table.
func Assemble(ctx context.Context, store topologystore.Store, opts provision.Options) (*Deployment, error) {
	return NewAssembler(opts).Assemble(ctx, store)
}

// Assemble declares every resource of the catalog into store, then checks
// the result against the requirement table and the reference rules. The
// first failure aborts the pass.
func (a *Assembler) Assemble(ctx context.Context, store topologystore.Store) (*Deployment, error) {
	ctx, logger := ctxlog.With(ctx, "component", "assembler")
	logger.Debug("Assembling platform topology.")

	p, err := provision.New(store, a.Options)
	if err != nil {
		return nil, err
	}
	requires := index(a.Requirements)

	d := &Deployment{
		Databases: make(map[string]platform.DatabaseHandle),
		Probes:    make(map[string]platform.ProbeHandle),
		Workloads: make(map[string]platform.WorkloadHandle),
	}

	if d.Network, err = p.Network(ctx, NetworkName); err != nil {
		return nil, err
	}
	for _, entry := range a.Catalog.Databases {
		db, err := p.Database(ctx, d.Network, entry.Name, entry.DatabaseName)
		if err != nil {
			return nil, err
		}
		d.Databases[entry.Name] = db
	}
	for _, entry := range a.Catalog.Databases {
		probe, err := p.Probe(ctx, d.Databases[entry.Name])
		if err != nil {
			return nil, err
		}
		d.Probes[entry.Name] = probe
	}
	if d.Broker, err = p.Broker(ctx, d.Network); err != nil {
		return nil, err
	}
	if d.Cluster, err = p.Cluster(ctx, d.Network, ClusterName); err != nil {
		return nil, err
	}
	d.SigningKey, err = p.Secret(ctx, platform.SecretConfig{Name: SigningKeyName, Field: platform.AttrSecretValue})
	if err != nil {
		return nil, err
	}

	for _, entry := range a.Catalog.Services {
		spec, err := a.spec(entry, d)
		if err != nil {
			return nil, err
		}
		var probe *platform.ProbeHandle
		if pr, ok := d.Probes[entry.Database]; ok {
			probe = &pr
		}
		w, err := p.Service(ctx, d.Cluster, spec, probe)
		if err != nil {
			return nil, err
		}
		if err := applyRequirements(ctx, p, w.Address, requires); err != nil {
			return nil, err
		}
		d.Workloads[entry.Name] = w
	}

	gw := a.Catalog.Gateway
	upstream, ok := d.Workloads[gw.Upstream]
	if !ok {
		return nil, &provision.UnresolvedDependencyError{
			From: nodeid.New(nodeid.KindWorkload, gw.Name),
			To:   nodeid.New(nodeid.KindWorkload, gw.Upstream),
		}
	}
	spec, err := a.spec(gw.ServiceEntry, d)
	if err != nil {
		return nil, err
	}
	w, err := p.Gateway(ctx, d.Cluster, spec, upstream)
	if err != nil {
		return nil, err
	}
	if err := applyRequirements(ctx, p, w.Address, requires); err != nil {
		return nil, err
	}
	d.Workloads[gw.Name] = w

	for _, r := range a.Requirements {
		if _, ok := store.GetNode(ctx, r.Service); !ok {
			return nil, &UnknownServiceError{Service: r.Service}
		}
	}
	if err := Verify(store.Edges(ctx), a.Requirements); err != nil {
		return nil, fmt.Errorf("assembled topology failed verification: %w", err)
	}
	if err := CheckReferences(ctx, store); err != nil {
		return nil, err
	}

	logger.Info("Platform topology assembled.", "resources", len(store.AllNodes(ctx)), "edges", len(store.Edges(ctx)))
	return d, nil
}

func (a *Assembler) spec(entry ServiceEntry, d *Deployment) (platform.ServiceSpec, error) {
	cfg := platform.ServiceConfig{
		Name:  entry.Name,
		Image: entry.Image,
		Ports: entry.Ports,
	}
	if entry.Database != "" {
		db, ok := d.Databases[entry.Database]
		if !ok {
			return platform.ServiceSpec{}, &provision.UnresolvedDependencyError{
				From: nodeid.New(nodeid.KindWorkload, entry.Name),
				To:   nodeid.New(nodeid.KindDatabase, entry.Database),
			}
		}
		cfg.Database = &db
	}
	if entry.Env != nil {
		cfg.Env = entry.Env(Peers{Cluster: d.Cluster, SigningKey: d.SigningKey, Workloads: d.Workloads})
	}
	return platform.NewServiceSpec(cfg)
}

// applyRequirements adds the table edges of one freshly declared service.
func applyRequirements(ctx context.Context, p *provision.Provisioner, svc nodeid.Address, requires map[nodeid.Address][]nodeid.Address) error {
	for _, dep := range requires[svc] {
		if err := p.DependsOn(ctx, svc, dep); err != nil {
			return err
		}
	}
	return nil
}
