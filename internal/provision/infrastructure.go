package provision

import (
	"context"

	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/zclconf/go-cty/cty"
)

// Network declares the isolated multi-zone network. It has no dependencies.
func (p *Provisioner) Network(ctx context.Context, name string) (platform.NetworkHandle, error) {
	h := platform.NetworkHandle{
		Address: nodeid.New(nodeid.KindNetwork, name),
		MaxAZs:  platform.NetworkMaxAZs,
	}
	attrs := map[string]cty.Value{
		"name":    cty.StringVal(name),
		"max_azs": cty.NumberIntVal(int64(h.MaxAZs)),
	}
	if err := p.declare(ctx, h.Address, attrs); err != nil {
		return platform.NetworkHandle{}, err
	}
	return h, nil
}

// Secret declares a generated secret. The secret material is produced by the
// execution engine and is only ever referenced.
func (p *Provisioner) Secret(ctx context.Context, cfg platform.SecretConfig) (platform.SecretHandle, error) {
	if err := platform.Validate(cfg); err != nil {
		return platform.SecretHandle{}, err
	}
	h := platform.SecretHandle{
		Address:  nodeid.New(nodeid.KindSecret, cfg.Name),
		Username: cfg.Username,
		Field:    cfg.Field,
	}
	attrs := map[string]cty.Value{
		"generate": cty.StringVal(cfg.Field),
		"length":   cty.NumberIntVal(platform.SecretLength),
	}
	if cfg.Username != "" {
		attrs["username"] = cty.StringVal(cfg.Username)
	}
	if err := p.declare(ctx, h.Address, attrs); err != nil {
		return platform.SecretHandle{}, err
	}
	return h, nil
}

// Database declares a managed database together with its generated
// credential secret, secret.<name>-credentials.
func (p *Provisioner) Database(ctx context.Context, network platform.NetworkHandle, name, dbName string) (platform.DatabaseHandle, error) {
	addr := nodeid.New(nodeid.KindDatabase, name)
	if _, exists := p.store.GetNode(ctx, addr); exists {
		return platform.DatabaseHandle{}, &DuplicateResourceError{ID: addr}
	}

	creds, err := p.Secret(ctx, platform.SecretConfig{
		Name:     name + "-credentials",
		Username: platform.DatabaseAdminUser,
		Field:    platform.AttrPassword,
	})
	if err != nil {
		return platform.DatabaseHandle{}, err
	}

	h := platform.DatabaseHandle{
		Address:      addr,
		Network:      network.Address,
		Credentials:  creds,
		DatabaseName: dbName,
	}
	attrs := map[string]cty.Value{
		"engine":            cty.StringVal(platform.DatabaseEngine),
		"engine_version":    cty.StringVal(platform.DatabaseEngineVersion),
		"instance_class":    cty.StringVal(platform.DatabaseInstanceClass),
		"allocated_storage": cty.NumberIntVal(platform.DatabaseStorageGiB),
		"database_name":     cty.StringVal(dbName),
		"username":          cty.StringVal(platform.DatabaseAdminUser),
		"password":          token.Of(creds.Ref()).CtyValue(),
		"subnet_ids":        token.Of(network.PrivateSubnets()).CtyValue(),
		"removal_policy":    cty.StringVal(platform.RemovalDestroy),
	}
	if err := p.declare(ctx, addr, attrs, network.Address, creds.Address); err != nil {
		return platform.DatabaseHandle{}, err
	}
	return h, nil
}

// Probe declares a TCP liveness check against db. Consumers depend on the
// probe to be sequenced after the database address can be resolved.
func (p *Provisioner) Probe(ctx context.Context, db platform.DatabaseHandle) (platform.ProbeHandle, error) {
	h := platform.ProbeHandle{
		Address:          nodeid.New(nodeid.KindProbe, db.Address.Name),
		Target:           db.Address,
		Protocol:         platform.ProbeProtocol,
		Interval:         platform.ProbeInterval,
		FailureThreshold: platform.ProbeFailureThreshold,
	}
	attrs := map[string]cty.Value{
		"type":              cty.StringVal(h.Protocol),
		"target":            cty.StringVal(db.Address.String()),
		"address":           token.Of(db.EndpointAddress()).CtyValue(),
		"port":              token.Of(db.EndpointPort()).CtyValue(),
		"request_interval":  cty.NumberIntVal(int64(h.Interval.Seconds())),
		"failure_threshold": cty.NumberIntVal(int64(h.FailureThreshold)),
	}
	if err := p.declare(ctx, h.Address, attrs, db.Address); err != nil {
		return platform.ProbeHandle{}, err
	}
	return h, nil
}

// Broker declares the single-node event broker spread over every private
// subnet of network.
func (p *Provisioner) Broker(ctx context.Context, network platform.NetworkHandle) (platform.BrokerHandle, error) {
	h := platform.BrokerHandle{
		Address:   nodeid.New(nodeid.KindBroker, platform.BrokerName),
		Bootstrap: p.opts.BrokerBootstrap,
	}
	attrs := map[string]cty.Value{
		"cluster_name":           cty.StringVal(platform.BrokerName),
		"kafka_version":          cty.StringVal(platform.BrokerKafkaVersion),
		"number_of_broker_nodes": cty.NumberIntVal(platform.BrokerNodes),
		"instance_type":          cty.StringVal(platform.BrokerInstanceType),
		"client_subnets":         token.Of(network.PrivateSubnets()).CtyValue(),
		"broker_az_distribution": cty.StringVal(platform.BrokerAZDistribution),
		"bootstrap_servers":      node.StringList(platform.SplitEndpoints(h.Bootstrap)),
	}
	if err := p.declare(ctx, h.Address, attrs, network.Address); err != nil {
		return platform.BrokerHandle{}, err
	}
	return h, nil
}

// Cluster declares the compute cluster and its discovery namespace.
func (p *Provisioner) Cluster(ctx context.Context, network platform.NetworkHandle, name string) (platform.ClusterHandle, error) {
	h := platform.ClusterHandle{
		Address:         nodeid.New(nodeid.KindCluster, name),
		Network:         network.Address,
		DiscoveryDomain: p.opts.DiscoveryDomain,
	}
	attrs := map[string]cty.Value{
		"vpc_id":              token.Of(network.VPCID()).CtyValue(),
		"discovery_namespace": cty.StringVal(h.DiscoveryDomain),
	}
	if err := p.declare(ctx, h.Address, attrs, network.Address); err != nil {
		return platform.ClusterHandle{}, err
	}
	return h, nil
}
