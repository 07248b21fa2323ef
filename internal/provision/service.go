package provision

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/zclconf/go-cty/cty"
)

// portMappingType is the element type of a workload's port_mappings.
var portMappingType = cty.Object(map[string]cty.Type{
	"container_port": cty.Number,
	"host_port":      cty.Number,
	"protocol":       cty.String,
})

// Service declares a workload for spec registered into cluster, with its own
// log group. When spec owns a database, probe must be that database's probe
// or nil.
func (p *Provisioner) Service(ctx context.Context, cluster platform.ClusterHandle, spec platform.ServiceSpec, probe *platform.ProbeHandle) (platform.WorkloadHandle, error) {
	return p.service(ctx, cluster, spec, probe, nil, nil)
}

// Gateway declares a public load balancer and a workload behind it. The
// gateway is sequenced after upstream, the internal service it routes to.
func (p *Provisioner) Gateway(ctx context.Context, cluster platform.ClusterHandle, spec platform.ServiceSpec, upstream platform.WorkloadHandle) (platform.WorkloadHandle, error) {
	if err := p.checkFree(ctx, nodeid.New(nodeid.KindWorkload, spec.Name())); err != nil {
		return platform.WorkloadHandle{}, err
	}
	ports := spec.Ports()
	if len(ports) == 0 {
		return platform.WorkloadHandle{}, &platform.InvalidSpecError{
			Service: spec.Name(),
			Err:     errors.New("a gateway needs at least one port to forward to"),
		}
	}

	lb := platform.LoadBalancerHandle{
		Address:      nodeid.New(nodeid.KindLoadBalancer, spec.Name()),
		ListenerPort: platform.LoadBalancerListenerPort,
		TargetPort:   ports[0],
		GracePeriod:  platform.HealthCheckGracePeriod,
	}
	lbAttrs := map[string]cty.Value{
		"internet_facing": cty.True,
		"listener_port":   cty.NumberIntVal(int64(lb.ListenerPort)),
		"protocol":        cty.StringVal(platform.LoadBalancerProtocol),
		"target_port":     cty.NumberIntVal(int64(lb.TargetPort)),
		"subnets":         token.Of(token.NewRef(cluster.Network, platform.AttrPublicSubnetIDs)).CtyValue(),
	}
	if err := p.declare(ctx, lb.Address, lbAttrs, cluster.Network); err != nil {
		return platform.WorkloadHandle{}, err
	}

	extra := map[string]cty.Value{
		"target_group":                      token.Of(lb.TargetGroup()).CtyValue(),
		"health_check_grace_period_seconds": cty.NumberIntVal(int64(lb.GracePeriod.Seconds())),
	}
	return p.service(ctx, cluster, spec, nil, extra, []nodeid.Address{lb.Address, upstream.Address})
}

func (p *Provisioner) service(
	ctx context.Context,
	cluster platform.ClusterHandle,
	spec platform.ServiceSpec,
	probe *platform.ProbeHandle,
	extra map[string]cty.Value,
	extraDeps []nodeid.Address,
) (platform.WorkloadHandle, error) {
	addr := nodeid.New(nodeid.KindWorkload, spec.Name())
	if err := p.checkFree(ctx, addr); err != nil {
		return platform.WorkloadHandle{}, err
	}

	db, hasDB := spec.Database()
	if probe != nil && (!hasDB || probe.Target != db.Address) {
		return platform.WorkloadHandle{}, &platform.InvalidSpecError{
			Service: spec.Name(),
			Err:     fmt.Errorf("probe %s does not watch the service's database", probe.Address),
		}
	}

	logGroup, err := p.logGroup(ctx, spec)
	if err != nil {
		return platform.WorkloadHandle{}, err
	}

	h := platform.WorkloadHandle{
		Address:       addr,
		Service:       spec.Name(),
		Image:         spec.Image(),
		CPU:           platform.WorkloadCPU,
		MemoryMiB:     platform.WorkloadMemoryMiB,
		Ports:         spec.Ports(),
		Env:           p.environment(spec),
		LogGroup:      logGroup,
		DiscoveryName: cluster.DiscoveryName(spec.Name()),
	}

	attrs := map[string]cty.Value{
		"service_name":     cty.StringVal(h.Service),
		"image":            cty.StringVal(h.Image),
		"cpu":              cty.NumberIntVal(int64(h.CPU)),
		"memory_mib":       cty.NumberIntVal(int64(h.MemoryMiB)),
		"desired_count":    cty.NumberIntVal(platform.WorkloadDesired),
		"assign_public_ip": cty.False,
		"cluster":          token.Of(cluster.ARN()).CtyValue(),
		"discovery_name":   cty.StringVal(h.DiscoveryName),
		"port_mappings":    portMappings(h.Ports),
		"environment":      node.TokenMap(h.Env),
		"logging": cty.ObjectVal(map[string]cty.Value{
			"driver":        cty.StringVal(platform.LogDriver),
			"group":         cty.StringVal(logGroup.Name),
			"stream_prefix": cty.StringVal(logGroup.StreamPrefix),
		}),
	}
	maps.Copy(attrs, extra)

	deps := []nodeid.Address{cluster.Address, logGroup.Address}
	if hasDB {
		deps = append(deps, db.Address)
	}
	if probe != nil {
		deps = append(deps, probe.Address)
	}
	deps = append(deps, extraDeps...)

	if err := p.declare(ctx, addr, attrs, deps...); err != nil {
		return platform.WorkloadHandle{}, err
	}
	return h, nil
}

func (p *Provisioner) logGroup(ctx context.Context, spec platform.ServiceSpec) (platform.LogGroupHandle, error) {
	h := platform.LogGroupHandle{
		Address:       nodeid.New(nodeid.KindLogGroup, spec.Name()),
		Name:          platform.LogGroupPrefix + spec.Image(),
		StreamPrefix:  spec.Image(),
		RetentionDays: platform.LogRetentionDays,
	}
	attrs := map[string]cty.Value{
		"name":           cty.StringVal(h.Name),
		"retention_days": cty.NumberIntVal(int64(h.RetentionDays)),
		"removal_policy": cty.StringVal(platform.RemovalDestroy),
	}
	if err := p.declare(ctx, h.Address, attrs); err != nil {
		return platform.LogGroupHandle{}, err
	}
	return h, nil
}

// environment assembles the workload environment. Later steps override
// earlier ones: broker default, derived datasource block, caller extras.
func (p *Provisioner) environment(spec platform.ServiceSpec) map[string]token.Value {
	env := map[string]token.Value{
		platform.EnvKafkaBootstrapServers: token.Literal(p.opts.BrokerBootstrap),
	}

	if db, ok := spec.Database(); ok {
		env[platform.EnvDatasourceURL] = token.Concat(
			token.Literal("jdbc:postgresql://"),
			token.Of(db.EndpointAddress()),
			token.Literal(":"),
			token.Of(db.EndpointPort()),
			token.Literal("/"+spec.DatabaseName()),
		)
		env[platform.EnvDatasourceUsername] = token.Literal(platform.DatabaseAdminUser)
		env[platform.EnvDatasourcePassword] = token.Of(db.Password())
		env[platform.EnvHibernateDDLAuto] = token.Literal(platform.HibernateDDLAutoUpdate)
		env[platform.EnvSQLInitMode] = token.Literal(platform.SQLInitModeAlways)
		env[platform.EnvHikariInitializationFailMs] = token.Literal(platform.HikariInitializationFail)
	}

	maps.Copy(env, spec.Env())
	return env
}

func (p *Provisioner) checkFree(ctx context.Context, addr nodeid.Address) error {
	if _, exists := p.store.GetNode(ctx, addr); exists {
		return &DuplicateResourceError{ID: addr}
	}
	return nil
}

func portMappings(ports []int) cty.Value {
	objs := make([]cty.Value, len(ports))
	for i, port := range ports {
		objs[i] = cty.ObjectVal(map[string]cty.Value{
			"container_port": cty.NumberIntVal(int64(port)),
			"host_port":      cty.NumberIntVal(int64(port)),
			"protocol":       cty.StringVal("tcp"),
		})
	}
	return node.ObjectList(portMappingType, objs)
}
