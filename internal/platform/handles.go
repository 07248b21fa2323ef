package platform

import (
	"net"
	"strconv"
	"time"

	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
)

// NetworkHandle describes the isolated multi-zone network.
type NetworkHandle struct {
	Address nodeid.Address
	MaxAZs  int
}

// VPCID references the materialized network id.
func (h NetworkHandle) VPCID() token.Ref {
	return token.NewRef(h.Address, AttrVPCID)
}

// PrivateSubnets references the ids of every private subnet.
func (h NetworkHandle) PrivateSubnets() token.Ref {
	return token.NewRef(h.Address, AttrPrivateSubnetIDs)
}

// PublicSubnets references the ids of every public subnet.
func (h NetworkHandle) PublicSubnets() token.Ref {
	return token.NewRef(h.Address, AttrPublicSubnetIDs)
}

// SecretConfig describes a generated secret.
type SecretConfig struct {
	Name string `validate:"required,resource_name"`
	// Username is stored next to the generated field when set.
	Username string
	// Field is the name of the generated attribute.
	Field string `validate:"required,oneof=password value"`
}

// SecretHandle is an opaque, generated secret. Its value is never known to
// the synthesis pass.
type SecretHandle struct {
	Address  nodeid.Address
	Username string
	Field    string
}

// Ref references the generated secret material.
func (h SecretHandle) Ref() token.Ref {
	return token.NewRef(h.Address, h.Field)
}

// DatabaseHandle describes a managed relational database.
type DatabaseHandle struct {
	Address      nodeid.Address
	Network      nodeid.Address
	Credentials  SecretHandle
	DatabaseName string
}

// EndpointAddress references the host name of the live instance.
func (h DatabaseHandle) EndpointAddress() token.Ref {
	return token.NewRef(h.Address, AttrEndpointAddress)
}

// EndpointPort references the port of the live instance.
func (h DatabaseHandle) EndpointPort() token.Ref {
	return token.NewRef(h.Address, AttrEndpointPort)
}

// Password references the generated administrative password.
func (h DatabaseHandle) Password() token.Ref {
	return h.Credentials.Ref()
}

// ProbeHandle is a periodic reachability check against a database. It
// refers to its target by address only.
type ProbeHandle struct {
	Address          nodeid.Address
	Target           nodeid.Address
	Protocol         string
	Interval         time.Duration
	FailureThreshold int
}

// BrokerHandle describes the event broker cluster.
type BrokerHandle struct {
	Address   nodeid.Address
	Bootstrap string
}

// ClusterHandle is the placement group every workload registers into.
type ClusterHandle struct {
	Address         nodeid.Address
	Network         nodeid.Address
	DiscoveryDomain string
}

// ARN references the materialized cluster identifier.
func (h ClusterHandle) ARN() token.Ref {
	return token.NewRef(h.Address, AttrClusterARN)
}

// DiscoveryName returns the fully qualified discovery name of a service.
func (h ClusterHandle) DiscoveryName(service string) string {
	return service + "." + h.DiscoveryDomain
}

// LogGroupHandle is the log sink of one workload.
type LogGroupHandle struct {
	Address       nodeid.Address
	Name          string
	StreamPrefix  string
	RetentionDays int
}

// LoadBalancerHandle is the public entry point in front of the gateway.
type LoadBalancerHandle struct {
	Address      nodeid.Address
	ListenerPort int
	TargetPort   int
	GracePeriod  time.Duration
}

// TargetGroup references the target group the workload registers into.
func (h LoadBalancerHandle) TargetGroup() token.Ref {
	return token.NewRef(h.Address, AttrTargetGroupARN)
}

// WorkloadHandle is a deployed service.
type WorkloadHandle struct {
	Address       nodeid.Address
	Service       string
	Image         string
	CPU           int
	MemoryMiB     int
	Ports         []int
	Env           map[string]token.Value
	LogGroup      LogGroupHandle
	DiscoveryName string
}

// URL returns the static in-cluster HTTP address of the workload on port.
func (h WorkloadHandle) URL(port int) string {
	return "http://" + net.JoinHostPort(h.DiscoveryName, strconv.Itoa(port))
}
