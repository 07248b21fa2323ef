package nodeid

// Kind is the resource type segment of an address.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindSecret       Kind = "secret"
	KindDatabase     Kind = "database"
	KindProbe        Kind = "probe"
	KindBroker       Kind = "broker"
	KindCluster      Kind = "cluster"
	KindLogGroup     Kind = "log_group"
	KindLoadBalancer Kind = "load_balancer"
	KindWorkload     Kind = "workload"
)

// kinds lists every kind the platform knows how to declare.
var kinds = map[Kind]struct{}{
	KindNetwork:      {},
	KindSecret:       {},
	KindDatabase:     {},
	KindProbe:        {},
	KindBroker:       {},
	KindCluster:      {},
	KindLogGroup:     {},
	KindLoadBalancer: {},
	KindWorkload:     {},
}

// Valid reports whether k is a known resource kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Address is the structured representation of a unique resource identifier.
type Address struct {
	Kind Kind
	Name string
}
