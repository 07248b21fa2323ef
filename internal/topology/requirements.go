package topology

import (
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/platform"
)

// Requirement lists the resources a service workload must be realized after.
type Requirement struct {
	Service  nodeid.Address
	Requires []nodeid.Address
}

// PlatformRequirements returns the ordering table of the platform. It covers
// every service-level edge, including the ones the service provisioner
// already records, so the whole policy reads in one place.
func PlatformRequirements() []Requirement {
	broker := nodeid.New(nodeid.KindBroker, platform.BrokerName)
	return []Requirement{
		{
			Service: workload(AuthService),
			Requires: []nodeid.Address{
				nodeid.New(nodeid.KindDatabase, AuthDatabase),
				nodeid.New(nodeid.KindProbe, AuthDatabase),
				nodeid.New(nodeid.KindSecret, SigningKeyName),
			},
		},
		{
			Service:  workload(AnalyticsService),
			Requires: []nodeid.Address{broker},
		},
		{
			Service: workload(PatientService),
			Requires: []nodeid.Address{
				nodeid.New(nodeid.KindDatabase, PatientDatabase),
				nodeid.New(nodeid.KindProbe, PatientDatabase),
				workload(BillingService),
				broker,
			},
		},
		{
			Service:  workload(APIGateway),
			Requires: []nodeid.Address{workload(AuthService)},
		},
	}
}

func workload(name string) nodeid.Address {
	return nodeid.New(nodeid.KindWorkload, name)
}

// index groups requirement rows by service. Rows for the same service are
// merged in table order.
func index(reqs []Requirement) map[nodeid.Address][]nodeid.Address {
	idx := make(map[nodeid.Address][]nodeid.Address, len(reqs))
	for _, r := range reqs {
		idx[r.Service] = append(idx[r.Service], r.Requires...)
	}
	return idx
}
