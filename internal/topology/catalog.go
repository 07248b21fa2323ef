package topology

import (
	"strconv"

	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/token"
)

// Names of the fixed platform resources.
const (
	NetworkName    = "patient-management-vpc"
	ClusterName    = "patient-management-cluster"
	SigningKeyName = "jwt-signing-key"

	AuthService      = "auth-service"
	BillingService   = "billing-service"
	AnalyticsService = "analytics-service"
	PatientService   = "patient-service"
	APIGateway       = "api-gateway"

	AuthDatabase    = "auth-service-db"
	PatientDatabase = "patient-service-db"

	authPort        = 4005
	billingGRPCPort = 9001
)

// Peers is what catalog entries may reference when building their extra
// configuration.
type Peers struct {
	Cluster    platform.ClusterHandle
	SigningKey platform.SecretHandle
	Workloads  map[string]platform.WorkloadHandle
}

// DatabaseEntry is one managed database of the catalog.
type DatabaseEntry struct {
	Name         string
	DatabaseName string
}

// ServiceEntry is one service of the catalog.
type ServiceEntry struct {
	Name     string
	Image    string
	Ports    []int
	Database string
	Env      func(Peers) map[string]token.Value
}

// GatewayEntry is the public gateway and the internal service it fronts.
type GatewayEntry struct {
	ServiceEntry
	Upstream string
}

// Catalog is the fixed description of the platform.
type Catalog struct {
	Databases []DatabaseEntry
	// Services are declared in order.
	Services []ServiceEntry
	Gateway  GatewayEntry
}

// PlatformCatalog returns the patient-management platform.
func PlatformCatalog() Catalog {
	return Catalog{
		Databases: []DatabaseEntry{
			{Name: AuthDatabase, DatabaseName: AuthDatabase},
			{Name: PatientDatabase, DatabaseName: PatientDatabase},
		},
		Services: []ServiceEntry{
			{
				Name:     AuthService,
				Image:    AuthService,
				Ports:    []int{authPort},
				Database: AuthDatabase,
				Env: func(p Peers) map[string]token.Value {
					return map[string]token.Value{
						"JWT_SECRET": token.Of(p.SigningKey.Ref()),
					}
				},
			},
			{
				Name:  BillingService,
				Image: BillingService,
				Ports: []int{4001, billingGRPCPort},
			},
			{
				Name:  AnalyticsService,
				Image: AnalyticsService,
				Ports: []int{4002},
			},
			{
				Name:     PatientService,
				Image:    PatientService,
				Ports:    []int{4000},
				Database: PatientDatabase,
				Env: func(p Peers) map[string]token.Value {
					return map[string]token.Value{
						"BILLING_SERVICE_ADDRESS":   token.Literal(p.Workloads[BillingService].DiscoveryName),
						"BILLING_SERVICE_GRPC_PORT": token.Literal(strconv.Itoa(billingGRPCPort)),
					}
				},
			},
		},
		Gateway: GatewayEntry{
			ServiceEntry: ServiceEntry{
				Name:  APIGateway,
				Image: APIGateway,
				Ports: []int{4004},
				Env: func(p Peers) map[string]token.Value {
					return map[string]token.Value{
						"SPRING_PROFILES_ACTIVE": token.Literal("prod"),
						"AUTH_SERVICE_URL":       token.Literal(p.Workloads[AuthService].URL(authPort)),
					}
				},
			},
			Upstream: AuthService,
		},
	}
}
