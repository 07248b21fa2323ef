package topology

import (
	"context"
	"testing"

	"github.com/specialistvlad/caregrid/internal/inmemorytopology"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/platform"
	"github.com/specialistvlad/caregrid/internal/provision"
	"github.com/specialistvlad/caregrid/internal/topologystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T) (*Deployment, *inmemorytopology.Store) {
	t.Helper()
	store := inmemorytopology.New()
	d, err := Assemble(context.Background(), store, provision.DefaultOptions())
	require.NoError(t, err)
	return d, store
}

func TestAssemble_FullPlatform(t *testing.T) {
	d, store := assemble(t)
	ctx := context.Background()

	assert.Len(t, store.AllNodes(ctx), 21)
	assert.Len(t, d.Workloads, 5)
	assert.Len(t, d.Databases, 2)
	assert.Len(t, d.Probes, 2)

	order, err := store.Order(ctx)
	require.NoError(t, err, "the declared edge set must be acyclic")
	assert.Len(t, order, 21)

	waves, err := store.Waves(ctx)
	require.NoError(t, err)
	position := map[nodeid.Address]int{}
	for i, wave := range waves {
		for _, addr := range wave {
			position[addr] = i
		}
	}
	for _, e := range store.Edges(ctx) {
		assert.Greater(t, position[e.From], position[e.To], "%s must come after %s", e.From, e.To)
	}

	require.NoError(t, CheckReferences(ctx, store))
}

func TestAssemble_PatientEdges(t *testing.T) {
	_, store := assemble(t)

	deps, err := store.DependenciesOf(context.Background(), nodeid.MustParse("workload.patient-service"))
	require.NoError(t, err)
	for _, want := range []string{
		"workload.billing-service",
		"database.patient-service-db",
		"probe.patient-service-db",
		"broker.kafka-cluster",
	} {
		assert.Contains(t, deps, nodeid.MustParse(want))
	}
}

func TestVerify_RemovingPatientEdgeFails(t *testing.T) {
	_, store := assemble(t)
	edges := store.Edges(context.Background())
	require.NoError(t, Verify(edges, PlatformRequirements()))

	patient := nodeid.MustParse("workload.patient-service")
	for _, raw := range []string{
		"workload.billing-service",
		"database.patient-service-db",
		"probe.patient-service-db",
		"broker.kafka-cluster",
	} {
		t.Run(raw, func(t *testing.T) {
			removed := topologystore.Edge{From: patient, To: nodeid.MustParse(raw)}
			var pruned []topologystore.Edge
			for _, e := range edges {
				if e != removed {
					pruned = append(pruned, e)
				}
			}
			require.Len(t, pruned, len(edges)-1)

			err := Verify(pruned, PlatformRequirements())
			var missing *MissingEdgeError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, removed.From, missing.From)
			assert.Equal(t, removed.To, missing.To)
		})
	}
}

func TestVerify_DetectsCycle(t *testing.T) {
	a := nodeid.MustParse("workload.a")
	b := nodeid.MustParse("workload.b")
	err := Verify([]topologystore.Edge{{From: a, To: b}, {From: b, To: a}}, nil)
	assert.ErrorContains(t, err, "cycle")
}

func TestAssemble_Environment(t *testing.T) {
	d, _ := assemble(t)

	auth := d.Workloads[AuthService]
	jwt := auth.Env["JWT_SECRET"]
	assert.False(t, jwt.IsStatic(), "the signing key must never be a literal")
	assert.Equal(t, "${secret.jwt-signing-key.value}", jwt.Template())

	patient := d.Workloads[PatientService]
	assert.Equal(t, "billing-service.patient-management.local", patient.Env["BILLING_SERVICE_ADDRESS"].Template())
	assert.Equal(t, "9001", patient.Env["BILLING_SERVICE_GRPC_PORT"].Template())
	assert.Equal(t,
		"jdbc:postgresql://${database.patient-service-db.endpoint_address}:${database.patient-service-db.endpoint_port}/patient-service-db",
		patient.Env[platform.EnvDatasourceURL].Template())

	gateway := d.Workloads[APIGateway]
	assert.Equal(t, "http://auth-service.patient-management.local:4005", gateway.Env["AUTH_SERVICE_URL"].Template())
	assert.Equal(t, "prod", gateway.Env["SPRING_PROFILES_ACTIVE"].Template())
	_, hasDatasource := gateway.Env[platform.EnvDatasourceURL]
	assert.False(t, hasDatasource)
}

func TestAssemble_CustomOptions(t *testing.T) {
	store := inmemorytopology.New()
	d, err := Assemble(context.Background(), store, provision.Options{
		BrokerBootstrap: "broker-1:9092",
		DiscoveryDomain: "care.internal",
	})
	require.NoError(t, err)
	assert.Equal(t, "billing-service.care.internal", d.Workloads[PatientService].Env["BILLING_SERVICE_ADDRESS"].Template())
	assert.Equal(t, "broker-1:9092", d.Workloads[BillingService].Env[platform.EnvKafkaBootstrapServers].Template())
}

func TestAssemble_Deterministic(t *testing.T) {
	ctx := context.Background()
	_, first := assemble(t)
	_, second := assemble(t)

	assert.Equal(t, first.Edges(ctx), second.Edges(ctx))
	a, b := first.AllNodes(ctx), second.AllNodes(ctx)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].LogicalID, b[i].LogicalID)
		assert.True(t, a[i].Attributes.RawEquals(b[i].Attributes), "attributes of %s differ", a[i].ID)
	}
}

func TestAssemble_RequirementErrors(t *testing.T) {
	testCases := []struct {
		name  string
		extra Requirement
		check func(t *testing.T, err error)
	}{
		{
			name: "undeclared target",
			extra: Requirement{
				Service:  workload(AnalyticsService),
				Requires: []nodeid.Address{workload("notification-service")},
			},
			check: func(t *testing.T, err error) {
				var unresolved *provision.UnresolvedDependencyError
				require.ErrorAs(t, err, &unresolved)
				assert.Equal(t, workload(AnalyticsService), unresolved.From)
				assert.Equal(t, workload("notification-service"), unresolved.To)
			},
		},
		{
			name: "target declared later",
			extra: Requirement{
				Service:  workload(BillingService),
				Requires: []nodeid.Address{workload(PatientService)},
			},
			check: func(t *testing.T, err error) {
				var unresolved *provision.UnresolvedDependencyError
				require.ErrorAs(t, err, &unresolved)
			},
		},
		{
			name: "undeclared service",
			extra: Requirement{
				Service:  workload("notification-service"),
				Requires: []nodeid.Address{nodeid.New(nodeid.KindBroker, platform.BrokerName)},
			},
			check: func(t *testing.T, err error) {
				var unknown *UnknownServiceError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, workload("notification-service"), unknown.Service)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAssembler(provision.DefaultOptions())
			a.Requirements = append(a.Requirements, tc.extra)
			_, err := a.Assemble(context.Background(), inmemorytopology.New())
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestAssemble_DuplicateCatalogEntry(t *testing.T) {
	a := NewAssembler(provision.DefaultOptions())
	a.Catalog.Services = append(a.Catalog.Services, a.Catalog.Services[1])

	_, err := a.Assemble(context.Background(), inmemorytopology.New())
	var dup *provision.DuplicateResourceError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, workload(BillingService), dup.ID)
}
