package topology

import (
	"context"
	"testing"

	"github.com/specialistvlad/caregrid/internal/inmemorytopology"
	"github.com/specialistvlad/caregrid/internal/node"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestCheckReferences(t *testing.T) {
	ctx := context.Background()
	network := nodeid.MustParse("network.vpc")
	db := nodeid.MustParse("database.db")
	probe := nodeid.MustParse("probe.db")

	testCases := []struct {
		name    string
		linked  bool
		target  string
		wantErr func(t *testing.T, err error)
	}{
		{
			name:   "direct dependency",
			linked: true,
			target: "${database.db.endpoint_address}",
		},
		{
			name:   "transitive dependency",
			linked: true,
			target: "${network.vpc.vpc_id}",
		},
		{
			name:   "not sequenced",
			target: "${database.db.endpoint_address}",
			wantErr: func(t *testing.T, err error) {
				var unsequenced *UnsequencedReferenceError
				require.ErrorAs(t, err, &unsequenced)
				assert.Equal(t, probe, unsequenced.From)
				assert.Equal(t, db, unsequenced.Ref.Resource)
			},
		},
		{
			name:   "undeclared resource",
			linked: true,
			target: "${secret.creds.password}",
			wantErr: func(t *testing.T, err error) {
				var unresolved *provision.UnresolvedDependencyError
				require.ErrorAs(t, err, &unresolved)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := inmemorytopology.New()
			require.NoError(t, store.AddNode(ctx, node.New(network, nil)))
			require.NoError(t, store.AddNode(ctx, node.New(db, nil)))
			require.NoError(t, store.AddDependency(ctx, db, network))
			require.NoError(t, store.AddNode(ctx, node.New(probe, map[string]cty.Value{
				"address": cty.StringVal(tc.target),
			})))
			if tc.linked {
				require.NoError(t, store.AddDependency(ctx, probe, db))
			}

			err := CheckReferences(ctx, store)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			tc.wantErr(t, err)
		})
	}
}

func TestPlatformRequirements_Index(t *testing.T) {
	idx := index(append(PlatformRequirements(), Requirement{
		Service:  workload(PatientService),
		Requires: []nodeid.Address{workload(AuthService)},
	}))
	patient := idx[workload(PatientService)]
	assert.Len(t, patient, 5)
	assert.Equal(t, workload(AuthService), patient[4])
}
