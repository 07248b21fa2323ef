package nodeid

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddress_String(t *testing.T) {
	assert.Equal(t, "database.auth-service-db", New(KindDatabase, "auth-service-db").String())
	assert.Equal(t, "", Address{}.String())
	assert.True(t, Address{}.IsZero())
}

func TestAddress_RoundTrip(t *testing.T) {
	for _, raw := range []string{"network.patient-management-vpc", "secret.jwt-signing-key", "load_balancer.api-gateway"} {
		addr, err := Parse(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, addr.String())
	}
}

func TestCompare_SortsLexically(t *testing.T) {
	addrs := []Address{
		New(KindWorkload, "billing-service"),
		New(KindDatabase, "patient-service-db"),
		New(KindWorkload, "auth-service"),
	}
	slices.SortFunc(addrs, Compare)
	assert.Equal(t, []Address{
		New(KindDatabase, "patient-service-db"),
		New(KindWorkload, "auth-service"),
		New(KindWorkload, "billing-service"),
	}, addrs)
	assert.True(t, addrs[0].Less(addrs[1]))
}
