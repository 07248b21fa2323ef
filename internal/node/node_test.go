package node

import (
	"testing"

	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestNew(t *testing.T) {
	id := nodeid.New(nodeid.KindWorkload, "billing-service")
	n := New(id, map[string]cty.Value{"cpu": cty.NumberIntVal(256)})

	assert.Equal(t, nodeid.KindWorkload, n.Kind())
	assert.True(t, cty.NumberIntVal(256).RawEquals(n.Attribute("cpu")))
	assert.Equal(t, cty.NilVal, n.Attribute("memory"))
	assert.Equal(t, LogicalID(id), n.LogicalID)

	empty := New(id, nil)
	assert.True(t, empty.Attributes.RawEquals(cty.EmptyObjectVal))
}

func TestLogicalID_IsStable(t *testing.T) {
	a := nodeid.New(nodeid.KindDatabase, "auth-service-db")
	b := nodeid.New(nodeid.KindDatabase, "patient-service-db")
	assert.Equal(t, LogicalID(a), LogicalID(a))
	assert.NotEqual(t, LogicalID(a), LogicalID(b))
}

func TestReferences(t *testing.T) {
	db := nodeid.New(nodeid.KindDatabase, "patient-service-db")
	secret := nodeid.New(nodeid.KindSecret, "patient-service-db-credentials")
	url := token.Concat(
		token.Literal("jdbc:postgresql://"),
		token.Of(token.NewRef(db, "endpoint_address")),
		token.Literal("/patient-service-db"),
	)

	n := New(nodeid.New(nodeid.KindWorkload, "patient-service"), map[string]cty.Value{
		"environment": TokenMap(map[string]token.Value{
			"URL":      url,
			"PASSWORD": token.Of(token.NewRef(secret, "password")),
			"USER":     token.Literal("admin_user"),
		}),
		"ports": NumberList([]int{4000}),
	})

	refs, err := n.References()
	require.NoError(t, err)
	assert.Equal(t, []token.Ref{
		token.NewRef(db, "endpoint_address"),
		token.NewRef(secret, "password"),
	}, refs)
}

func TestValueHelpers_EmptyCollections(t *testing.T) {
	assert.True(t, StringList(nil).Type().Equals(cty.List(cty.String)))
	assert.True(t, NumberList(nil).Type().Equals(cty.List(cty.Number)))
	assert.True(t, TokenMap(nil).Type().Equals(cty.Map(cty.String)))
	assert.Equal(t, 0, NumberList(nil).LengthInt())
}

func TestStringList_StoresLiteralText(t *testing.T) {
	items := []string{
		"b-1:9092",
		"%{if true}x%{endif}",
		"${database.db.endpoint_address}",
	}
	list := StringList(items)
	assert.Equal(t, "%%{if true}x%%{endif}", list.Index(cty.NumberIntVal(1)).AsString())
	assert.Equal(t, "$${database.db.endpoint_address}", list.Index(cty.NumberIntVal(2)).AsString())

	n := New(nodeid.New(nodeid.KindBroker, "kafka-cluster"), map[string]cty.Value{
		"bootstrap_servers": list,
	})
	refs, err := n.References()
	require.NoError(t, err)
	assert.Empty(t, refs)
}
