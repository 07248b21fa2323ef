package token

import (
	"testing"

	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	patientDB   = nodeid.New(nodeid.KindDatabase, "patient-service-db")
	addressRef  = NewRef(patientDB, "endpoint_address")
	portRef     = NewRef(patientDB, "endpoint_port")
	passwordRef = NewRef(nodeid.New(nodeid.KindSecret, "patient-service-db-credentials"), "password")
)

func jdbcURL() Value {
	return Concat(
		Literal("jdbc:postgresql://"),
		Of(addressRef),
		Literal(":"),
		Of(portRef),
		Literal("/patient-service-db"),
	)
}

func TestRef_Rendering(t *testing.T) {
	assert.Equal(t, "database.patient-service-db.endpoint_address", addressRef.Expr())
	assert.Equal(t, "${database.patient-service-db.endpoint_address}", addressRef.String())
}

func TestValue_Template(t *testing.T) {
	assert.Equal(t,
		"jdbc:postgresql://${database.patient-service-db.endpoint_address}:${database.patient-service-db.endpoint_port}/patient-service-db",
		jdbcURL().Template())

	t.Run("literal interpolation markers are escaped", func(t *testing.T) {
		assert.Equal(t, "cost: $${x} %%{if}", Literal("cost: ${x} %{if}").Template())
	})

	t.Run("concat merges literals", func(t *testing.T) {
		v := Concat(Literal("a"), Literal("b"), Of(portRef), Literal("c"))
		assert.Len(t, v.parts, 3)
		assert.Equal(t, "ab${database.patient-service-db.endpoint_port}c", v.Template())
	})
}

func TestValue_Refs(t *testing.T) {
	v := Concat(Of(portRef), Of(addressRef), Of(portRef))
	assert.Equal(t, []Ref{addressRef, portRef}, v.Refs())
	assert.Empty(t, Literal("static").Refs())
}

func TestValue_Static(t *testing.T) {
	s, ok := Literal("admin_user").Static()
	assert.True(t, ok)
	assert.Equal(t, "admin_user", s)

	assert.False(t, Of(passwordRef).IsStatic())
	assert.True(t, Value{}.IsStatic())
}

func TestParse_RoundTrip(t *testing.T) {
	for _, v := range []Value{
		jdbcURL(),
		Of(passwordRef),
		Literal("plain"),
		Literal("with ${braces}"),
	} {
		parsed, err := Parse(v.Template())
		require.NoError(t, err)
		assert.True(t, v.Equal(parsed), "expected %q, got %q", v.Template(), parsed.Template())
		assert.Equal(t, v.Refs(), parsed.Refs())
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := map[string]string{
		"unterminated":       "${database.x.endpoint_address",
		"function call":      "${upper(\"a\")}",
		"short traversal":    "${database.x}",
		"unknown kind":       "${bucket.x.arn}",
		"index traversal":    "${database.x[0].endpoint_address}",
		"template directive": "%{ if true }x%{ endif }",
	}
	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestParseRef(t *testing.T) {
	ref, err := ParseRef("database.auth-service-db.endpoint_port")
	require.NoError(t, err)
	assert.Equal(t, "database.auth-service-db", ref.Resource.String())
	assert.Equal(t, "endpoint_port", ref.Attribute)

	for _, bad := range []string{"database.db", "cluster.main.arn}-${cluster.main.arn", "unknown.x.y"} {
		_, err := ParseRef(bad)
		assert.Error(t, err, bad)
	}
}
