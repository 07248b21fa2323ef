package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "hcl output", mutate: func(c *Config) { c.Format = "hcl" }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "LogLevel"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LogFormat"},
		{name: "bad output format", mutate: func(c *Config) { c.Format = "toml" }, wantErr: "Format"},
		{name: "no broker", mutate: func(c *Config) { c.BrokerBootstrap = "" }, wantErr: "BrokerBootstrap"},
		{name: "broker without port", mutate: func(c *Config) { c.BrokerBootstrap = "b-1" }, wantErr: "BrokerBootstrap"},
		{name: "bad domain", mutate: func(c *Config) { c.DiscoveryDomain = "not a domain" }, wantErr: "DiscoveryDomain"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			got, err := NewConfig(cfg)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, *got)
		})
	}
}

func TestSynth_IsDeterministic(t *testing.T) {
	ctx := context.Background()

	first, out1, logs := SetupAppTest(t, ptr(DefaultConfig()))
	require.NoError(t, first.Synth(ctx))
	second, out2, _ := SetupAppTest(t, ptr(DefaultConfig()))
	require.NoError(t, second.Synth(ctx))

	assert.NotEmpty(t, out1.String())
	assert.Equal(t, out1.String(), out2.String())
	assert.Contains(t, logs.String(), "Descriptor synthesized.")
	assert.NotContains(t, out1.String(), "level=", "logs must not leak into the descriptor")

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out1.String()), &doc))
	assert.Len(t, doc["resources"], 21)
}

func TestSynth_WritesFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "dot"
	cfg.OutPath = filepath.Join(t.TempDir(), "platform.dot")

	a, out, _ := SetupAppTest(t, &cfg)
	require.NoError(t, a.Synth(context.Background()))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(cfg.OutPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph caregrid {"))
}

func TestValidate(t *testing.T) {
	a, out, _ := SetupAppTest(t, ptr(DefaultConfig()))
	require.NoError(t, a.Validate(context.Background()))
	assert.Equal(t, "topology is valid: 21 resources, 29 edges, 4 requirement rows\n", out.String())
}

func TestPlan(t *testing.T) {
	a, out, _ := SetupAppTest(t, ptr(DefaultConfig()))
	require.NoError(t, a.Plan(context.Background()))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "wave 0:\n"))
	assert.Contains(t, text, "wave 4:\n  workload.api-gateway\n")
}

func TestContainers(t *testing.T) {
	values := `
database.auth-service-db.endpoint_address: auth-db.internal
database.auth-service-db.endpoint_port: 5432
database.patient-service-db.endpoint_address: patient-db.internal
database.patient-service-db.endpoint_port: 5433
secret.auth-service-db-credentials.password: a
secret.patient-service-db-credentials.password: p
secret.jwt-signing-key.value: k
`
	cfg := DefaultConfig()
	cfg.ValuesPath = filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(cfg.ValuesPath, []byte(values), 0o600))

	a, out, _ := SetupAppTest(t, &cfg)
	require.NoError(t, a.Containers(context.Background()))

	var specs []struct {
		Name   string
		Config struct {
			Env []string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(out.String()), &specs))
	require.Len(t, specs, 5)

	byName := map[string][]string{}
	for _, s := range specs {
		byName[s.Name] = s.Config.Env
	}
	assert.Contains(t, byName["auth-service"], "JWT_SECRET=k")
	assert.Contains(t, byName["patient-service"], "SPRING_DATASOURCE_URL=jdbc:postgresql://patient-db.internal:5433/patient-service-db")
}

func TestContainers_MissingValues(t *testing.T) {
	a, _, _ := SetupAppTest(t, ptr(DefaultConfig()))
	err := a.Containers(context.Background())
	assert.ErrorContains(t, err, "has not been materialized")
}

func ptr[T any](v T) *T {
	return &v
}
