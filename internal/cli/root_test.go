package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "caregrid", cmd.Use)
	assert.Contains(t, cmd.Long, "dependency order")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"synth", "validate", "plan", "containers"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	testCases := []struct {
		flag string
		def  string
	}{
		{flag: "log-level", def: "info"},
		{flag: "log-format", def: "text"},
		{flag: "broker-bootstrap", def: "localhost.localstack.cloud:4510,localhost.localstack.cloud:4511,localhost.localstack.cloud:4512"},
		{flag: "discovery-domain", def: "patient-management.local"},
	}
	for _, tc := range testCases {
		t.Run(tc.flag, func(t *testing.T) {
			f := cmd.PersistentFlags().Lookup(tc.flag)
			require.NotNil(t, f)
			assert.Equal(t, tc.def, f.DefValue)
		})
	}
}

func TestSynthCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	synthCmd, _, err := cmd.Find([]string{"synth"})
	require.NoError(t, err)

	formatFlag := synthCmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "json", formatFlag.DefValue)

	outFlag := synthCmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "o", outFlag.Shorthand)
}

func TestContainersCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	containersCmd, _, err := cmd.Find([]string{"containers"})
	require.NoError(t, err)

	valuesFlag := containersCmd.Flags().Lookup("values")
	require.NotNil(t, valuesFlag)
	assert.Equal(t, "", valuesFlag.DefValue)
}

func TestExecute(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "help", args: []string{}, wantOut: "Usage:"},
		{name: "validate", args: []string{"validate"}, wantOut: "topology is valid: 21 resources"},
		{name: "plan", args: []string{"plan"}, wantOut: "wave 0:\n"},
		{name: "synth mermaid", args: []string{"synth", "--format", "mermaid"}, wantOut: "graph TD"},
		{name: "unknown command", args: []string{"deploy"}, wantCode: 2, wantErr: "unknown command"},
		{name: "unknown flag", args: []string{"synth", "--grid", "x"}, wantCode: 2, wantErr: "unknown flag"},
		{name: "bad log level", args: []string{"--log-level", "loud", "plan"}, wantCode: 2, wantErr: "LogLevel"},
		{name: "bad format", args: []string{"synth", "-f", "toml"}, wantCode: 2, wantErr: "Format"},
		{name: "bad broker endpoint", args: []string{"--broker-bootstrap", "b-1:9092,%{if true}x%{endif}", "validate"}, wantCode: 2, wantErr: "BrokerBootstrap"},
		{name: "bad domain", args: []string{"--discovery-domain", "no spaces please", "validate"}, wantCode: 2, wantErr: "DiscoveryDomain"},
		{name: "unresolved values", args: []string{"containers"}, wantCode: 1, wantErr: "has not been materialized"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			errOut := &bytes.Buffer{}

			err := Execute(tc.args, out, errOut)
			if tc.wantCode == 0 {
				require.NoError(t, err)
				assert.Contains(t, out.String(), tc.wantOut)
				return
			}

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, tc.wantCode, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}

func TestExecute_SynthToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platform.hcl")
	out := &bytes.Buffer{}

	err := Execute([]string{"synth", "--format", "hcl", "--out", path}, out, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `resource "workload" "api-gateway"`))
}

func TestExecute_LogsGoToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := Execute([]string{"--log-format", "json", "synth"}, out, errOut)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), `"msg":"Descriptor synthesized."`)
	assert.NotContains(t, out.String(), `"msg"`)
}
