package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEcosystem = `
platforms:
  - id: plat-commerce
    name: commerce

services:
  - id: svc-gw
    name: gateway
    service_type: rest
    platform_id: plat-commerce
  - id: svc-orders
    name: orders
    service_type: grpc
  - id: svc-ledger
    name: ledger
    service_type: event_driven

flows:
  - id: flow-checkout
    name: checkout
    flow_type: api_flow

flow_steps:
  - flow_id: flow-checkout
    step_number: 0
    from_service_id: svc-gw
    to_service_id: svc-orders
  - flow_id: flow-checkout
    step_number: 1
    from_service_id: svc-orders
    to_service_id: svc-ledger

dependencies:
  - source_id: svc-gw
    target_id: svc-orders
    severity: high
  - source_id: svc-orders
    target_id: svc-ledger
  - source_id: svc-ledger
    target_id: svc-gw
    severity: low
`

func writeEcosystem(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eco.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testEcosystem), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBlastCommand_Text(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "blast", "svc-orders", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "Blast Radius: orders (svc-orders)")
	assert.Contains(t, out, "gateway")
	assert.Contains(t, out, "No immediate concerns. Continue monitoring.")
}

func TestBlastCommand_Simulate(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "blast", "svc-ledger", "--ecosystem", eco, "--simulate")
	require.NoError(t, err)

	assert.Contains(t, out, "Failure Simulation: ledger")
	assert.Contains(t, out, "Severity:")
}

func TestBlastCommand_JSON(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "blast", "svc-orders", "--ecosystem", eco, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ServiceID   string `json:"service_id"`
			BlastRadius int    `json:"blast_radius"`
			Platform    string `json:"platform"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "svc-orders", resp.Data.ServiceID)
	assert.Greater(t, resp.Data.BlastRadius, 0)
}

func TestBlastCommand_MissingEcosystem(t *testing.T) {
	_, err := runCommand(t, "blast", "svc-orders")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--ecosystem is required")
}

func TestDepsCommand_Direct(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "deps", "svc-gw", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "svc-gw -> svc-orders")
}

func TestDepsCommand_Transitive(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "deps", "svc-gw", "--ecosystem", eco, "--mode", "transitive")
	require.NoError(t, err)

	assert.Contains(t, out, "[hop 1] svc-gw -> svc-orders")
	assert.Contains(t, out, "[hop 2] svc-orders -> svc-ledger")
}

func TestDepsCommand_NoDependencies(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "deps", "svc-unknown", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "(no dependencies)")
}

func TestCyclesCommand(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "cycles", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "Circular dependencies: 1")
	assert.Contains(t, out, "svc-ledger -> svc-gw")
}

func TestExecCommand_Text(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "exec", "flow-checkout", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "Flow: checkout (flow-checkout)")
	assert.Contains(t, out, "STATUS_CODE_OK")
	assert.Contains(t, out, "5 spans")
}

func TestExecCommand_DeterministicForSeed(t *testing.T) {
	eco := writeEcosystem(t)

	first, err := runCommand(t, "exec", "flow-checkout", "--ecosystem", eco,
		"--seed", "7", "--format", "json")
	require.NoError(t, err)
	second, err := runCommand(t, "exec", "flow-checkout", "--ecosystem", eco,
		"--seed", "7", "--format", "json")
	require.NoError(t, err)

	// Wall-clock start instants differ between runs; everything derived from
	// the generator must not.
	var a, b struct {
		Data struct {
			TraceID   string  `json:"trace_id"`
			Duration  float64 `json:"duration_ms"`
			SpanCount int     `json:"span_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a.Data.TraceID, b.Data.TraceID)
	assert.Equal(t, a.Data.Duration, b.Data.Duration)
	assert.Equal(t, a.Data.SpanCount, b.Data.SpanCount)
}

func TestExecCommand_FailureInjection(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "exec", "flow-checkout", "--ecosystem", eco,
		"--fail", "--fail-step", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "STATUS_CODE_ERROR")
	assert.Contains(t, out, "Failed at step 0: gateway -> orders")
	assert.Contains(t, out, "3 spans")
}

func TestExecCommand_UnknownFlow(t *testing.T) {
	eco := writeEcosystem(t)

	_, err := runCommand(t, "exec", "no-such-flow", "--ecosystem", eco)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestExecCommand_All(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "exec", "--all", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "Flow: checkout")
}

func TestExecCommand_RequiresFlowOrAll(t *testing.T) {
	eco := writeEcosystem(t)

	_, err := runCommand(t, "exec", "--ecosystem", eco)

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOverviewCommand(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "overview", "--ecosystem", eco)
	require.NoError(t, err)

	assert.Contains(t, out, "Services:   3")
	assert.Contains(t, out, "Flows:      1")
	assert.Contains(t, out, "Edges:    3")
	assert.Contains(t, out, "Circular: 1")
}

func TestOverviewCommand_JSON(t *testing.T) {
	eco := writeEcosystem(t)

	out, err := runCommand(t, "overview", "--ecosystem", eco, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Entities map[string]int `json:"entities"`
			Graph    struct {
				Edges int `json:"edges"`
			} `json:"graph"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Data.Entities["service"])
	assert.Equal(t, 3, resp.Data.Graph.Edges)
}
