package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/mlfqs-predict/internal/testutil"
	sim "github.com/inference-sim/mlfqs-predict/sim"
	"github.com/inference-sim/mlfqs-predict/sim/trace"
)

// executeRoot runs the CLI with args and returns what it wrote to stdout.
func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	// Flag values persist across Execute calls; restore the defaults.
	logLevel, scenarioPath, usageModel, outputFormat, showSummary = "warn", "", sim.UsageModelFloat, string(trace.FormatTuple), false

	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestRoot_NoArgs_PrintsDefaultPrediction(t *testing.T) {
	// GIVEN no arguments
	// WHEN the root command runs
	output := executeRoot(t)

	// THEN the ten mlfqs-c2 lines are printed to stdout
	assert.Equal(t, testutil.LoadGolden(t, "mlfqs_c2_float"), output)
}

func TestRoot_RepeatedRunsAreByteIdentical(t *testing.T) {
	assert.Equal(t, executeRoot(t), executeRoot(t))
}

func TestRoot_FixedPointArithmetic(t *testing.T) {
	output := executeRoot(t, "--arithmetic", "fixed-point")
	assert.Equal(t, testutil.LoadGolden(t, "mlfqs_c2_fixed_point"), output)
}

func TestRoot_SummaryAppendedAfterTrace(t *testing.T) {
	output := executeRoot(t, "--summary")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Greater(t, len(lines), 10)
	assert.Equal(t, "36 [14  9 11] [59 58 56] A", lines[9])
	assert.Contains(t, output, "Overrides            : 2 (2 changed the pick)")
	assert.Contains(t, output, "Ran B")
}

func TestRoot_ScenarioFile(t *testing.T) {
	// GIVEN a scenario with a single thread and no overrides
	path := filepath.Join(t.TempDir(), "solo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: solo
load_avg: 3
quantum_ticks: 4
iterations: 2
threads:
  - name: S
    nice: 0
`), 0644))

	// WHEN predicted
	output := executeRoot(t, "--scenario", path)

	// THEN the only thread runs every quantum
	assert.Equal(t, "0 [3] [63] S\n4 [6] [62] S\n", output)
}

func TestScenarioCommand_RoundTrips(t *testing.T) {
	// GIVEN the built-in scenario dumped as YAML
	dump := executeRoot(t, "scenario")
	assert.Contains(t, dump, "name: mlfqs-c2")
	path := filepath.Join(t.TempDir(), "dumped.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dump), 0644))

	// WHEN loaded back
	sc, err := sim.LoadScenario(path)

	// THEN it equals the built-in scenario
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultScenario(), sc)
}

func TestRunPrediction_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runPrediction(&buf, sim.DefaultScenario(), sim.UsageModelFloat, trace.FormatJSON, false))
	assert.Contains(t, buf.String(), `"usage_model": "float"`)
	assert.Contains(t, buf.String(), `"label": "B"`)
}

func TestResolveScenario_EmptyPathUsesDefault(t *testing.T) {
	sc, err := resolveScenario("", sim.UsageModelFloat)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultScenario(), sc)

	_, err = resolveScenario(filepath.Join(t.TempDir(), "nope.yaml"), sim.UsageModelFloat)
	assert.Error(t, err)
}

func TestResolveScenario_RejectsFixedPointOverflow(t *testing.T) {
	// GIVEN a scenario whose load_avg is valid but exceeds 17.14 range
	path := filepath.Join(t.TempDir(), "huge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: huge
load_avg: 131071.5
quantum_ticks: 4
iterations: 10
threads:
  - name: A
    nice: 0
`), 0644))

	// WHEN resolved for the fixed-point model
	_, err := resolveScenario(path, sim.UsageModelFixedPoint)

	// THEN it is rejected before any simulation runs
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load_avg")

	// AND the float model still accepts it
	_, err = resolveScenario(path, sim.UsageModelFloat)
	assert.NoError(t, err)
}

func TestRoot_JSONSummaryIsOneDocument(t *testing.T) {
	// GIVEN json output with a summary
	output := executeRoot(t, "--format", "json", "--summary")

	// THEN stdout parses as a single JSON value holding both
	var report trace.Report
	require.NoError(t, json.Unmarshal([]byte(output), &report))
	require.NotNil(t, report.Trace)
	require.NotNil(t, report.Summary)
	assert.Len(t, report.Trace.Quanta, 10)
	assert.Equal(t, 2, report.Summary.OverrideCount)
}

func TestRoot_YAMLSummaryIsOneDocument(t *testing.T) {
	output := executeRoot(t, "--format", "yaml", "--summary")

	var report trace.Report
	require.NoError(t, yaml.Unmarshal([]byte(output), &report))
	require.NotNil(t, report.Trace)
	require.NotNil(t, report.Summary)
	assert.Len(t, report.Trace.Quanta, 10)
	assert.Equal(t, map[string]int{"A": 8, "B": 2}, report.Summary.RunDistribution)
}
