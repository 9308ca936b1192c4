package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reversedScenario = `name: reversed
description: "reversed three"
items: [c, b, a]
strategy:
  order: [a, b, c]
assertions:
  - type: ranking
    ranking: [[a], [b], [c]]
`

func writeScenarioFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestTestCommandMissingArgs(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run("test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run("test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "scenarios directory not found")
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun("test", filepath.Join("..", "harness", "testdata", "scenarios"))
	assert.Contains(t, out, "✓ tie_by_key")
	assert.Contains(t, out, "0 failed")
}

func TestTestCommandEmptyDir(t *testing.T) {
	env := newCLIEnv(t)
	assert.Contains(t, env.mustRun("test", t.TempDir()), "No scenarios found.")
}

func TestTestCommandFailure(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()
	writeScenarioFile(t, dir, "wrong.yaml", `name: wrong
description: "expects the wrong winner"
items: [a, b]
strategy:
  order: [a, b]
assertions:
  - type: ranking
    ranking: [[b], [a]]
`)
	writeScenarioFile(t, dir, "broken.yaml", "name: [\n")

	resp, err := env.runJSON("test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, ErrCodeScenarioFailed, resp.Error.Code)

	var result TestResult
	decodeData(t, resp, &result)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Failed)
}

func TestTestCommandFilter(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()
	writeScenarioFile(t, dir, "keep.yaml", reversedScenario)
	writeScenarioFile(t, dir, "skip.yaml", "not: valid\n")

	out := env.mustRun("test", dir, "--filter", "ke*")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandGoldenUpdateAndMatch(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()
	writeScenarioFile(t, dir, "reversed.yaml", reversedScenario)

	out := env.mustRun("test", dir, "--update")
	assert.Contains(t, out, "✓ reversed (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "reversed.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"ranking":[["a"],["b"],["c"]]`)

	resp, err := env.runJSON("test", dir)
	require.NoError(t, err)
	var result TestResult
	decodeData(t, resp, &result)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, goldenMatch, result.Scenarios[0].Golden)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "reversed.golden"), []byte("{}"), 0644))
	out, err = env.run("test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "golden", "x.golden"), goldenFilePath(filepath.Join("dir", "x.yaml")))
}
