package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rankr/internal/ir"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: test_scenario
description: "Test scenario for validation"
items: [c, b, a]
max_history: 10
steps: [left, undo]
strategy:
  order: [a, b, c]
assertions:
  - type: ranking
    ranking: [[a], [b], [c]]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, []ir.Item{"c", "b", "a"}, scenario.Items)
	assert.Equal(t, 10, scenario.MaxHistory)
	assert.Equal(t, []string{"left", "undo"}, scenario.Steps)
	require.NotNil(t, scenario.Strategy)
	assert.Equal(t, []ir.Item{"a", "b", "c"}, scenario.Strategy.Order)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, [][]ir.Item{{"a"}, {"b"}, {"c"}}, scenario.Assertions[0].Ranking)
}

func TestLoadScenario_Keys(t *testing.T) {
	path := writeScenario(t, `
name: keys
description: "keys"
items: [a, b]
strategy:
  keys: {a: 2, b: 2}
assertions:
  - type: ended
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, map[ir.Item]int{"a": 2, "b": 2}, scenario.Strategy.Keys)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "typo"
items: [a]
assertion:
  - type: ended
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing name",
			content: "description: d\nitems: [a]\nassertions: [{type: ended}]\n",
			errMsg:  "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nitems: [a]\nassertions: [{type: ended}]\n",
			errMsg:  "description is required",
		},
		{
			name:    "no assertions",
			content: "name: n\ndescription: d\nitems: [a]\n",
			errMsg:  "assertions list is required",
		},
		{
			name:    "duplicate item",
			content: "name: n\ndescription: d\nitems: [a, a]\nassertions: [{type: ended}]\n",
			errMsg:  `duplicate item "a"`,
		},
		{
			name:    "empty item",
			content: "name: n\ndescription: d\nitems: [a, \"\"]\nassertions: [{type: ended}]\n",
			errMsg:  "items[1]: empty item",
		},
		{
			name:    "negative history",
			content: "name: n\ndescription: d\nitems: [a]\nmax_history: -1\nassertions: [{type: ended}]\n",
			errMsg:  "max_history must be non-negative",
		},
		{
			name:    "unknown step",
			content: "name: n\ndescription: d\nitems: [a]\nsteps: [sideways]\nassertions: [{type: ended}]\n",
			errMsg:  "steps[0]: invalid decision",
		},
		{
			name:    "two strategies",
			content: "name: n\ndescription: d\nitems: [a]\nstrategy: {order: [a], tie: true}\nassertions: [{type: ended}]\n",
			errMsg:  "exactly one of order, keys or tie",
		},
		{
			name:    "empty strategy",
			content: "name: n\ndescription: d\nitems: [a]\nstrategy: {}\nassertions: [{type: ended}]\n",
			errMsg:  "exactly one of order, keys or tie",
		},
		{
			name:    "order misses item",
			content: "name: n\ndescription: d\nitems: [a, b]\nstrategy: {order: [a]}\nassertions: [{type: ended}]\n",
			errMsg:  `order is missing item "b"`,
		},
		{
			name:    "keys misses item",
			content: "name: n\ndescription: d\nitems: [a, b]\nstrategy: {keys: {b: 1}}\nassertions: [{type: ended}]\n",
			errMsg:  `keys is missing item "a"`,
		},
		{
			name:    "assertion without type",
			content: "name: n\ndescription: d\nitems: [a]\nassertions: [{count: 1}]\n",
			errMsg:  "assertions[0]: type is required",
		},
		{
			name:    "unknown assertion",
			content: "name: n\ndescription: d\nitems: [a]\nassertions: [{type: sorted}]\n",
			errMsg:  `unknown assertion type "sorted"`,
		},
		{
			name:    "ranking without value",
			content: "name: n\ndescription: d\nitems: [a]\nassertions: [{type: ranking}]\n",
			errMsg:  "ranking is required",
		},
		{
			name:    "negative count",
			content: "name: n\ndescription: d\nitems: [a]\nassertions: [{type: comparisons, count: -2}]\n",
			errMsg:  "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadScenario_Testdata(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			_, err := LoadScenario(file)
			assert.NoError(t, err)
		})
	}
}
