package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rankr/internal/ir"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requireLoadError(t *testing.T, err error, code string) *LoadError {
	t.Helper()
	var le *LoadError
	require.True(t, errors.As(err, &le), "expected LoadError, got %v", err)
	assert.Equal(t, code, le.Code)
	return le
}

func TestLoadYAMLMapping(t *testing.T) {
	path := writeFile(t, "films.yaml", `
name: movies
items:
  - alien
  - heat
  - ran
`)
	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "movies", cat.Name)
	assert.Equal(t, []ir.Item{"alien", "heat", "ran"}, cat.Items)
	assert.Equal(t, path, cat.Source)
}

func TestLoadYAMLSequenceUsesFileName(t *testing.T) {
	path := writeFile(t, "snacks.yml", "[chips, 42, pretzels]\n")

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "snacks", cat.Name)
	assert.Equal(t, []ir.Item{"chips", "42", "pretzels"}, cat.Items)
}

func TestLoadCUE(t *testing.T) {
	path := writeFile(t, "films.cue", `
name: "movies"
_last: "r" + "an"
items: ["alien", "heat", _last]
`)
	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "movies", cat.Name)
	assert.Equal(t, []ir.Item{"alien", "heat", "ran"}, cat.Items)
}

func TestLoadNormalizesIDs(t *testing.T) {
	cat, err := ParseYAML("x.yaml", []byte("items: [\"  cafe\\u0301 \", tea]\n"))
	require.NoError(t, err)
	assert.Equal(t, []ir.Item{"caf\u00e9", "tea"}, cat.Items)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
		line    int
	}{
		{"unsupported extension", "items.txt", "a\n", ErrCodeUnsupported, 0},
		{"yaml syntax", "bad.yaml", "items: [a, b\n", ErrCodeParse, 0},
		{"yaml empty document", "empty.yaml", "", ErrCodeNoItems, 0},
		{"yaml missing items", "none.yaml", "name: x\n", ErrCodeNoItems, 0},
		{"yaml empty list", "zero.yaml", "items: []\n", ErrCodeNoItems, 0},
		{"yaml items not list", "scalar.yaml", "items: a\n", ErrCodeNoItems, 1},
		{"yaml unknown field", "extra.yaml", "items: [a]\nfilter: b\n", ErrCodeParse, 2},
		{"yaml null item", "null.yaml", "items:\n  - a\n  - ~\n", ErrCodeInvalidItem, 3},
		{"yaml nested item", "nested.yaml", "items:\n  - [a]\n", ErrCodeInvalidItem, 2},
		{"yaml blank item", "blank.yaml", "items:\n  - a\n  - \"  \"\n", ErrCodeInvalidItem, 3},
		{"yaml duplicate", "dup.yaml", "items:\n  - a\n  - b\n  - a\n", ErrCodeDuplicate, 4},
		{"yaml duplicate after nfc", "nfc.yaml", "items: [\"\\u00e9\", \"e\\u0301\"]\n", ErrCodeDuplicate, 1},
		{"cue syntax", "bad.cue", "items: [\n", ErrCodeParse, 0},
		{"cue conflict", "conflict.cue", "items: [\"a\"]\nitems: [\"b\"]\n", ErrCodeParse, 0},
		{"cue missing items", "none.cue", "name: \"x\"\n", ErrCodeNoItems, 0},
		{"cue items not list", "scalar.cue", "items: \"a\"\n", ErrCodeNoItems, 0},
		{"cue non-string item", "int.cue", "items: [\"a\", 1]\n", ErrCodeInvalidItem, 0},
		{"cue incomplete item", "open.cue", "items: [\"a\", string]\n", ErrCodeInvalidItem, 0},
		{"cue duplicate", "dup.cue", "items: [\"a\", \"a\"]\n", ErrCodeDuplicate, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			le := requireLoadError(t, err, tt.code)
			if tt.line > 0 {
				assert.Equal(t, tt.line, le.Line)
			}
			assert.Contains(t, le.Error(), tt.code)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	requireLoadError(t, err, ErrCodeNotFound)
}

func TestLoadErrorFormat(t *testing.T) {
	assert.Equal(t, "f.yaml:3:5: E013: bad", (&LoadError{Code: "E013", File: "f.yaml", Line: 3, Column: 5, Message: "bad"}).Error())
	assert.Equal(t, "f.yaml: E012: bad", (&LoadError{Code: "E012", File: "f.yaml", Message: "bad"}).Error())
	assert.Equal(t, "E001: bad", (&LoadError{Code: "E001", Message: "bad"}).Error())
}
