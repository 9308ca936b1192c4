package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rankr/internal/testutil"
)

// cliEnv runs commands against one temp database with fixed session IDs.
type cliEnv struct {
	t   *testing.T
	db  string
	dir string
	ids *testutil.FixedIDGenerator
}

func newCLIEnv(t *testing.T, ids ...string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	return &cliEnv{
		t:   t,
		db:  filepath.Join(dir, "rankr.db"),
		dir: dir,
		ids: testutil.NewFixedIDGenerator(ids...),
	}
}

// run executes the root command with --db set and returns stdout.
func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	cmd := newRootCommand(&RootOptions{IDs: e.ids})
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(append([]string{"--db", e.db}, args...))

	err := cmd.Execute()
	return buf.String(), err
}

// mustRun is run that fails the test on error.
func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "output: %s", out)
	return out
}

// runJSON runs with --format json and decodes the response.
func (e *cliEnv) runJSON(args ...string) (CLIResponse, error) {
	e.t.Helper()
	out, err := e.run(append([]string{"--format", "json"}, args...)...)
	var resp CLIResponse
	require.NoError(e.t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp, err
}

// writeItems writes a YAML catalog into the env's directory.
func (e *cliEnv) writeItems(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// decodeData re-decodes a response's data into v.
func decodeData(t *testing.T, resp CLIResponse, v any) {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}
