package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rankr/internal/store"
)

func TestReplayEmpty(t *testing.T) {
	env := newCLIEnv(t)
	assert.Contains(t, env.mustRun("replay"), "No sessions to replay.")
}

func TestReplayDeterministic(t *testing.T) {
	env := newCLIEnv(t, "s-1", "s-2")
	env.mustRun("new", env.writeItems("films.yaml", filmsYAML), "--seed", "3")
	env.mustRun("new", env.writeItems("more.yaml", "items: [p, q, r, s]\n"), "--seed", "4")
	env.mustRun("pick", "films", "left")
	env.mustRun("pick", "films", "tie")
	env.mustRun("undo", "films")
	env.mustRun("pick", "more", "right")

	out := env.mustRun("replay")
	assert.Contains(t, out, "✓ films (s-1): 3 operations, 1 undos")
	assert.Contains(t, out, "All 2 sessions replay deterministically.")

	resp, err := env.runJSON("replay", "more", "--concurrency", "1")
	require.NoError(t, err)
	var result ReplayResult
	decodeData(t, resp, &result)
	assert.True(t, result.AllDeterministic)
	require.Len(t, result.Sessions, 1)
	assert.Equal(t, "s-2", result.Sessions[0].SessionID)
}

func TestReplayDetectsTampering(t *testing.T) {
	env := newCLIEnv(t, "s-1")
	env.mustRun("new", env.writeItems("films.yaml", filmsYAML), "--no-shuffle")
	env.mustRun("pick", "films", "left")

	st, err := store.Open(env.db)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE operations SET kind = 'right'`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := env.run("replay")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "✗ films (s-1): seq 1: state hash mismatch")

	resp, err := env.runJSON("replay", "films")
	require.Error(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeReplayDiverged, resp.Error.Code)
}

func TestReplayUnknownSession(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run("replay", "ghost")
	require.Error(t, err)
	assert.Contains(t, out, "Error [E005]")
}
