package journal

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rankr/internal/ir"
	"github.com/roach88/rankr/internal/store"
	"github.com/roach88/rankr/internal/testutil"
)

func TestVerifyCleanSession(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	items := testutil.Items("v", 9)

	j := createJournal(t, st, "s-1", testutil.Interleaved(items))
	pair, _ := j.Session().Current()
	_, err := j.Decide(ctx, testutil.InOrder(items)(pair.Left, pair.Right))
	require.NoError(t, err)
	_, err = j.Undo(ctx)
	require.NoError(t, err)
	finish(t, j, testutil.InOrder(items))

	res, err := Verify(ctx, st, "s-1")
	require.NoError(t, err)
	assert.True(t, res.Deterministic, "divergence: %+v", res.Divergence)
	assert.Nil(t, res.Divergence)
	assert.True(t, res.Ended)
	assert.Equal(t, 1, res.Undos)
	final, _ := j.Session().State()
	assert.Equal(t, ir.MustStateHash(final), res.FinalHash)
}

func TestVerifyWithHistoryEviction(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	items := testutil.Items("e", 12)

	j, err := Create(ctx, st, store.SessionRecord{ID: "s-1", Name: "small", Items: items, MaxHistory: 3},
		WithLogger(quietLogger()))
	require.NoError(t, err)
	finish(t, j, testutil.AlwaysTie())
	for range 3 {
		_, err := j.Undo(ctx)
		require.NoError(t, err)
	}

	res, err := Verify(ctx, st, "small")
	require.NoError(t, err)
	assert.True(t, res.Deterministic, "divergence: %+v", res.Divergence)
	assert.Equal(t, 3, res.Undos)
}

func TestVerifyDetectsTamperedHash(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	j := createJournal(t, st, "s-1", []ir.Item{"a", "b", "c"})
	_, err := j.Decide(ctx, ir.DecisionLeft)
	require.NoError(t, err)
	_, err = j.Decide(ctx, ir.DecisionLeft)
	require.NoError(t, err)

	_, err = st.DB().Exec(`UPDATE operations SET state_hash = 'bogus' WHERE session_id = ? AND seq = 2`, "s-1")
	require.NoError(t, err)

	res, err := Verify(ctx, st, "s-1")
	require.NoError(t, err)
	assert.False(t, res.Deterministic)
	require.NotNil(t, res.Divergence)
	assert.Equal(t, int64(2), res.Divergence.Seq)
	assert.Equal(t, "state hash mismatch", res.Divergence.Message)
	assert.Equal(t, "bogus", res.Divergence.Want)
}

func TestVerifyDetectsRewrittenDecision(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	j := createJournal(t, st, "s-1", []ir.Item{"a", "b", "c"})
	_, err := j.Decide(ctx, ir.DecisionLeft)
	require.NoError(t, err)

	_, err = st.DB().Exec(`UPDATE operations SET kind = 'right' WHERE session_id = ?`, "s-1")
	require.NoError(t, err)

	res, err := Verify(ctx, st, "s-1")
	require.NoError(t, err)
	require.NotNil(t, res.Divergence)
	assert.Equal(t, store.OperationKind("right"), res.Divergence.Kind)
}

func TestVerifyDetectsImpossibleUndo(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	j := createJournal(t, st, "s-1", []ir.Item{"a", "b", "c"})
	_, err := j.Decide(ctx, ir.DecisionLeft)
	require.NoError(t, err)

	_, err = st.DB().Exec(`UPDATE operations SET kind = 'undo' WHERE session_id = ?`, "s-1")
	require.NoError(t, err)
	_, err = st.DB().Exec(`INSERT INTO operations (session_id, seq, kind, state_hash) VALUES (?, 2, 'undo', 'x')`, "s-1")
	require.NoError(t, err)

	res, err := Verify(ctx, st, "s-1")
	require.NoError(t, err)
	require.NotNil(t, res.Divergence)
	assert.Equal(t, "operation could not be applied", res.Divergence.Message)
}

func TestVerifyDetectsMissingOperations(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	j := createJournal(t, st, "s-1", []ir.Item{"a", "b", "c"})
	_, err := j.Decide(ctx, ir.DecisionLeft)
	require.NoError(t, err)

	_, err = st.DB().Exec(`DELETE FROM operations WHERE session_id = ?`, "s-1")
	require.NoError(t, err)

	res, err := Verify(ctx, st, "s-1")
	require.NoError(t, err)
	require.NotNil(t, res.Divergence)
	assert.Equal(t, "snapshot seq does not match log", res.Divergence.Message)
}

func TestVerifyDetectsEditedItems(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	createJournal(t, st, "s-1", []ir.Item{"a", "b"})
	_, err := st.DB().Exec(`UPDATE sessions SET items = '["b","a"]' WHERE id = ?`, "s-1")
	require.NoError(t, err)

	res, err := Verify(ctx, st, "s-1")
	require.NoError(t, err)
	require.NotNil(t, res.Divergence)
	assert.Equal(t, "initial items do not match their hash", res.Divergence.Message)
}

func TestVerifyAll(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := range 6 {
		items := testutil.Items(fmt.Sprintf("set%d", i), i+2)
		j := createJournal(t, st, fmt.Sprintf("s-%d", i), testutil.Reversed(items))
		finish(t, j, testutil.InOrder(items))
	}
	_, err := st.DB().Exec(`UPDATE operations SET state_hash = 'bogus' WHERE session_id = 's-4' AND seq = 1`)
	require.NoError(t, err)

	results, err := VerifyAll(ctx, st, 2)
	require.NoError(t, err)
	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("s-%d", i), res.SessionID)
		assert.Equal(t, i != 4, res.Deterministic, "session %s", res.SessionID)
	}
}

func TestVerifyAllEmptyStore(t *testing.T) {
	results, err := VerifyAll(context.Background(), openTestStore(t), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
