package store

import (
	"context"
	"errors"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rankr/internal/engine"
	"github.com/roach88/rankr/internal/ir"
)

func TestEncodeDecodeSnapshot(t *testing.T) {
	state := engine.InitSort([]ir.Item{"a", "b", "c", "d"})
	snap := ir.Snapshot{
		State:   engine.Step(ir.DecisionTie, state),
		History: []ir.SortState{state},
	}

	payload, checksum, err := encodeSnapshot(snap)
	require.NoError(t, err)

	decoded, err := decodeSnapshot("s", payload, checksum)
	require.NoError(t, err)
	assert.Equal(t, snap, decoded)
	assert.Equal(t, ir.MustStateHash(snap.State), ir.MustStateHash(decoded.State))
}

func TestEncodeSnapshotNilHistory(t *testing.T) {
	payload, checksum, err := encodeSnapshot(ir.Snapshot{State: engine.InitSort(nil)})
	require.NoError(t, err)

	decoded, err := decodeSnapshot("s", payload, checksum)
	require.NoError(t, err)
	assert.NotNil(t, decoded.History)
	assert.Empty(t, decoded.History)
}

func TestDecodeSnapshotChecksumMismatch(t *testing.T) {
	payload, checksum, err := encodeSnapshot(initialSnapshot("a", "b"))
	require.NoError(t, err)

	_, err = decodeSnapshot("s-9", payload, checksum+1)
	var csErr *ChecksumError
	require.True(t, errors.As(err, &csErr))
	assert.Equal(t, "s-9", csErr.SessionID)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestDecodeSnapshotGarbage(t *testing.T) {
	_, err := decodeSnapshot("s", []byte("not zstd"), 0)
	assert.Error(t, err)
}

func TestDecodeSnapshotRejectsInvalidState(t *testing.T) {
	bad := initialSnapshot("a", "b")
	bad.State.CurrentSize = 0

	payload, checksum, err := encodeSnapshot(bad)
	require.NoError(t, err)

	_, err = decodeSnapshot("s", payload, checksum)
	var verr *ir.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestLoadSessionDetectsCorruption(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.CreateSession(ctx, createTestRecord("s-1", "n", "a", "b"), initialSnapshot("a", "b"))
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE snapshots SET checksum = ? WHERE session_id = ?`, int64(xxhash.Sum64String("other")), "s-1")
	require.NoError(t, err)

	_, err = s.LoadSession(ctx, "s-1")
	var csErr *ChecksumError
	assert.True(t, errors.As(err, &csErr))
}

func TestItemsRoundTripNFC(t *testing.T) {
	data, err := marshalItems([]ir.Item{"é", "<b>"})
	require.NoError(t, err)
	assert.Equal(t, "[\"é\",\"<b>\"]", data)

	items, err := unmarshalItems(data)
	require.NoError(t, err)
	assert.Equal(t, []ir.Item{"é", "<b>"}, items)

	items, err = unmarshalItems("")
	require.NoError(t, err)
	assert.Empty(t, items)
}
