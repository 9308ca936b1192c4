package store

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/roach88/rankr/internal/ir"
)

// Shared zstd coders. EncodeAll and DecodeAll are safe for concurrent use.
var (
	snapshotEncoder, _ = zstd.NewWriter(nil,
		zstd.WithEncoderCRC(true),
		zstd.WithEncoderLevel(zstd.SpeedFastest))
	snapshotDecoder, _ = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0))
)

// ChecksumError is returned when a stored payload does not match its
// recorded checksum.
type ChecksumError struct {
	SessionID string
	Want      uint64
	Got       uint64
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("snapshot checksum mismatch for session %s: want %016x, got %016x", e.SessionID, e.Want, e.Got)
}

// encodeSnapshot serializes a snapshot to compressed JSON and returns the
// checksum of the uncompressed bytes.
func encodeSnapshot(snap ir.Snapshot) ([]byte, uint64, error) {
	if snap.History == nil {
		snap.History = []ir.SortState{}
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal snapshot: %w", err)
	}
	return snapshotEncoder.EncodeAll(raw, nil), xxhash.Sum64(raw), nil
}

// decodeSnapshot reverses encodeSnapshot, verifying the checksum and the
// structural invariants of every state.
func decodeSnapshot(sessionID string, payload []byte, checksum uint64) (ir.Snapshot, error) {
	raw, err := snapshotDecoder.DecodeAll(payload, nil)
	if err != nil {
		return ir.Snapshot{}, fmt.Errorf("decompress snapshot: %w", err)
	}

	if got := xxhash.Sum64(raw); got != checksum {
		return ir.Snapshot{}, &ChecksumError{SessionID: sessionID, Want: checksum, Got: got}
	}

	var snap ir.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return ir.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if err := ir.ValidateSnapshot(snap); err != nil {
		return ir.Snapshot{}, fmt.Errorf("validate snapshot: %w", err)
	}

	return snap, nil
}

// marshalItems converts the initial item order to canonical JSON TEXT.
func marshalItems(items []ir.Item) (string, error) {
	data, err := ir.MarshalCanonical(ir.Group(items))
	if err != nil {
		return "", fmt.Errorf("marshal items: %w", err)
	}
	return string(data), nil
}

// unmarshalItems parses the items column.
func unmarshalItems(data string) ([]ir.Item, error) {
	items := []ir.Item{}
	if data == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return items, nil
}
