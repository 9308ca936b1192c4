package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/rankr/internal/ir"
)

// CreateSession inserts a session and its initial snapshot atomically.
//
// The record's ItemsHash is computed here from Items; any value set by the
// caller is overwritten. Names are unique.
func (s *Store) CreateSession(ctx context.Context, rec SessionRecord, snap ir.Snapshot) (SessionRecord, error) {
	itemsJSON, err := marshalItems(rec.Items)
	if err != nil {
		return rec, fmt.Errorf("create session: %w", err)
	}
	rec.ItemsHash, err = ir.ItemsHash(rec.Items)
	if err != nil {
		return rec, fmt.Errorf("create session: %w", err)
	}
	if rec.EngineVersion == "" {
		rec.EngineVersion = ir.EngineVersion
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions
			(id, name, seed, items, items_hash, max_history, engine_version)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			rec.ID,
			rec.Name,
			rec.Seed,
			itemsJSON,
			rec.ItemsHash,
			rec.MaxHistory,
			rec.EngineVersion,
		)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return writeSnapshot(ctx, tx, rec.ID, 0, snap)
	})
	if err != nil {
		return rec, fmt.Errorf("create session %s: %w", rec.ID, err)
	}

	return rec, nil
}

// RecordOperation appends op to the session's log and replaces its
// snapshot, in a single transaction.
//
// CRASH ATOMICITY: either both the log row and the snapshot are written,
// or neither is. A duplicate (session, seq) pair is an error: the session
// clock must be strictly increasing.
func (s *Store) RecordOperation(ctx context.Context, sessionID string, op Operation, snap ir.Snapshot) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO operations (session_id, seq, kind, state_hash)
			VALUES (?, ?, ?, ?)
		`, sessionID, op.Seq, string(op.Kind), op.StateHash)
		if err != nil {
			return fmt.Errorf("insert operation: %w", err)
		}
		return writeSnapshot(ctx, tx, sessionID, op.Seq, snap)
	})
	if err != nil {
		return fmt.Errorf("record operation seq=%d for session %s: %w", op.Seq, sessionID, err)
	}
	return nil
}

// writeSnapshot upserts the latest snapshot of a session.
func writeSnapshot(ctx context.Context, tx *sql.Tx, sessionID string, seq int64, snap ir.Snapshot) error {
	payload, checksum, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	stateHash, err := ir.StateHash(snap.State)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots
		(session_id, seq, payload, checksum, state_hash, ended, history_len, state_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			seq = excluded.seq,
			payload = excluded.payload,
			checksum = excluded.checksum,
			state_hash = excluded.state_hash,
			ended = excluded.ended,
			history_len = excluded.history_len,
			state_version = excluded.state_version
	`,
		sessionID,
		seq,
		payload,
		int64(checksum), // SQLite INTEGER is signed; the bits round-trip
		stateHash,
		snap.State.Ended(),
		len(snap.History),
		ir.StateVersion,
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// DeleteSession removes a session, its snapshot and its log.
// Returns ErrNotFound if the session does not exist.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		// Explicit deletes keep this correct even with foreign_keys off.
		if _, err := tx.ExecContext(ctx, `DELETE FROM operations WHERE session_id = ?`, sessionID); err != nil {
			return fmt.Errorf("delete operations: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE session_id = ?`, sessionID); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete session: rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("delete session %s: %w", sessionID, ErrNotFound)
		}
		return nil
	})
}
