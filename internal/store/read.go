package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetSession retrieves a session's setup by ID or, failing that, by name.
// Returns ErrNotFound if neither matches.
func (s *Store) GetSession(ctx context.Context, ref string) (SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, seed, items, items_hash, max_history, engine_version
		FROM sessions
		WHERE id = ? OR name = ?
		ORDER BY (id = ?) DESC
		LIMIT 1
	`, ref, ref, ref)

	var rec SessionRecord
	var itemsJSON string
	err := row.Scan(&rec.ID, &rec.Name, &rec.Seed, &itemsJSON, &rec.ItemsHash, &rec.MaxHistory, &rec.EngineVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRecord{}, fmt.Errorf("get session %q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %q: %w", ref, err)
	}

	rec.Items, err = unmarshalItems(itemsJSON)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("get session %q: %w", ref, err)
	}
	return rec, nil
}

// LoadSession retrieves a session with its latest verified snapshot.
func (s *Store) LoadSession(ctx context.Context, ref string) (SavedSession, error) {
	rec, err := s.GetSession(ctx, ref)
	if err != nil {
		return SavedSession{}, err
	}

	var payload []byte
	var checksum, seq int64
	err = s.db.QueryRowContext(ctx, `
		SELECT payload, checksum, seq
		FROM snapshots
		WHERE session_id = ?
	`, rec.ID).Scan(&payload, &checksum, &seq)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedSession{}, fmt.Errorf("load session %s: snapshot missing: %w", rec.ID, ErrNotFound)
	}
	if err != nil {
		return SavedSession{}, fmt.Errorf("load session %s: %w", rec.ID, err)
	}

	snap, err := decodeSnapshot(rec.ID, payload, uint64(checksum))
	if err != nil {
		return SavedSession{}, fmt.Errorf("load session %s: %w", rec.ID, err)
	}

	return SavedSession{Record: rec, Snapshot: snap, Seq: seq}, nil
}

// ReadOperations returns a session's operation log in seq order.
// Returns an empty slice (not nil) if nothing has been logged.
func (s *Store) ReadOperations(ctx context.Context, sessionID string) ([]Operation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, state_hash
		FROM operations
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	ops := []Operation{}
	for rows.Next() {
		var op Operation
		var kind string
		if err := rows.Scan(&op.Seq, &kind, &op.StateHash); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		op.Kind = OperationKind(kind)
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}

	return ops, nil
}

// ListSessions returns a summary of every session, ordered by ID.
// UUIDv7 IDs make this creation order.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, json_array_length(s.items),
		       COALESCE(sn.seq, 0), COALESCE(sn.history_len, 0),
		       COALESCE(sn.ended, 0), COALESCE(sn.state_hash, ''),
		       (SELECT COUNT(*) FROM operations o
		        WHERE o.session_id = s.id AND o.kind != 'undo')
		FROM sessions s
		LEFT JOIN snapshots sn ON sn.session_id = s.id
		ORDER BY s.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	summaries := []SessionSummary{}
	for rows.Next() {
		var sum SessionSummary
		if err := rows.Scan(
			&sum.ID, &sum.Name, &sum.Items,
			&sum.Seq, &sum.HistoryLen,
			&sum.Ended, &sum.StateHash,
			&sum.Decisions,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return summaries, nil
}

// ListSessionIDs returns all session IDs in order.
// Used by replay to enumerate sessions.
func (s *Store) ListSessionIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sessions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list session ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session ids: %w", err)
	}

	return ids, nil
}
