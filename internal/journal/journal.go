package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/rankr/internal/ir"
	"github.com/roach88/rankr/internal/session"
	"github.com/roach88/rankr/internal/store"
)

// Journal is a session whose operations are persisted as they happen.
type Journal struct {
	store  *store.Store
	record store.SessionRecord
	sess   *session.Session
	logger *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger passed to the underlying session.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(j *Journal) {
		if logger != nil {
			j.logger = logger
		}
	}
}

func newJournal(st *store.Store, opts []Option) *Journal {
	j := &Journal{store: st, logger: slog.Default()}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Create starts a new session over rec.Items and stores it.
//
// rec.Items is used as given; callers shuffle beforehand and record the
// seed in rec.Seed. A MaxHistory below 1 is replaced by the default.
func Create(ctx context.Context, st *store.Store, rec store.SessionRecord, opts ...Option) (*Journal, error) {
	j := newJournal(st, opts)
	if rec.MaxHistory < 1 {
		rec.MaxHistory = session.DefaultMaxHistory
	}

	j.sess = j.newSession(rec.MaxHistory, 0)
	j.sess.Init(rec.Items)

	saved, err := st.CreateSession(ctx, rec, j.sess.Snapshot())
	if err != nil {
		return nil, err
	}
	j.record = saved

	j.logger.Info("session created",
		"session", saved.ID,
		"name", saved.Name,
		"items", len(saved.Items),
	)
	return j, nil
}

// Open resumes a stored session by ID or name.
func Open(ctx context.Context, st *store.Store, ref string, opts ...Option) (*Journal, error) {
	j := newJournal(st, opts)

	saved, err := st.LoadSession(ctx, ref)
	if err != nil {
		return nil, err
	}
	j.record = saved.Record
	j.sess = j.newSession(saved.Record.MaxHistory, saved.Seq)
	j.sess.Load(saved.Snapshot)
	return j, nil
}

func (j *Journal) newSession(maxHistory int, seq int64) *session.Session {
	return session.New(
		session.WithMaxHistory(maxHistory),
		session.WithClock(session.NewClockAt(seq)),
		session.WithLogger(j.logger),
	)
}

// Record returns the session's stored setup.
func (j *Journal) Record() store.SessionRecord {
	return j.record
}

// Session returns the in-memory session. Operations applied to it directly
// are not persisted; use Decide and Undo.
func (j *Journal) Session() *session.Session {
	return j.sess
}

// Decide applies d and persists the result.
//
// Returns false with no error when the session rejects the decision. If
// the write fails the in-memory session is rolled back to the stored one.
func (j *Journal) Decide(ctx context.Context, d ir.Decision) (bool, error) {
	return j.apply(ctx, store.OperationKind(d), func(s *session.Session) bool {
		return s.Decide(d)
	})
}

// Undo reverts the most recent decision and persists the result.
// Returns false with no error when there is nothing to undo.
func (j *Journal) Undo(ctx context.Context) (bool, error) {
	return j.apply(ctx, store.OperationUndo, func(s *session.Session) bool {
		return s.Undo()
	})
}

func (j *Journal) apply(ctx context.Context, kind store.OperationKind, op func(*session.Session) bool) (bool, error) {
	before := j.sess.Snapshot()
	beforeSeq := j.sess.Seq()

	if !op(j.sess) {
		return false, nil
	}

	snap := j.sess.Snapshot()
	hash, err := ir.StateHash(snap.State)
	if err == nil {
		err = j.store.RecordOperation(ctx, j.record.ID, store.Operation{
			Seq:       j.sess.Seq(),
			Kind:      kind,
			StateHash: hash,
		}, snap)
	}
	if err != nil {
		j.sess = j.newSession(j.record.MaxHistory, beforeSeq)
		j.sess.Load(before)
		return false, fmt.Errorf("persist %s: %w", kind, err)
	}
	return true, nil
}
