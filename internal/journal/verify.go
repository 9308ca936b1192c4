package journal

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/rankr/internal/ir"
	"github.com/roach88/rankr/internal/session"
	"github.com/roach88/rankr/internal/store"
)

// DefaultConcurrency bounds how many sessions VerifyAll replays at once.
const DefaultConcurrency = 4

// Divergence describes the first point where a replay disagrees with the
// stored log.
type Divergence struct {
	Seq     int64               `json:"seq"`
	Kind    store.OperationKind `json:"kind,omitempty"`
	Message string              `json:"message"`
	Want    string              `json:"want,omitempty"`
	Got     string              `json:"got,omitempty"`
}

// Result is the outcome of replaying one session.
type Result struct {
	SessionID     string      `json:"session_id"`
	Name          string      `json:"name"`
	Operations    int         `json:"operations"`
	Undos         int         `json:"undos"`
	Ended         bool        `json:"ended"`
	FinalHash     string      `json:"final_hash"`
	Deterministic bool        `json:"deterministic"`
	Divergence    *Divergence `json:"divergence,omitempty"`
}

// Verify replays the stored session ref from its initial item order.
//
// Each logged operation is applied to a fresh session and the resulting
// state hash compared with the logged one; the final state and history
// length are compared with the stored snapshot. A replay that disagrees
// is reported in the Result, not as an error. Errors are reserved for
// storage failures.
func Verify(ctx context.Context, st *store.Store, ref string) (Result, error) {
	saved, err := st.LoadSession(ctx, ref)
	if err != nil {
		return Result{}, err
	}
	ops, err := st.ReadOperations(ctx, saved.Record.ID)
	if err != nil {
		return Result{}, fmt.Errorf("verify %s: %w", saved.Record.ID, err)
	}

	res := Result{
		SessionID:  saved.Record.ID,
		Name:       saved.Record.Name,
		Operations: len(ops),
		Ended:      saved.Snapshot.State.Ended(),
	}
	res.Divergence = replay(saved, ops)
	res.Deterministic = res.Divergence == nil
	res.FinalHash, err = ir.StateHash(saved.Snapshot.State)
	if err != nil {
		return Result{}, fmt.Errorf("verify %s: %w", saved.Record.ID, err)
	}
	for _, op := range ops {
		if op.Kind == store.OperationUndo {
			res.Undos++
		}
	}
	return res, nil
}

// replay returns nil when the log reproduces the saved session.
func replay(saved store.SavedSession, ops []store.Operation) *Divergence {
	rec := saved.Record

	itemsHash, err := ir.ItemsHash(rec.Items)
	if err != nil || itemsHash != rec.ItemsHash {
		return &Divergence{Message: "initial items do not match their hash", Want: rec.ItemsHash, Got: itemsHash}
	}

	sess := session.New(
		session.WithMaxHistory(rec.MaxHistory),
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	sess.Init(rec.Items)

	for _, op := range ops {
		var applied bool
		if op.Kind == store.OperationUndo {
			applied = sess.Undo()
		} else if d, err := ir.ParseDecision(string(op.Kind)); err == nil {
			applied = sess.Decide(d)
		}
		if !applied {
			return &Divergence{Seq: op.Seq, Kind: op.Kind, Message: "operation could not be applied"}
		}
		if sess.Seq() != op.Seq {
			return &Divergence{Seq: op.Seq, Kind: op.Kind, Message: "operation seq out of step",
				Want: fmt.Sprint(op.Seq), Got: fmt.Sprint(sess.Seq())}
		}

		state, _ := sess.State()
		got, err := ir.StateHash(state)
		if err != nil || got != op.StateHash {
			return &Divergence{Seq: op.Seq, Kind: op.Kind, Message: "state hash mismatch", Want: op.StateHash, Got: got}
		}
	}

	if sess.Seq() != saved.Seq {
		return &Divergence{Seq: saved.Seq, Message: "snapshot seq does not match log",
			Want: fmt.Sprint(saved.Seq), Got: fmt.Sprint(sess.Seq())}
	}

	final := sess.Snapshot()
	want := ir.MustStateHash(saved.Snapshot.State)
	if got := ir.MustStateHash(final.State); got != want {
		return &Divergence{Seq: saved.Seq, Message: "snapshot state does not match replay", Want: want, Got: got}
	}
	if len(final.History) != len(saved.Snapshot.History) {
		return &Divergence{Seq: saved.Seq, Message: "snapshot history length does not match replay",
			Want: fmt.Sprint(len(saved.Snapshot.History)), Got: fmt.Sprint(len(final.History))}
	}
	return nil
}

// VerifyAll replays every stored session, at most concurrency at a time.
// Results are in session ID order.
func VerifyAll(ctx context.Context, st *store.Store, concurrency int) ([]Result, error) {
	ids, err := st.ListSessionIDs(ctx)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			res, err := Verify(ctx, st, id)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
