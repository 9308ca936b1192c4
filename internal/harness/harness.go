package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/rankr/internal/engine"
	"github.com/roach88/rankr/internal/ir"
	"github.com/roach88/rankr/internal/journal"
	"github.com/roach88/rankr/internal/store"
	"github.com/roach88/rankr/internal/testutil"
)

// DefaultSessionID is used when a scenario does not fix its own.
const DefaultSessionID = "test-session-default"

// Harness is the scenario execution engine.
type Harness struct {
	store   *store.Store
	journal *journal.Journal
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and session
// 2. Apply explicit steps
// 3. Answer remaining comparisons with the strategy, if any
// 4. Replay the operation log and check every state hash
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	id := scenario.SessionID
	if id == "" {
		id = DefaultSessionID
	}
	ids := testutil.NewFixedIDGenerator(id)

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()
	sessionID := ids.Generate()
	h.journal, err = journal.Create(ctx, st, store.SessionRecord{
		ID:         sessionID,
		Name:       scenario.Name,
		Items:      scenario.Items,
		MaxHistory: scenario.MaxHistory,
	}, journal.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}
	if scenario.Strategy != nil {
		if err := h.executeStrategy(ctx, scenario.Strategy, result); err != nil {
			return nil, fmt.Errorf("failed to execute strategy: %w", err)
		}
	}

	sess := h.journal.Session()
	result.Ranking = sess.Ranking()
	result.HistoryLen = len(sess.History())
	result.Ended = sess.Done()

	replay, err := journal.Verify(ctx, st, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to replay session: %w", err)
	}
	result.Deterministic = replay.Deterministic
	if d := replay.Divergence; d != nil {
		result.AddError(fmt.Sprintf("replay diverged at seq %d: %s", d.Seq, d.Message))
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, len(scenario.Items)) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSteps applies the explicit operations in order.
//
// A step the session rejects (an undo with empty history) is an error:
// scenarios are expected to describe operations that take effect.
func (h *Harness) executeSteps(ctx context.Context, steps []string, result *Result) error {
	for i, step := range steps {
		if step == StepUndo {
			if err := h.undo(ctx, result); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
			continue
		}

		d, err := ir.ParseDecision(step)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if err := h.decide(ctx, d, result); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

// executeStrategy answers comparisons until the ranking ends.
func (h *Harness) executeStrategy(ctx context.Context, strategy *Strategy, result *Result) error {
	oracle := strategy.oracle()
	sess := h.journal.Session()

	// The worst case of a clean run bounds the remaining decisions; the
	// slack only matters if the engine misbehaves.
	state, _ := sess.State()
	limit := 2*engine.Comparisons(len(state.Arr)) + 16
	for i := 0; !sess.Done(); i++ {
		if i >= limit {
			return fmt.Errorf("ranking did not end after %d decisions", limit)
		}
		pair, ok := sess.Current()
		if !ok {
			return fmt.Errorf("no comparison pending on an unfinished ranking")
		}
		if err := h.decide(ctx, oracle(pair.Left, pair.Right), result); err != nil {
			return err
		}
	}
	return nil
}

func (h *Harness) decide(ctx context.Context, d ir.Decision, result *Result) error {
	pair, _ := h.journal.Session().Current()

	applied, err := h.journal.Decide(ctx, d)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("decision %q was not applied", d)
	}

	result.addEvent(TraceEvent{
		Seq:   h.journal.Session().Seq(),
		Op:    string(d),
		Left:  pair.Left,
		Right: pair.Right,
	})
	return nil
}

func (h *Harness) undo(ctx context.Context, result *Result) error {
	applied, err := h.journal.Undo(ctx)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("nothing to undo")
	}

	result.addEvent(TraceEvent{
		Seq: h.journal.Session().Seq(),
		Op:  StepUndo,
	})
	return nil
}
