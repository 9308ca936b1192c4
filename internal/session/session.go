package session

import (
	"log/slog"

	"github.com/roach88/rankr/internal/engine"
	"github.com/roach88/rankr/internal/ir"
)

// DefaultMaxHistory is the default number of undo steps kept per session.
const DefaultMaxHistory = 50

// Session is the interactive controller around the sort engine.
type Session struct {
	state      *ir.SortState // nil until Init or Load
	history    []ir.SortState
	maxHistory int
	clock      *Clock
	logger     *slog.Logger
}

// Option allows configuration of session parameters.
type Option func(*Session)

// WithMaxHistory sets the undo history cap.
//
// Default: 50 (DefaultMaxHistory). Values below 1 are ignored.
func WithMaxHistory(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.maxHistory = n
		}
	}
}

// WithLogger sets the logger used for decision tracing.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the logical clock. Used to resume a loaded session at
// its last recorded seq.
func WithClock(c *Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// New creates an empty Session. Call Init or Load before deciding.
func New(opts ...Option) *Session {
	s := &Session{
		maxHistory: DefaultMaxHistory,
		clock:      NewClock(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init starts a new ranking over items and clears the history.
//
// items are used in the order given; shuffle them first for a randomized
// comparison order.
func (s *Session) Init(items []ir.Item) {
	state := engine.InitSort(items)
	s.state = &state
	s.history = nil
	s.clock = NewClock()

	s.logger.Debug("session initialized",
		"items", len(items),
		"ended", state.Ended(),
	)
}

// Load replaces the session with a saved snapshot.
//
// The history is kept verbatim even when it exceeds the cap; the cap is
// applied on the next decision.
func (s *Session) Load(snap ir.Snapshot) {
	snap = snap.Clone()
	s.state = &snap.State
	s.history = snap.History

	s.logger.Debug("session loaded",
		"history", len(s.history),
		"ended", snap.State.Ended(),
	)
}

// Left records that the left group ranks higher.
func (s *Session) Left() bool {
	return s.Decide(ir.DecisionLeft)
}

// Right records that the right group ranks higher.
func (s *Session) Right() bool {
	return s.Decide(ir.DecisionRight)
}

// Tie records that both groups rank equally.
func (s *Session) Tie() bool {
	return s.Decide(ir.DecisionTie)
}

// Decide pushes the current state onto the history and applies d.
//
// Returns false, changing nothing, when there is no current state or d is
// not a known decision. A decision on an ended state is still recorded in
// the history; engine.Step leaves the state itself unchanged.
func (s *Session) Decide(d ir.Decision) bool {
	if s.state == nil {
		return false
	}
	switch d {
	case ir.DecisionLeft, ir.DecisionRight, ir.DecisionTie:
	default:
		s.logger.Warn("ignoring unknown decision", "decision", d)
		return false
	}

	s.push(s.state.Clone())
	next := engine.Step(d, *s.state)
	s.state = &next

	s.logger.Debug("decision applied",
		"decision", d,
		"seq", s.clock.Next(),
		"history", len(s.history),
		"ended", next.Ended(),
	)
	return true
}

// Undo restores the state from before the most recent decision.
// Returns false when the history is empty.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}

	last := len(s.history) - 1
	prev := s.history[last]
	s.history[last] = ir.SortState{}
	s.history = s.history[:last]
	s.state = &prev

	s.logger.Debug("decision undone",
		"seq", s.clock.Next(),
		"history", len(s.history),
	)
	return true
}

// push appends state to the history, evicting the oldest entries so that
// the history never exceeds the cap after the push.
func (s *Session) push(state ir.SortState) {
	if excess := len(s.history) - (s.maxHistory - 1); excess > 0 {
		s.logger.Debug("history full, evicting oldest", "evicted", excess)
		s.history = append(s.history[:0:0], s.history[excess:]...)
	}
	s.history = append(s.history, state)
}

// Progress returns the engine's completion estimate in [0, 1], or 0 when
// there is no current state.
func (s *Session) Progress() float64 {
	if s.state == nil {
		return 0
	}
	return engine.Progress(*s.state, len(s.state.Arr))
}

// State returns a copy of the current state.
func (s *Session) State() (ir.SortState, bool) {
	if s.state == nil {
		return ir.SortState{}, false
	}
	return s.state.Clone(), true
}

// History returns a copy of the undo history, oldest first.
func (s *Session) History() []ir.SortState {
	out := make([]ir.SortState, len(s.history))
	for i, h := range s.history {
		out[i] = h.Clone()
	}
	return out
}

// Current returns the comparison awaiting a decision.
func (s *Session) Current() (engine.Pair, bool) {
	if s.state == nil {
		return engine.Pair{}, false
	}
	return engine.CurrentItem(*s.state)
}

// Done reports whether the ranking is complete.
func (s *Session) Done() bool {
	return s.state != nil && s.state.Ended()
}

// Ranking returns the current groups with tie placeholders removed.
func (s *Session) Ranking() []ir.Group {
	if s.state == nil {
		return nil
	}
	return engine.Ranking(*s.state)
}

// Snapshot returns the persisted shape {state, history}.
func (s *Session) Snapshot() ir.Snapshot {
	state, _ := s.State()
	return ir.Snapshot{
		State:   state,
		History: s.History(),
	}
}

// Seq returns the logical clock position: the number of operations applied
// since Init, plus the clock's starting point.
func (s *Session) Seq() int64 {
	return s.clock.Current()
}

// MaxHistory returns the configured undo history cap.
func (s *Session) MaxHistory() int {
	return s.maxHistory
}
