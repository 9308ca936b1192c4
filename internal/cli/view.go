package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/rankr/internal/engine"
	"github.com/roach88/rankr/internal/ir"
	"github.com/roach88/rankr/internal/journal"
)

// SessionView is the output of commands that show a session's position.
type SessionView struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Items      int          `json:"items"`
	Seed       int64        `json:"seed"`
	Seq        int64        `json:"seq"`
	Progress   float64      `json:"progress"`
	HistoryLen int          `json:"history_len"`
	Ended      bool         `json:"ended"`
	Pending    *engine.Pair `json:"pending,omitempty"`

	// Note is a one-line status message for text output, such as the
	// outcome of an undo.
	Note string `json:"note,omitempty"`
}

func newSessionView(j *journal.Journal) SessionView {
	rec := j.Record()
	sess := j.Session()
	view := SessionView{
		ID:         rec.ID,
		Name:       rec.Name,
		Items:      len(rec.Items),
		Seed:       rec.Seed,
		Seq:        sess.Seq(),
		Progress:   sess.Progress(),
		HistoryLen: len(sess.History()),
		Ended:      sess.Done(),
	}
	if pair, ok := sess.Current(); ok {
		view.Pending = &pair
	}
	return view
}

func (v SessionView) String() string {
	var b strings.Builder
	if v.Note != "" {
		fmt.Fprintln(&b, v.Note)
	}
	fmt.Fprintf(&b, "Session %s (%s): %d items, %.0f%% done, %d undo steps\n",
		v.Name, v.ID, v.Items, v.Progress*100, v.HistoryLen)
	switch {
	case v.Pending != nil:
		fmt.Fprintf(&b, "Which is better?\n  left:  %s\n  right: %s",
			formatGroup(v.Pending.Left), formatGroup(v.Pending.Right))
	case v.Ended:
		b.WriteString("Ranking complete. Run `rankr result` to see it.")
	default:
		b.WriteString("No comparison pending.")
	}
	return b.String()
}

// RankingView is the output of the result command.
type RankingView struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Ended   bool       `json:"ended"`
	Ranking []ir.Group `json:"ranking"`
}

func (v RankingView) String() string {
	var b strings.Builder
	if v.Ended {
		fmt.Fprintf(&b, "Ranking for %s:", v.Name)
	} else {
		fmt.Fprintf(&b, "Ranking for %s (in progress, partial order):", v.Name)
	}

	// Tied items share a place; the next place skips accordingly.
	place := 1
	for _, g := range v.Ranking {
		fmt.Fprintf(&b, "\n%3d. %s", place, formatGroup(g))
		place += len(g)
	}
	return b.String()
}

func formatGroup(g ir.Group) string {
	items := make([]string, len(g))
	for i, item := range g {
		items[i] = string(item)
	}
	return strings.Join(items, " = ")
}
