package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/journal"
	"github.com/roach88/rankr/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Concurrency int
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []journal.Result `json:"sessions"`
	TotalSessions    int              `json:"total_sessions"`
	AllDeterministic bool             `json:"all_deterministic"`
}

func (r ReplayResult) String() string {
	if r.TotalSessions == 0 {
		return "No sessions to replay."
	}
	var b strings.Builder
	for _, s := range r.Sessions {
		if s.Deterministic {
			fmt.Fprintf(&b, "✓ %s (%s): %d operations, %d undos\n", s.Name, s.SessionID, s.Operations, s.Undos)
			continue
		}
		d := s.Divergence
		fmt.Fprintf(&b, "✗ %s (%s): seq %d: %s\n", s.Name, s.SessionID, d.Seq, d.Message)
	}
	if r.AllDeterministic {
		fmt.Fprintf(&b, "All %d sessions replay deterministically.", r.TotalSessions)
	} else {
		b.WriteString("Replay diverged.")
	}
	return b.String()
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [session]",
		Short: "Replay operation logs and verify determinism",
		Long: `Rebuild sessions from their initial item order and logged operations.

Every logged state hash and the stored snapshot must be reproduced exactly.
Without an argument every session is replayed, several at a time.

Exit codes:
  0 - All sessions are deterministic
  1 - A replay diverged from its log
  2 - Command error (database not found, etc.)

Examples:
  rankr replay
  rankr replay films
  rankr replay --concurrency 8 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", journal.DefaultConcurrency, "sessions replayed at once")

	return cmd
}

func runReplay(opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts.RootOptions)
	ctx := commandContext(cmd)

	st, err := openStore(f, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	var results []journal.Result
	if len(args) == 1 {
		res, err := journal.Verify(ctx, st, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return f.Fail(ExitCommandError, ErrCodeNotFound, "session not found: "+args[0], nil)
		}
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to replay session", err)
		}
		results = []journal.Result{res}
	} else {
		results, err = journal.VerifyAll(ctx, st, opts.Concurrency)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, "failed to replay sessions", err)
		}
	}

	result := ReplayResult{
		Sessions:         results,
		TotalSessions:    len(results),
		AllDeterministic: true,
	}
	for _, r := range results {
		f.VerboseLog("replayed %s: %d operations", r.SessionID, r.Operations)
		if !r.Deterministic {
			result.AllDeterministic = false
		}
	}

	if !result.AllDeterministic {
		return f.Failure(result, ErrCodeReplayDiverged, "replay diverged from the operation log")
	}
	return f.Success(result)
}
