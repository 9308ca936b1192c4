package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/journal"
	"github.com/roach88/rankr/internal/store"
)

// commandContext returns the command's context, or Background when the
// command runs without one (tests calling Execute directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore opens the database named by --db.
func openStore(f *OutputFormatter, opts *RootOptions) (*store.Store, error) {
	f.VerboseLog("opening database %s", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	return st, nil
}

// closeStore closes st, logging rather than returning a close error.
func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// openJournal resumes the session ref, mapping a missing session to E005.
func openJournal(cmd *cobra.Command, f *OutputFormatter, opts *RootOptions, st *store.Store, ref string) (*journal.Journal, error) {
	j, err := journal.Open(commandContext(cmd), st, ref, journal.WithLogger(opts.Logger))
	if errors.Is(err, store.ErrNotFound) {
		return nil, f.Fail(ExitCommandError, ErrCodeNotFound, "session not found: "+ref, nil)
	}
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeStore, "failed to load session", err)
	}
	return j, nil
}
