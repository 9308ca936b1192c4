package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/store"
)

// ListResult is the output of the list command.
type ListResult struct {
	Sessions []store.SessionSummary `json:"sessions"`
}

func (r ListResult) String() string {
	if len(r.Sessions) == 0 {
		return "No sessions."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-20s  %5s  %9s  %s", "ID", "NAME", "ITEMS", "DECISIONS", "STATUS")
	for _, s := range r.Sessions {
		status := "in progress"
		if s.Ended {
			status = "complete"
		}
		fmt.Fprintf(&b, "\n%-36s  %-20s  %5d  %9d  %s", s.ID, s.Name, s.Items, s.Decisions, status)
	}
	return b.String()
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Long: `List every session in the database, oldest first.

Examples:
  rankr list
  rankr list --db ./votes.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, rootOpts)
			st, err := openStore(f, rootOpts)
			if err != nil {
				return err
			}
			defer closeStore(st)

			sessions, err := st.ListSessions(commandContext(cmd))
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
			}
			return f.Success(ListResult{Sessions: sessions})
		},
	}
}
