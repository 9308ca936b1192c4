package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/store"
)

// DeleteResult is the output of the delete command.
type DeleteResult struct {
	ID string `json:"id"`
}

func (r DeleteResult) String() string {
	return fmt.Sprintf("Deleted session %s.", r.ID)
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session>",
		Short: "Delete a session and its log",
		Long: `Delete a session, its snapshot and its operation log.

Examples:
  rankr delete films`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(cmd, rootOpts)
			st, err := openStore(f, rootOpts)
			if err != nil {
				return err
			}
			defer closeStore(st)

			ctx := commandContext(cmd)
			rec, err := st.GetSession(ctx, args[0])
			if errors.Is(err, store.ErrNotFound) {
				return f.Fail(ExitCommandError, ErrCodeNotFound, "session not found: "+args[0], nil)
			}
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, "failed to look up session", err)
			}

			if err := st.DeleteSession(ctx, rec.ID); err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, "failed to delete session", err)
			}
			return f.Success(DeleteResult{ID: rec.ID})
		},
	}
}
