package cli

import (
	"github.com/spf13/cobra"
)

// NewUndoCommand creates the undo command.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <session>",
		Short: "Revert the most recent answer",
		Long: `Revert the most recent answer and show the comparison again.

Only the most recent answers are kept (see --max-history on new). With
nothing left to undo the session is unchanged.

Examples:
  rankr undo films`,
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

			j, err := openJournal(cmd, f, rootOpts, st, args[0])
			if err != nil {
				return err
			}

			undone, err := j.Undo(commandContext(cmd))
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, "failed to record undo", err)
			}

			view := newSessionView(j)
			view.Note = "Undone."
			if !undone {
				view.Note = "Nothing to undo."
			}
			return f.Success(view)
		},
	}
}
