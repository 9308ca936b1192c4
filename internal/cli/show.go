package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session>",
		Short: "Show the pending comparison",
		Long: `Show a session's progress and the comparison waiting for an answer.

The session may be given by ID or by name.

Examples:
  rankr show films
  rankr show films --format json`,
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
			return f.Success(newSessionView(j))
		},
	}
}
