package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/ir"
)

// NewPickCommand creates the pick command.
func NewPickCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <session> <left|right|tie>",
		Short: "Answer the pending comparison",
		Long: `Answer the pending comparison and show the next one.

  left  - the left group ranks higher
  right - the right group ranks higher
  tie   - both rank equally; they are merged into one group

Examples:
  rankr pick films left
  rankr pick films tie`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			out := make([]string, len(ir.ValidDecisions))
			for i, d := range ir.ValidDecisions {
				out[i] = string(d)
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runPick(opts *RootOptions, ref, answer string, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts)

	d, err := ir.ParseDecision(answer)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeInvalidDecision, err.Error(), nil)
	}

	st, err := openStore(f, opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	j, err := openJournal(cmd, f, opts, st, ref)
	if err != nil {
		return err
	}

	var note string
	if j.Session().Done() {
		note = "Ranking already complete; the answer was recorded but changes nothing."
	}

	pair, _ := j.Session().Current()
	if _, err := j.Decide(commandContext(cmd), d); err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to record decision", err)
	}
	if note == "" {
		note = fmt.Sprintf("Recorded: %s (%s vs %s).", d, formatGroup(pair.Left), formatGroup(pair.Right))
	}

	view := newSessionView(j)
	view.Note = note
	return f.Success(view)
}
