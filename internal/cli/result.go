package cli

import (
	"github.com/spf13/cobra"
)

// NewResultCommand creates the result command.
func NewResultCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "result <session>",
		Short: "Print the ranking",
		Long: `Print a session's ranking, best first. Tied items share a place.

An unfinished session prints its current partial order.

Examples:
  rankr result films
  rankr result films --format json`,
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

			rec := j.Record()
			return f.Success(RankingView{
				ID:      rec.ID,
				Name:    rec.Name,
				Ended:   j.Session().Done(),
				Ranking: j.Session().Ranking(),
			})
		},
	}
}
