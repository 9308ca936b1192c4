package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/catalog"
	"github.com/roach88/rankr/internal/journal"
	"github.com/roach88/rankr/internal/session"
	"github.com/roach88/rankr/internal/store"
)

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	Name       string
	Seed       int64
	MaxHistory int
	NoShuffle  bool
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <items-file>",
		Short: "Start a ranking session",
		Long: `Start a ranking session over the items in a YAML or CUE file.

The items are shuffled with a seed that is stored with the session, so
replay reproduces the exact initial order. Pass --seed to choose it.

Examples:
  rankr new movies.yaml
  rankr new movies.cue --name films --seed 42
  rankr new todo.yaml --no-shuffle --max-history 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "session name (default: catalog name)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "shuffle seed (default: random)")
	cmd.Flags().IntVar(&opts.MaxHistory, "max-history", session.DefaultMaxHistory, "number of undo steps kept")
	cmd.Flags().BoolVar(&opts.NoShuffle, "no-shuffle", false, "keep the file order")

	return cmd
}

func runNew(opts *NewOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts.RootOptions)

	cat, err := catalog.Load(path)
	if err != nil {
		var le *catalog.LoadError
		if errors.As(err, &le) {
			return f.Fail(ExitCommandError, le.Code, le.Error(), nil)
		}
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to load items", err)
	}

	if opts.MaxHistory < 1 {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "--max-history must be at least 1", nil)
	}

	seed := opts.Seed
	if !cmd.Flags().Changed("seed") {
		seed = catalog.NewSeed()
	}
	items := cat.Items
	if !opts.NoShuffle {
		items = catalog.Shuffle(items, seed)
	}

	name := opts.Name
	if name == "" {
		name = cat.Name
	}

	st, err := openStore(f, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	id := opts.IDs.Generate()
	if name == "" {
		name = id
	}
	j, err := journal.Create(commandContext(cmd), st, store.SessionRecord{
		ID:         id,
		Name:       name,
		Seed:       seed,
		Items:      items,
		MaxHistory: opts.MaxHistory,
	}, journal.WithLogger(opts.Logger))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, "failed to create session", err)
	}

	f.VerboseLog("created session %s from %s (seed %d)", id, cat.Source, seed)
	return f.Success(newSessionView(j))
}
