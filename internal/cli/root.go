package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/rankr/internal/session"
)

// DatabaseEnv names the environment variable that overrides the default
// database path.
const DatabaseEnv = "RANKR_DB"

// DefaultDatabase is used when neither --db nor RANKR_DB is set.
const DefaultDatabase = "rankr.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	Database string

	// IDs generates session IDs. If nil, defaults to UUIDv7Generator.
	// Tests set a fixed generator.
	IDs session.IDGenerator

	// Logger is configured in PersistentPreRunE from --verbose.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rankr CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankr",
		Short: "rankr - rank anything by pairwise comparison",
		Long: `Rank a list of items by answering "which is better?" one pair at a time.

Sessions are sorted with a resumable merge sort and stored in a SQLite
database, so a ranking can be continued, undone and replayed later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			// Logs go to stderr so they never corrupt JSON output.
			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			}))
			if opts.IDs == nil {
				opts.IDs = session.UUIDv7Generator{}
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultDatabase(),
		"path to SQLite database (env "+DatabaseEnv+")")

	// Add subcommands
	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewPickCommand(opts))
	cmd.AddCommand(NewUndoCommand(opts))
	cmd.AddCommand(NewResultCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

func defaultDatabase() string {
	if db := os.Getenv(DatabaseEnv); db != "" {
		return db
	}
	return DefaultDatabase
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
