package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// ChangelogOptions holds flags for the changelog command.
type ChangelogOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewChangelogCommand creates the changelog command.
func NewChangelogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChangelogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "List recent document changes",
		Long: `List the most recent changelog entries, newest first.

Each entry records which document changed, the operation (change or
delete), and the source file that caused it.

Example:
  legisync changelog --db ./legisync.db --limit 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangelog(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum entries to list (0 for all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runChangelog(ctx context.Context, opts *ChangelogOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	entries, err := st.ChangelogEntries(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read changelog", err)
	}

	if opts.Format == "json" {
		out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return out.Success(entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RECORDED\tOP\tKEY\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.RecordedAt.Format(time.RFC3339), e.Op, e.Key, e.SourceFile)
	}
	return w.Flush()
}
