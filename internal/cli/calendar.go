package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/legisync/internal/calendar"
	"github.com/roach88/legisync/internal/process"
	"github.com/roach88/legisync/internal/store"
)

// CalendarOptions holds flags for the calendar command.
type CalendarOptions struct {
	*RootOptions
	Database string
	Config   string
}

// NewCalendarCommand creates the calendar command.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalendarOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calendar <files...>",
		Short: "Apply calendar XML files to the store",
		Long: `Apply one or more calendar XML files to the document store.

Calendar entries reference bills by print number; a referenced bill that
does not exist yet is created and published so the calendar stays
consistent even when its change files are missing.

Example:
  legisync calendar --db ./legisync.db SOBI.D110101.T103000.TXT-calendar.xml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to override config (YAML)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runCalendar(ctx context.Context, opts *CalendarOptions, files []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	cl := store.NewChangelog(st)
	bills := process.New(st, cl, cfg)
	proc := calendar.New(st, cl, bills)

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var failed int
	for _, path := range sorted {
		if err := proc.ProcessFile(ctx, path); err != nil {
			slog.Error("file failed", "file", path, "error", err)
			failed++
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if failed > 0 {
		_ = out.Error("E001", fmt.Sprintf("%d of %d files failed", failed, len(sorted)), nil)
		return NewExitError(ExitFailure, "ingestion incomplete")
	}
	return out.Success(fmt.Sprintf("processed %d files", len(sorted)))
}
