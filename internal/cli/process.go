package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/legisync/internal/config"
	"github.com/roach88/legisync/internal/process"
	"github.com/roach88/legisync/internal/store"
)

// ProcessOptions holds flags for the process command.
type ProcessOptions struct {
	*RootOptions
	Database string
	Config   string
}

// NewProcessCommand creates the process command.
func NewProcessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProcessOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "process <files...>",
		Short: "Apply SOBI change files to the bill store",
		Long: `Apply one or more SOBI change files to the bill document store.

Files are processed in lexicographic name order, which for SOBI files is
chronological order. Within a file each block is isolated: a block that
fails to parse is logged and skipped, and processing continues.

Example:
  legisync process --db ./legisync.db SOBI.D110101.T100000.TXT
  legisync process --db ./legisync.db --config overrides.yaml data/*.TXT`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to override config (YAML)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runProcess(ctx context.Context, opts *ProcessOptions, files []string, cmd *cobra.Command) error {
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
	proc := process.New(st, cl, cfg)

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

// loadConfig loads the override config from path, falling back to the
// embedded defaults when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

func openStore(path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}
