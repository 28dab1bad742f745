package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <bill-id>",
		Short: "Show a stored bill",
		Long: `Print the stored state of a bill as JSON.

The bill id includes the session year, e.g. S1234-2011 or S1234A-2011.

Example:
  legisync show --db ./legisync.db S1234-2011`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runShow(ctx context.Context, opts *ShowOptions, billID string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(opts.Database)
	if err != nil {
		return err
	}
	defer closeStore(st)

	b, err := st.GetBillByID(ctx, billID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read bill", err)
	}
	if b == nil {
		return NewExitError(ExitFailure, fmt.Sprintf("bill %s not found", billID))
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(b)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode bill", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
