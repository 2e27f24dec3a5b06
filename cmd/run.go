package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/linear-stats/internal/log"
	"github.com/spiffcs/linear-stats/internal/output"
	"github.com/spiffcs/linear-stats/internal/service"
	"github.com/spiffcs/linear-stats/internal/tui"
)

// NewCmdRun creates the run command.
func NewCmdRun(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Aggregate issue statistics and write them to a file (same as root linear-stats)",
		Long: `Fetches every issue of the configured team, prints the counts per
status and writes them with run metadata as JSON to the output path.
Any failure exits non-zero.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPersist(cmd, opts)
		},
	}

	addRunFlags(cmd, opts)
	return cmd
}

// addAggregateFlags adds the flags shared by every command that talks to Linear.
func addAggregateFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.TeamID, "team", "t", "", "Linear team id (default: LINEAR_TEAM_ID or config)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Console output format (table, json, markdown)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Per-request timeout (default 30s)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable TUI progress (default: auto-detect)")
}

// addRunFlags adds the persisting-run flags to a command.
func addRunFlags(cmd *cobra.Command, opts *Options) {
	addAggregateFlags(cmd, opts)
	cmd.Flags().StringVarP(&opts.OutputPath, "output-path", "o", "", "Where to write the JSON summary")
	cmd.Flags().StringVar(&opts.Schedule, "schedule", "", "Schedule recorded in the summary metadata")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record this run in the history file")
}

func runPersist(cmd *cobra.Command, opts *Options) error {
	useTUI := setupLogging(opts)

	run, format, err := resolveRun(opts)
	if err != nil {
		return err
	}

	var result *service.Result
	err = withProgress(cmd.Context(), useTUI, tui.DefaultTasks(), func(ctx context.Context, events chan tui.Event) error {
		var err error
		if result, err = aggregate(ctx, run, events); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return persist(run, result.Summary, opts.NoHistory, events)
	})
	restoreLogging(useTUI, os.Stderr)
	if err != nil {
		return err
	}

	if err := output.NewFormatter(format).Format(result.Summary, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to print statistics: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Statistics saved to %s\n", run.OutputPath)
	log.Info("run complete", "team", result.Team.Name, "total", result.Summary.Metadata.TotalIssues)

	return nil
}
