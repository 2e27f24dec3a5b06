package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/log"
	"github.com/spiffcs/linear-stats/internal/output"
	"github.com/spiffcs/linear-stats/internal/service"
	"github.com/spiffcs/linear-stats/internal/tui"
)

// NewCmdReport creates the report command.
func NewCmdReport() *cobra.Command {
	opts := NewOptions()

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print issue statistics without writing any files",
		Long: `Fetches every issue of the configured team and prints the counts per
status. Nothing is written. Failures are logged and the command still exits 0.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runReport(cmd, opts)
			return nil
		},
	}

	addAggregateFlags(cmd, opts)
	return cmd
}

// runReport is the console-only variant. It swallows every error after
// logging it.
func runReport(cmd *cobra.Command, opts *Options) {
	useTUI := setupLogging(opts)

	run, format, err := resolveRun(opts)
	if err != nil {
		restoreLogging(useTUI, os.Stderr)
		reportFailure(err)
		return
	}

	var result *service.Result
	err = withProgress(cmd.Context(), useTUI, tui.ReportTasks(), func(ctx context.Context, events chan tui.Event) error {
		var err error
		result, err = aggregate(ctx, run, events)
		return err
	})
	restoreLogging(useTUI, os.Stderr)
	if err != nil {
		reportFailure(err)
		return
	}

	if err := output.NewFormatter(format).Format(result.Summary, cmd.OutOrStdout()); err != nil {
		reportFailure(err)
	}
}

func reportFailure(err error) {
	args := []any{"error", err}
	if s := apperr.SuggestionOf(err); s != "" {
		args = append(args, "suggestion", s)
	}
	log.Error("failed to generate issue statistics", args...)
}
