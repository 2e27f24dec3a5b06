package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiffcs/linear-stats/config"
	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/output"
	"github.com/spiffcs/linear-stats/internal/stats"
)

// NewCmdHistory creates the history command.
func NewCmdHistory() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded runs",
		Long: `Show the most recent runs recorded in the history file, oldest first.

Every persisting run appends its summary unless --no-history is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, limit, format)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", constants.DefaultHistoryLimit, "Number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, markdown)")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, format string) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := cfg.HistoryPath
	if path == "" {
		if path, err = stats.DefaultHistoryPath(); err != nil {
			return err
		}
	}

	runs, err := stats.NewStore(path).Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	return output.NewFormatter(f).FormatHistory(runs, cmd.OutOrStdout())
}
