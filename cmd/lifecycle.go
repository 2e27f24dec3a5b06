package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/linear-stats/config"
	"github.com/spiffcs/linear-stats/internal/action"
	"github.com/spiffcs/linear-stats/internal/log"
)

// hookOutputPath resolves the summary path the same way a run does: flag,
// then environment, then config file, then default.
func hookOutputPath(flag string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	run, err := config.Resolve(cfg, config.Overrides{OutputPath: flag}, os.LookupEnv)
	if err != nil {
		return "", err
	}
	return run.OutputPath, nil
}

// setupHookLogging initializes logging for a lifecycle hook, which never
// shows the TUI.
func setupHookLogging(verbosity int) {
	noTUI := false
	setupLogging(NewOptions(WithVerbosity(verbosity), WithTUI(&noTUI)))
}

// NewCmdPre creates the pre command, run before the main step in CI.
func NewCmdPre() *cobra.Command {
	var (
		outputPath string
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:   "pre",
		Short: "Prepare the output directory (CI pre step)",
		RunE: func(_ *cobra.Command, _ []string) error {
			setupHookLogging(verbosity)
			path, err := hookOutputPath(outputPath)
			if err != nil {
				return err
			}
			return action.Pre(path)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "Path of the JSON summary")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity")
	return cmd
}

// NewCmdPost creates the post command, run after the main step in CI.
func NewCmdPost() *cobra.Command {
	var (
		outputPath string
		verbosity  int
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Verify the summary file and publish its path as a step output (CI post step)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupHookLogging(verbosity)
			path, err := hookOutputPath(outputPath)
			if err != nil {
				return err
			}
			if err := action.Post(os.LookupEnv, path, cmd.OutOrStdout()); err != nil {
				log.Error("post step failed", "path", path, "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output-path", "o", "", "Path of the JSON summary")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity")
	return cmd
}
