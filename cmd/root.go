package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "linear-stats",
		Short: "Linear team issue statistics",
		Long: `Fetches every issue of a Linear team, counts them by workflow
status (Todo, In Progress, Backlog, Waiting, Other) and writes the counts
with run metadata to a JSON file.

The API key is read from LINEAR_API_KEY.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPersist(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// `linear-stats` and `linear-stats run` behave identically
	addRunFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdRun(opts))
	rootCmd.AddCommand(NewCmdReport())
	rootCmd.AddCommand(NewCmdPre())
	rootCmd.AddCommand(NewCmdPost())
	rootCmd.AddCommand(NewCmdHistory())
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
