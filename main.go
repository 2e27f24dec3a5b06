package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spiffcs/linear-stats/cmd"
	"github.com/spiffcs/linear-stats/internal/apperr"
)

// Set via ldflags
var (
	version string
	commit  string
	date    string
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.New().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if s := apperr.SuggestionOf(err); s != "" {
			fmt.Fprintln(os.Stderr, "Hint:", s)
		}
		os.Exit(apperr.ExitCode(err))
	}
}
