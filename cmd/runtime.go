package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/spiffcs/linear-stats/config"
	"github.com/spiffcs/linear-stats/internal/action"
	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/linear"
	"github.com/spiffcs/linear-stats/internal/log"
	"github.com/spiffcs/linear-stats/internal/model"
	"github.com/spiffcs/linear-stats/internal/output"
	"github.com/spiffcs/linear-stats/internal/service"
	"github.com/spiffcs/linear-stats/internal/stats"
	"github.com/spiffcs/linear-stats/internal/tui"
)

// runTUI drives the progress display; tests replace it.
var runTUI = tui.Run

// setupLogging initializes the logger and reports whether the TUI is used.
// Logs are discarded while the TUI owns the terminal.
func setupLogging(opts *Options) bool {
	useTUI := shouldUseTUI(opts)
	if useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}
	log.SetAnnotations(annotationSink(output.Format(opts.Format), os.LookupEnv, os.Stdout))
	return useTUI
}

// restoreLogging sends logs back to w once the TUI has released the terminal.
func restoreLogging(useTUI bool, w io.Writer) {
	if useTUI {
		log.Initialize(log.Verbosity(), w)
	}
}

// annotationSink returns where workflow annotations go, or nil when they
// are off. Annotations share stdout with the formatted output, so they are
// suppressed when that output is JSON.
func annotationSink(format output.Format, env action.Env, stdout io.Writer) io.Writer {
	if !action.IsActions(env) || format == output.FormatJSON {
		return nil
	}
	return stdout
}

// resolveRun loads the config files and resolves the run inputs.
func resolveRun(opts *Options) (config.Run, output.Format, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Run{}, "", fmt.Errorf("failed to load config: %w", err)
	}

	run, err := config.Resolve(cfg, opts.overrides(), os.LookupEnv)
	if err != nil {
		return config.Run{}, "", err
	}

	format, err := output.ParseFormat(run.Format)
	if err != nil {
		return config.Run{}, "", apperr.Configuration(err.Error())
	}

	log.SetAnnotations(annotationSink(format, os.LookupEnv, os.Stdout))
	log.Debug("resolved run", "team_id", run.TeamID, "output", run.OutputPath, "schedule", run.Schedule, "timeout", run.Timeout)
	return run, format, nil
}

// withProgress runs fn alongside the TUI. Without the TUI, fn gets a nil
// event channel. Quitting the TUI cancels the context passed to fn.
func withProgress(ctx context.Context, useTUI bool, tasks []tui.Task, fn func(context.Context, chan tui.Event) error) error {
	if !useTUI {
		return fn(ctx, nil)
	}

	events := make(chan tui.Event, 100)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runTUI(events, tui.WithTasks(tasks))
	})
	g.Go(func() error {
		defer close(events)
		if err := fn(gctx, events); err != nil {
			return err
		}
		tui.SendEvent(events, tui.DoneEvent{})
		return nil
	})
	return g.Wait()
}

// sendTaskEvent sends a task event to the TUI channel if it exists.
func sendTaskEvent(events chan tui.Event, task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if events == nil {
		return
	}
	tui.SendTaskEvent(events, task, status, opts...)
}

// progressTracker turns aggregator progress into TUI task events.
type progressTracker struct {
	events  chan tui.Event
	current tui.TaskID
	started bool
}

func (p *progressTracker) observe(pr service.Progress) {
	var task tui.TaskID
	switch pr.Stage {
	case service.StageIdentity:
		task = tui.TaskAuth
	case service.StageTeam:
		task = tui.TaskTeam
	case service.StageIssues:
		task = tui.TaskIssues
	default:
		return
	}
	p.current = task
	p.started = true

	switch {
	case pr.Done && pr.Stage == service.StageIssues:
		sendTaskEvent(p.events, task, tui.StatusComplete,
			tui.WithMessage(pluralize(pr.Page, "page")), tui.WithCount(pr.Issues))
	case pr.Done:
		sendTaskEvent(p.events, task, tui.StatusComplete, tui.WithMessage(pr.Label))
	case pr.Page > 0:
		sendTaskEvent(p.events, task, tui.StatusRunning,
			tui.WithMessage(fmt.Sprintf("page %d", pr.Page)), tui.WithCount(pr.Issues))
	default:
		sendTaskEvent(p.events, task, tui.StatusRunning)
	}
}

// fail marks the task that was running when err occurred and skips the
// tasks after it.
func (p *progressTracker) fail(err error) {
	task := p.current
	if !p.started {
		// Input validation fails before any request is made.
		task = tui.TaskTeam
	}
	sendTaskEvent(p.events, task, tui.StatusError, tui.WithError(err))
	for next := task + 1; next <= tui.TaskWrite; next++ {
		sendTaskEvent(p.events, next, tui.StatusSkipped)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// aggregate connects to Linear and runs the aggregation for the resolved
// inputs.
func aggregate(ctx context.Context, run config.Run, events chan tui.Event) (*service.Result, error) {
	tracker := &progressTracker{events: events}

	client, err := linear.NewClient(ctx, run.APIKey,
		linear.WithEndpoint(run.Endpoint),
		linear.WithTimeout(run.Timeout),
	)
	if err != nil {
		sendTaskEvent(events, tui.TaskAuth, tui.StatusError, tui.WithError(err))
		return nil, err
	}

	agg := service.New(client, service.WithProgress(tracker.observe))
	result, err := agg.Run(ctx, service.RunOptions{TeamID: run.TeamID, Schedule: run.Schedule})
	if err != nil {
		tracker.fail(err)
		return nil, err
	}
	return result, nil
}

// persist writes the summary file, then records history and the job
// summary. Only the summary file is required to succeed.
func persist(run config.Run, summary model.RunSummary, noHistory bool, events chan tui.Event) error {
	sendTaskEvent(events, tui.TaskWrite, tui.StatusRunning)

	if err := output.WriteFile(run.OutputPath, summary); err != nil {
		err = fmt.Errorf("failed to write statistics: %w", err)
		sendTaskEvent(events, tui.TaskWrite, tui.StatusError, tui.WithError(err))
		return err
	}
	log.Info("wrote statistics", "path", run.OutputPath)
	sendTaskEvent(events, tui.TaskWrite, tui.StatusRunning, tui.WithProgress(1.0/3), tui.WithMessage("summary file"))

	if !noHistory {
		recordHistory(run.HistoryPath, summary)
	}
	sendTaskEvent(events, tui.TaskWrite, tui.StatusRunning, tui.WithProgress(2.0/3), tui.WithMessage("history"))

	publishStepSummary(summary)
	sendTaskEvent(events, tui.TaskWrite, tui.StatusComplete, tui.WithMessage(run.OutputPath))

	return nil
}

// recordHistory appends the summary to the history file. Failures are
// logged and otherwise ignored.
func recordHistory(path string, summary model.RunSummary) {
	if path == "" {
		var err error
		if path, err = stats.DefaultHistoryPath(); err != nil {
			log.Warn("could not locate history file", "error", err)
			return
		}
	}
	if err := stats.NewStore(path).Append(summary); err != nil {
		log.Warn("could not record run history", "path", path, "error", err)
		return
	}
	log.Debug("recorded run history", "path", path)
}

// publishStepSummary adds the Markdown table to the GitHub job summary when
// running in Actions.
func publishStepSummary(summary model.RunSummary) {
	var buf bytes.Buffer
	if err := (&output.MarkdownFormatter{}).Format(summary, &buf); err != nil {
		log.Warn("could not render step summary", "error", err)
		return
	}
	if err := action.AppendStepSummary(os.LookupEnv, buf.String()); err != nil {
		log.Warn("could not write step summary", "error", err)
	}
}
