package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ciVars are environment variables set by common CI systems.
var ciVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"JENKINS_URL",
	"TRAVIS",
	"CIRCLECI",
	"GITLAB_CI",
	"BUILDKITE",
}

// ErrCanceled is returned by Run when the user quits before the work is done.
var ErrCanceled = errors.New("canceled by user")

// Run starts the TUI and blocks until it completes.
func Run(events <-chan Event, opts ...ModelOption) error {
	model := NewModel(events, opts...)
	// Render inline, not in the alt screen, so the table prints below it.
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return err
	}
	return canceled(final)
}

func canceled(final tea.Model) error {
	if m, ok := final.(Model); ok && m.canceled && !m.done {
		return ErrCanceled
	}
	return nil
}

// ShouldUseTUI returns true if the TUI should be used based on environment.
func ShouldUseTUI() bool {
	return shouldUseTUI(term.IsTerminal(int(os.Stdout.Fd())), os.LookupEnv)
}

func shouldUseTUI(isTerminal bool, lookup func(string) (string, bool)) bool {
	if !isTerminal {
		return false
	}
	for _, v := range ciVars {
		if val, ok := lookup(v); ok && val != "" {
			return false
		}
	}
	return true
}

// SendEvent sends an event to the channel in a non-blocking manner.
func SendEvent(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- e:
	default:
		// Drop the event if the channel is full
	}
}

// SendTaskEvent is a convenience function for sending task events.
func SendTaskEvent(ch chan<- Event, task TaskID, status TaskStatus, opts ...TaskEventOption) {
	e := TaskEvent{
		Task:   task,
		Status: status,
	}
	for _, opt := range opts {
		opt(&e)
	}
	SendEvent(ch, e)
}

// TaskEventOption is a functional option for TaskEvent.
type TaskEventOption func(*TaskEvent)

// WithMessage sets the message on a TaskEvent.
func WithMessage(msg string) TaskEventOption {
	return func(e *TaskEvent) {
		e.Message = msg
	}
}

// WithCount sets the count on a TaskEvent.
func WithCount(count int) TaskEventOption {
	return func(e *TaskEvent) {
		e.Count = count
	}
}

// WithProgress sets the progress on a TaskEvent.
func WithProgress(progress float64) TaskEventOption {
	return func(e *TaskEvent) {
		e.Progress = progress
	}
}

// WithError sets the error on a TaskEvent.
func WithError(err error) TaskEventOption {
	return func(e *TaskEvent) {
		e.Error = err
	}
}
