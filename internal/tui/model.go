package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the Bubble Tea model for the TUI progress display.
type Model struct {
	tasks       []Task
	spinner     spinner.Model
	progress    progress.Model
	events      <-chan Event
	done        bool
	canceled    bool
	viewer      string
	windowWidth int
}

// doneMsg signals that the event channel was closed.
type doneMsg struct{}

// ModelOption is a functional option for configuring a Model.
type ModelOption func(*Model)

// WithTasks sets the tasks to display in the TUI.
func WithTasks(tasks []Task) ModelOption {
	return func(m *Model) {
		m.tasks = tasks
	}
}

// DefaultTasks returns the task list for a persisting run.
func DefaultTasks() []Task {
	return []Task{
		NewTask(TaskAuth, "Authenticating"),
		NewTask(TaskTeam, "Resolving team"),
		NewTask(TaskIssues, "Fetching issues"),
		NewTask(TaskWrite, "Writing results"),
	}
}

// ReportTasks returns the task list for the console-only report, which
// writes nothing.
func ReportTasks() []Task {
	return []Task{
		NewTask(TaskAuth, "Authenticating"),
		NewTask(TaskTeam, "Resolving team"),
		NewTask(TaskIssues, "Fetching issues"),
	}
}

// NewModel creates a new TUI model.
func NewModel(events <-chan Event, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(
		progress.WithScaledGradient("#a5b4fc", "#4338ca"),
		progress.WithWidth(25),
		progress.WithoutPercentage(),
	)

	m := Model{
		tasks:    DefaultTasks(),
		spinner:  s,
		progress: p,
		events:   events,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForEvent(m.events),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case TaskEvent:
		var cmd tea.Cmd
		m, cmd = m.updateTask(msg)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case DoneEvent, doneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// updateTask updates a task based on a TaskEvent.
func (m Model) updateTask(e TaskEvent) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for i := range m.tasks {
		if m.tasks[i].ID != e.Task {
			continue
		}
		m.tasks[i].Status = e.Status
		if e.Message != "" {
			m.tasks[i].Message = e.Message
		}
		if e.Count > 0 {
			m.tasks[i].Count = e.Count
		}
		if e.Progress > 0 {
			m.tasks[i].Progress = e.Progress
			cmd = m.progress.SetPercent(e.Progress)
		}
		if e.Error != nil {
			m.tasks[i].Error = e.Error
		}
		if e.Task == TaskAuth && e.Status == StatusComplete && e.Message != "" {
			m.viewer = e.Message
		}
		break
	}
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	var s string

	for _, task := range m.tasks {
		if task.ID == TaskAuth {
			switch task.Status {
			case StatusComplete:
				if m.viewer != "" {
					s += fmt.Sprintf("  %s Authenticated as %s\n", iconComplete, userStyle.Render(m.viewer))
					continue
				}
			case StatusRunning:
				s += fmt.Sprintf("  %s Authenticating...\n", spinnerStyle.Render(m.spinner.View()))
				continue
			}
		}
		s += task.View(m.spinner.View(), m.progress) + "\n"
	}

	if !m.done {
		s += footerStyle.Render("\n  Press Ctrl+C to cancel")
	}
	s += "\n"

	return s
}

// waitForEvent creates a command that waits for the next event.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return event
	}
}
