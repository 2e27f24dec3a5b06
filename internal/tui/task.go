package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// Task represents a single task in the TUI progress display.
type Task struct {
	ID       TaskID
	Name     string
	Status   TaskStatus
	Message  string
	Count    int
	Progress float64
	Error    error
}

// NewTask creates a new task with the given ID and name.
func NewTask(id TaskID, name string) Task {
	return Task{
		ID:     id,
		Name:   name,
		Status: StatusPending,
	}
}

// detail joins the task message and issue count.
func (t Task) detail() string {
	var parts []string
	if t.Message != "" {
		parts = append(parts, t.Message)
	}
	if t.Count > 0 {
		noun := "issues"
		if t.Count == 1 {
			noun = "issue"
		}
		parts = append(parts, fmt.Sprintf("%d %s", t.Count, noun))
	}
	return strings.Join(parts, " · ")
}

// View renders the task as a string.
func (t Task) View(spinnerFrame string, prog progress.Model) string {
	icon := StatusIcon(t.Status, spinnerFrame)

	name := taskNameStyle.Render(t.Name)
	if t.Status == StatusPending {
		name = taskDimStyle.Render(t.Name)
	}

	line := fmt.Sprintf("  %s %s", icon, name)

	detail := t.detail()
	if t.Status == StatusRunning && t.Progress > 0 {
		line += fmt.Sprintf(" %s %d%%", prog.ViewAs(t.Progress), int(t.Progress*100))
		if detail != "" {
			line += " " + messageStyle.Render("("+detail+")")
		}
	} else if detail != "" {
		line += " " + messageStyle.Render(detail)
	}

	if t.Error != nil {
		line += " " + errorStyle.Render(t.Error.Error())
	}

	return line
}
