package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskIDsDistinct(t *testing.T) {
	ids := []TaskID{TaskAuth, TaskTeam, TaskIssues, TaskWrite}
	seen := make(map[TaskID]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate task ID: %d", id)
		seen[id] = true
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask(TaskIssues, "Fetching issues")

	assert.Equal(t, TaskIssues, task.ID)
	assert.Equal(t, "Fetching issues", task.Name)
	assert.Equal(t, StatusPending, task.Status)
}

func TestDefaultTasks(t *testing.T) {
	tasks := DefaultTasks()
	require.Len(t, tasks, 4)
	assert.Equal(t, TaskWrite, tasks[3].ID)

	report := ReportTasks()
	require.Len(t, report, 3)
	for _, task := range report {
		assert.NotEqual(t, TaskWrite, task.ID)
	}
}

func TestSendEvent(t *testing.T) {
	ch := make(chan Event, 1)
	SendEvent(ch, TaskEvent{Task: TaskAuth, Status: StatusComplete})

	select {
	case received := <-ch:
		te, ok := received.(TaskEvent)
		require.True(t, ok)
		assert.Equal(t, TaskAuth, te.Task)
	default:
		t.Fatal("expected event in channel")
	}
}

func TestSendEventFullOrNilChannel(t *testing.T) {
	SendEvent(nil, TaskEvent{})

	ch := make(chan Event, 1)
	SendEvent(ch, TaskEvent{Task: TaskAuth})
	// The second send must not block.
	SendEvent(ch, TaskEvent{Task: TaskTeam})
	assert.Len(t, ch, 1)
}

func TestSendTaskEvent(t *testing.T) {
	ch := make(chan Event, 1)
	testErr := errors.New("boom")

	SendTaskEvent(ch, TaskIssues, StatusError,
		WithMessage("page 3"),
		WithCount(250),
		WithProgress(0.75),
		WithError(testErr),
	)

	te, ok := (<-ch).(TaskEvent)
	require.True(t, ok)
	assert.Equal(t, TaskEvent{
		Task:     TaskIssues,
		Status:   StatusError,
		Message:  "page 3",
		Count:    250,
		Progress: 0.75,
		Error:    testErr,
	}, te)
}

func TestShouldUseTUI(t *testing.T) {
	noEnv := func(string) (string, bool) { return "", false }
	ci := func(key string) (string, bool) {
		if key == "GITHUB_ACTIONS" {
			return "true", true
		}
		return "", false
	}
	emptyCI := func(key string) (string, bool) { return "", key == "CI" }

	assert.True(t, shouldUseTUI(true, noEnv))
	assert.False(t, shouldUseTUI(false, noEnv))
	assert.False(t, shouldUseTUI(true, ci))
	assert.True(t, shouldUseTUI(true, emptyCI))
}

func TestStatusIcon(t *testing.T) {
	for _, status := range []TaskStatus{StatusPending, StatusRunning, StatusComplete, StatusError, StatusSkipped} {
		assert.NotEmpty(t, StatusIcon(status, ">"), "status %d", status)
	}
}

func TestTaskView(t *testing.T) {
	prog := progress.New(progress.WithWidth(10), progress.WithoutPercentage())

	task := NewTask(TaskIssues, "Fetching issues")
	task.Status = StatusRunning
	task.Message = "page 2"
	task.Count = 150

	view := task.View(">", prog)
	assert.Contains(t, view, "Fetching issues")
	assert.Contains(t, view, "page 2 · 150 issues")

	task.Count = 1
	task.Message = ""
	assert.Contains(t, task.View(">", prog), "1 issue")

	task.Status = StatusError
	task.Error = errors.New("request failed")
	assert.Contains(t, task.View(">", prog), "request failed")
}

func TestModelUpdateTask(t *testing.T) {
	ch := make(chan Event)
	m := NewModel(ch)

	m, _ = m.updateTask(TaskEvent{Task: TaskAuth, Status: StatusComplete, Message: "Ada (Acme)"})
	m, _ = m.updateTask(TaskEvent{Task: TaskIssues, Status: StatusRunning, Message: "page 1", Count: 100})

	assert.Equal(t, "Ada (Acme)", m.viewer)
	assert.Equal(t, StatusRunning, m.tasks[2].Status)
	assert.Equal(t, 100, m.tasks[2].Count)

	view := m.View()
	assert.True(t, strings.Contains(view, "Authenticated as"))
	assert.Contains(t, view, "Ctrl+C")
}

func TestModelDone(t *testing.T) {
	m := NewModel(make(chan Event))

	next, cmd := m.Update(DoneEvent{})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).done)
	assert.NotContains(t, next.(Model).View(), "Ctrl+C")
}

func TestModelQuitCancels(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		m := NewModel(make(chan Event))
		next, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.True(t, next.(Model).canceled, key.String())
		assert.ErrorIs(t, canceled(next), ErrCanceled)
	}
}

func TestFinishedModelIsNotCanceled(t *testing.T) {
	m := NewModel(make(chan Event))
	next, _ := m.Update(doneMsg{})
	assert.NoError(t, canceled(next))
	assert.NoError(t, canceled(nil))
}
