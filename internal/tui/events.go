package tui

// TaskID identifies a task in the TUI progress display.
type TaskID int

const (
	TaskAuth   TaskID = iota // Authenticating with Linear
	TaskTeam                 // Resolving the configured team
	TaskIssues               // Paging through the team's issues
	TaskWrite                // Writing the summary file, history and step summary
)

// TaskStatus represents the current status of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is the interface for all TUI events.
type Event interface {
	isEvent()
}

// TaskEvent represents an update to a task's status.
type TaskEvent struct {
	Task     TaskID
	Status   TaskStatus
	Message  string  // Optional message (e.g., "page 3")
	Count    int     // Count of items (e.g., issues fetched)
	Progress float64 // Progress from 0.0 to 1.0
	Error    error   // Error if status is StatusError
}

func (TaskEvent) isEvent() {}

// DoneEvent signals that all work is complete.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
