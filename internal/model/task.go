package model

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// DueDateLayout is the day-granularity format for task due dates.
// A due date is anchored at UTC midnight, so "days until due" can be
// fractional relative to the current instant.
const DueDateLayout = "2006-01-02"

type Subtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Priority  Priority  `json:"priority"`
	DueDate   *string   `json:"dueDate,omitempty"`
	Subtasks  []Subtask `json:"subtasks"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	Order     int       `json:"order"`
}

func (t *Task) SubtasksDone() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Done {
			n++
		}
	}
	return n
}

// AllSubtasksDone reports whether the task has at least one subtask and
// every one of them is done. A task with no subtasks never auto-completes.
func (t *Task) AllSubtasksDone() bool {
	return len(t.Subtasks) > 0 && t.SubtasksDone() == len(t.Subtasks)
}

// DueAt parses the due date at UTC midnight. ok is false when the task has
// no due date or the stored value does not parse.
func (t *Task) DueAt() (due time.Time, ok bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	due, err := time.Parse(DueDateLayout, *t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}
