package telemetry

import "time"

type EventType string

const (
	EventTaskCreated    EventType = "task_created"
	EventTaskCompleted  EventType = "task_completed"
	EventTaskReopened   EventType = "task_reopened"
	EventTaskEdited     EventType = "task_edited"
	EventTaskDeleted    EventType = "task_deleted"
	EventTaskReordered  EventType = "task_reordered"
	EventSubtaskToggled EventType = "subtask_toggled"
	EventLevelUp        EventType = "level_up"
	EventThemeUnlocked  EventType = "theme_unlocked"
	EventThemeSelected  EventType = "theme_selected"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
