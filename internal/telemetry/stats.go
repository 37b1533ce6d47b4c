package telemetry

import "time"

type Stats struct {
	Period          string            `json:"period"`
	EventCounts     map[EventType]int `json:"event_counts"`
	TasksCreated    int               `json:"tasks_created"`
	TaskCompletions int               `json:"task_completions"`
	TasksReopened   int               `json:"tasks_reopened"`
	TasksPerDay     float64           `json:"tasks_per_day"`
	LevelUps        int               `json:"level_ups"`
	ThemesUnlocked  int               `json:"themes_unlocked"`
}

// CalculateStats aggregates activity events recorded since the given time.
func CalculateStats(events []Event, since time.Time, now time.Time) Stats {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		switch event.Type {
		case EventTaskCreated:
			stats.TasksCreated++
		case EventTaskCompleted:
			stats.TaskCompletions++
		case EventTaskReopened:
			stats.TasksReopened++
		case EventLevelUp:
			stats.LevelUps++
		case EventThemeUnlocked:
			stats.ThemesUnlocked++
		}
	}

	days := now.Sub(since).Hours() / 24
	if days < 1 {
		days = 1
	}
	stats.TasksPerDay = float64(stats.TasksCreated) / days

	return stats
}
