package due

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mariaspatani/SmartTodo/internal/model"
)

func taskDue(date string) *model.Task {
	t := &model.Task{Title: "x"}
	if date != "" {
		t.DueDate = &date
	}
	return t
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  string
		want Status
	}{
		{"no due date", "", StatusNone},
		{"due exactly now", "2026-03-10", StatusSoon},
		{"due tomorrow", "2026-03-11", StatusSoon},
		{"due in two days", "2026-03-12", StatusFuture},
		{"due yesterday", "2026-03-09", StatusOverdue},
		{"unparseable due date", "soonish", StatusNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(taskDue(tc.due), now))
		})
	}
}

func TestClassify_FractionalDays(t *testing.T) {
	// Noon on the due date itself: the day anchor is midnight UTC, so the
	// task is already half a day overdue.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusOverdue, Classify(taskDue("2026-03-10"), now))
	assert.Equal(t, StatusSoon, Classify(taskDue("2026-03-11"), now))
}

func TestMatchView(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		due  string
		view string
		want bool
	}{
		{"all matches everything", "2020-01-01", ViewAll, true},
		{"no due date passes today", "", ViewToday, true},
		{"no due date fails overdue", "", ViewOverdue, false},
		{"due now is today", "2026-03-10", ViewToday, true},
		{"due in two days is not today", "2026-03-12", ViewToday, false},
		{"due in two days is this week", "2026-03-12", ViewWeek, true},
		{"due in eight days is not this week", "2026-03-18", ViewWeek, false},
		{"due in eight days is this month", "2026-03-18", ViewMonth, true},
		{"due in forty days is not this month", "2026-04-19", ViewMonth, false},
		{"yesterday is overdue", "2026-03-09", ViewOverdue, true},
		{"overdue is not in week", "2026-03-09", ViewWeek, false},
		{"unknown view matches", "2026-03-09", "someday", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchView(taskDue(tc.due), tc.view, now))
		})
	}
}

// The today view uses |diffDays| < 1 while the soon status uses 0 <= diff
// <= 1: a task half a day overdue is classified overdue yet still shows up
// under today. That overlap is intentional.
func TestMatchView_TodayIncludesSlightlyOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	task := taskDue("2026-03-10")

	assert.Equal(t, StatusOverdue, Classify(task, now))
	assert.True(t, MatchView(task, ViewToday, now))
	assert.True(t, MatchView(task, ViewOverdue, now))
}
