// Package due classifies tasks by how close their due date is to a given
// instant. "now" is always an explicit parameter so callers (and tests) can
// pin it.
package due

import (
	"math"
	"time"

	"github.com/mariaspatani/SmartTodo/internal/model"
)

type Status string

const (
	StatusNone    Status = "none"
	StatusOverdue Status = "overdue"
	StatusSoon    Status = "soon"
	StatusFuture  Status = "future"
)

const (
	ViewAll     = "all"
	ViewOverdue = "overdue"
	ViewToday   = "today"
	ViewWeek    = "week"
	ViewMonth   = "month"
)

// diffDays is the signed distance from now to the task's due date, in days,
// fractional (not floored). The due date sits at UTC midnight.
func diffDays(t *model.Task, now time.Time) (float64, bool) {
	dueAt, ok := t.DueAt()
	if !ok {
		return 0, false
	}
	return dueAt.Sub(now).Hours() / 24, true
}

// Classify buckets a task's due date relative to now. A task due within one
// day (inclusive) counts as soon; a task with no due date is none.
func Classify(t *model.Task, now time.Time) Status {
	d, ok := diffDays(t, now)
	if !ok {
		return StatusNone
	}
	switch {
	case d < 0:
		return StatusOverdue
	case d <= 1:
		return StatusSoon
	default:
		return StatusFuture
	}
}

// MatchView reports whether a task belongs to a named due-date view.
//
// Tasks without a due date match every view except "overdue". The "today"
// view uses |diffDays| < 1, so it also matches tasks up to one day overdue.
func MatchView(t *model.Task, view string, now time.Time) bool {
	if view == ViewAll {
		return true
	}
	d, ok := diffDays(t, now)
	if !ok {
		return view != ViewOverdue
	}
	switch view {
	case ViewOverdue:
		return d < 0
	case ViewToday:
		return math.Abs(d) < 1
	case ViewWeek:
		return d >= 0 && d <= 7
	case ViewMonth:
		return d >= 0 && d <= 31
	default:
		return true
	}
}
