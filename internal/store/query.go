package store

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mariaspatani/SmartTodo/internal/due"
	"github.com/mariaspatani/SmartTodo/internal/model"
)

// Filter selects the visible slice of the collection. Empty Search matches
// everything; "all" (or empty) disables the category/priority dimensions;
// View is one of the due-date buckets, with unknown values matching all.
type Filter struct {
	Search   string
	Category string
	Priority string
	View     string
}

// List returns the filtered tasks sorted ascending by order key. It never
// mutates the store; the result is recomputed from scratch on every call.
func (s *Store) List(f Filter, now time.Time) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	view := f.View
	if view == "" {
		view = due.ViewAll
	}

	out := make([]model.Task, 0, len(s.tasks))
	for i := range s.tasks {
		t := &s.tasks[i]

		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		if f.Category != "" && f.Category != "all" && t.Category != f.Category {
			continue
		}
		if f.Priority != "" && f.Priority != "all" && string(t.Priority) != f.Priority {
			continue
		}
		if !due.MatchView(t, view, now) {
			continue
		}
		out = append(out, cloneTask(*t))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Stats is the raw state the presentation layer needs beside the task list.
type Stats struct {
	Total          int      `json:"total"`
	Completed      int      `json:"completed"`
	CompletionPct  int      `json:"completionPct"`
	XP             int      `json:"xp"`
	Level          int      `json:"level"`
	Threshold      int      `json:"threshold"`
	Theme          string   `json:"theme"`
	UnlockedThemes []string `json:"unlockedThemes"`
	Categories     []string `json:"categories"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := 0
	for i := range s.tasks {
		if s.tasks[i].Completed {
			completed++
		}
	}
	total := len(s.tasks)
	denom := total
	if denom == 0 {
		denom = 1
	}

	return Stats{
		Total:          total,
		Completed:      completed,
		CompletionPct:  int(math.Round(float64(completed) / float64(denom) * 100)),
		XP:             s.meta.XP,
		Level:          s.meta.Level,
		Threshold:      s.balance.Threshold(s.meta.Level),
		Theme:          s.meta.Theme,
		UnlockedThemes: append([]string{}, s.meta.UnlockedThemes...),
		Categories:     s.categoriesLocked(),
	}
}

// categoriesLocked lists distinct categories in first-seen (creation) order,
// feeding the category filter dropdown.
func (s *Store) categoriesLocked() []string {
	seen := map[string]bool{}
	out := []string{}
	for i := range s.tasks {
		c := s.tasks[i].Category
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// DueSoonReminder returns the first not-yet-completed task, in creation
// order, whose due date classifies as soon.
func (s *Store) DueSoonReminder(now time.Time) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tasks {
		t := &s.tasks[i]
		if !t.Completed && due.Classify(t, now) == due.StatusSoon {
			return cloneTask(*t), true
		}
	}
	return model.Task{}, false
}
