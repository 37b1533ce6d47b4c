// Package store owns the application state: the task collection and the
// progression meta record. All mutations go through a *Store, which keeps
// the order-key invariant intact and flushes to the persistence gateway
// after every successful mutation.
package store

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mariaspatani/SmartTodo/internal/model"
	"github.com/mariaspatani/SmartTodo/internal/progress"
	"github.com/mariaspatani/SmartTodo/internal/telemetry"
)

// Gateway persists the two state records. Load must tolerate absent or
// corrupt data by returning defaults; it never fails. Save is
// fire-and-forget from the store's point of view: a failed flush is logged
// and the in-memory state stays authoritative for the session.
type Gateway interface {
	Load() ([]model.Task, model.Meta)
	Save(tasks []model.Task, meta model.Meta) error
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGen supplies fresh opaque ids. Tests inject a deterministic sequence.
type IDGen func() string

func NewID() string { return uuid.NewString() }

type Options struct {
	Gateway Gateway
	Clock   Clock
	NewID   IDGen
	Balance progress.Balance
	Events  telemetry.Repository
	Logger  *log.Logger
}

type Store struct {
	mu      sync.RWMutex
	tasks   []model.Task
	meta    model.Meta
	gateway Gateway
	clock   Clock
	newID   IDGen
	balance progress.Balance
	events  telemetry.Repository
	logger  *log.Logger
}

// New builds a store and hydrates it from the gateway. The loaded meta is
// normalized and the order seed is clamped so the next issued order key is
// strictly greater than any existing one.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.NewID == nil {
		opts.NewID = NewID
	}
	if opts.Balance.ThresholdBase == 0 {
		opts.Balance = progress.DefaultBalance()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	s := &Store{
		gateway: opts.Gateway,
		clock:   opts.Clock,
		newID:   opts.NewID,
		balance: opts.Balance,
		events:  opts.Events,
		logger:  opts.Logger,
	}

	if s.gateway != nil {
		s.tasks, s.meta = s.gateway.Load()
	}
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	s.meta.Normalize()
	if seed := nextOrderSeed(s.tasks); s.meta.OrderSeed < seed {
		s.meta.OrderSeed = seed
	}
	return s
}

func nextOrderSeed(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	max := tasks[0].Order
	for _, t := range tasks[1:] {
		if t.Order > max {
			max = t.Order
		}
	}
	return max + 1
}

func (s *Store) Now() time.Time { return s.clock.Now() }

func (s *Store) Balance() progress.Balance { return s.balance }

// AddRequest carries the raw add-command fields. Subtasks is checklist
// text, one item per non-empty line.
type AddRequest struct {
	Title    string         `json:"title"`
	Category string         `json:"category"`
	Priority model.Priority `json:"priority"`
	DueDate  string         `json:"dueDate"`
	Subtasks string         `json:"subtasks"`
}

// Add creates a task. A title that trims to empty is rejected and nothing
// changes, not even the order seed.
func (s *Store) Add(req AddRequest) (model.Task, bool) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "General"
	}

	t := model.Task{
		ID:        s.newID(),
		Title:     title,
		Category:  category,
		Priority:  req.Priority,
		Subtasks:  s.parseSubtasks(req.Subtasks),
		Completed: false,
		CreatedAt: s.clock.Now(),
		Order:     s.meta.OrderSeed,
	}
	s.meta.OrderSeed++

	if d := strings.TrimSpace(req.DueDate); d != "" {
		t.DueDate = &d
	}

	s.tasks = append(s.tasks, t)
	s.record(telemetry.EventTaskCreated, telemetry.EventMetadata{"task_id": t.ID, "priority": string(t.Priority)})
	s.saveLocked()
	return cloneTask(t), true
}

func (s *Store) parseSubtasks(raw string) []model.Subtask {
	subs := []model.Subtask{}
	for _, line := range strings.Split(raw, "\n") {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		subs = append(subs, model.Subtask{ID: s.newID(), Title: title, Done: false})
	}
	return subs
}

// ToggleResult is returned by the completion-affecting operations. Award is
// non-nil only when the operation transitioned the task to completed.
type ToggleResult struct {
	Task  model.Task      `json:"task"`
	Award *progress.Award `json:"award,omitempty"`
}

// Toggle flips a task's completed flag. The false→true transition awards
// XP; reopening never claws any back.
func (s *Store) Toggle(id string) (ToggleResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ToggleResult{}, false
	}

	t := &s.tasks[i]
	t.Completed = !t.Completed

	res := ToggleResult{}
	if t.Completed {
		res.Award = s.awardLocked(t)
	} else {
		s.record(telemetry.EventTaskReopened, telemetry.EventMetadata{"task_id": t.ID})
	}
	res.Task = cloneTask(*t)
	s.saveLocked()
	return res, true
}

// Delete removes a task. Remaining order keys are left as-is; gaps are fine
// because ordering only ever compares keys.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.record(telemetry.EventTaskDeleted, telemetry.EventMetadata{"task_id": id})
	s.saveLocked()
	return true
}

// Patch is a partial task update. nil pointer => "no change". An empty
// title leaves the title unchanged; an empty category falls back to
// "General"; an empty due date clears it; an invalid priority is ignored.
type Patch struct {
	Title    *string         `json:"title,omitempty"`
	Category *string         `json:"category,omitempty"`
	DueDate  *string         `json:"dueDate,omitempty"`
	Priority *model.Priority `json:"priority,omitempty"`
}

func (s *Store) Edit(id string, p Patch) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	t := &s.tasks[i]

	if p.Title != nil {
		if v := strings.TrimSpace(*p.Title); v != "" {
			t.Title = v
		}
	}
	if p.Category != nil {
		v := strings.TrimSpace(*p.Category)
		if v == "" {
			v = "General"
		}
		t.Category = v
	}
	if p.DueDate != nil {
		v := strings.TrimSpace(*p.DueDate)
		if v == "" {
			t.DueDate = nil
		} else {
			t.DueDate = &v
		}
	}
	if p.Priority != nil && p.Priority.Valid() {
		t.Priority = *p.Priority
	}

	s.record(telemetry.EventTaskEdited, telemetry.EventMetadata{"task_id": t.ID})
	s.saveLocked()
	return cloneTask(*t), true
}

// ToggleSubtask flips one checklist item, then recomputes the parent's
// completed flag from the full subtask set: all done => completed (awarding
// XP exactly once on the false→true transition), otherwise forced back to
// not completed. Tasks without subtasks are never touched by this rule.
func (s *Store) ToggleSubtask(taskID, subID string) (ToggleResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return ToggleResult{}, false
	}
	t := &s.tasks[i]

	j := -1
	for k := range t.Subtasks {
		if t.Subtasks[k].ID == subID {
			j = k
			break
		}
	}
	if j < 0 {
		return ToggleResult{}, false
	}
	t.Subtasks[j].Done = !t.Subtasks[j].Done

	res := ToggleResult{}
	if t.AllSubtasksDone() {
		if !t.Completed {
			t.Completed = true
			res.Award = s.awardLocked(t)
		}
	} else {
		t.Completed = false
	}

	s.record(telemetry.EventSubtaskToggled, telemetry.EventMetadata{"task_id": taskID, "subtask_id": subID})
	res.Task = cloneTask(*t)
	s.saveLocked()
	return res, true
}

// Reorder moves the dragged task to the target's position, shifting every
// task between the two positions by one to close the gap. Order keys stay
// pairwise distinct and untouched tasks keep their relative order.
func (s *Store) Reorder(dragID, dropID string) bool {
	if dragID == dropID {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	di := s.indexOf(dragID)
	ti := s.indexOf(dropID)
	if di < 0 || ti < 0 {
		return false
	}

	dragOrder := s.tasks[di].Order
	dropOrder := s.tasks[ti].Order

	for i := range s.tasks {
		t := &s.tasks[i]
		switch {
		case t.ID == dragID:
			t.Order = dropOrder
		case dragOrder < dropOrder && t.Order > dragOrder && t.Order <= dropOrder:
			t.Order--
		case dragOrder > dropOrder && t.Order < dragOrder && t.Order >= dropOrder:
			t.Order++
		}
	}

	s.record(telemetry.EventTaskReordered, telemetry.EventMetadata{"task_id": dragID, "target_id": dropID})
	s.saveLocked()
	return true
}

// SetTheme activates a theme. Only themes already in the unlocked set are
// accepted; unlocking itself is the engine's job, never a user command.
func (s *Store) SetTheme(theme string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.meta.HasTheme(theme) {
		return false
	}
	s.meta.Theme = theme
	s.record(telemetry.EventThemeSelected, telemetry.EventMetadata{"theme": theme})
	s.saveLocked()
	return true
}

// Get returns a task by id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return cloneTask(s.tasks[i]), true
}

func (s *Store) Meta() model.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.meta
	m.UnlockedThemes = append([]string{}, s.meta.UnlockedThemes...)
	return m
}

func (s *Store) awardLocked(t *model.Task) *progress.Award {
	award := s.balance.Apply(&s.meta, t.Priority, len(t.Subtasks))
	s.record(telemetry.EventTaskCompleted, telemetry.EventMetadata{"task_id": t.ID, "xp": award.Total})
	for _, lvl := range award.LevelUps {
		s.record(telemetry.EventLevelUp, telemetry.EventMetadata{"level": lvl})
	}
	for _, theme := range award.ThemesUnlocked {
		s.record(telemetry.EventThemeUnlocked, telemetry.EventMetadata{"theme": theme})
	}
	return &award
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if s.events == nil {
		return
	}
	_ = s.events.RecordEvent(t, md)
}

func (s *Store) saveLocked() {
	if s.gateway == nil {
		return
	}
	snapshot := make([]model.Task, len(s.tasks))
	for i := range s.tasks {
		snapshot[i] = cloneTask(s.tasks[i])
	}
	meta := s.meta
	meta.UnlockedThemes = append([]string{}, s.meta.UnlockedThemes...)
	if err := s.gateway.Save(snapshot, meta); err != nil {
		s.logger.Printf("[store] save failed: %v", err)
	}
}

func cloneTask(t model.Task) model.Task {
	out := t
	out.Subtasks = append([]model.Subtask{}, t.Subtasks...)
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	return out
}
