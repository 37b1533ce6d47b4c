package store

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mariaspatani/SmartTodo/internal/telemetry"
)

// Handler exposes the store over HTTP. It is a thin command dispatcher: all
// validation-by-silent-no-op rules live in the store, the handler only maps
// outcomes onto status codes.
type Handler struct {
	store    *Store
	events   telemetry.Repository
	messages []string
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) SetEvents(events telemetry.Repository) {
	h.events = events
}

// SetMotivationMessages configures the fallback lines shown when no
// reminder is pending.
func (h *Handler) SetMotivationMessages(messages []string) {
	h.messages = messages
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		f := Filter{
			Search:   q.Get("q"),
			Category: q.Get("category"),
			Priority: q.Get("priority"),
			View:     q.Get("view"),
		}
		writeJSON(w, 200, h.store.List(f, h.store.Now()))
		return

	case http.MethodPost:
		var in AddRequest
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, 400, "bad json")
			return
		}
		t, ok := h.store.Add(in)
		if !ok {
			writeErr(w, 400, "title is required")
			return
		}
		writeJSON(w, 201, t)
		return

	default:
		writeErr(w, 405, "method not allowed")
		return
	}
}

// /api/tasks/{id}
// /api/tasks/{id}/toggle
// /api/tasks/{id}/subtasks/{subId}/toggle
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	tail = strings.Trim(tail, "/")
	if tail == "" {
		writeErr(w, 404, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			t, ok := h.store.Get(id)
			if !ok {
				writeErr(w, 404, "not found")
				return
			}
			writeJSON(w, 200, t)
			return

		case http.MethodPatch:
			var p Patch
			if err := decodeJSON(r, &p); err != nil {
				writeErr(w, 400, "bad json")
				return
			}
			t, ok := h.store.Edit(id, p)
			if !ok {
				writeErr(w, 404, "not found")
				return
			}
			writeJSON(w, 200, t)
			return

		case http.MethodDelete:
			if !h.store.Delete(id) {
				writeErr(w, 404, "not found")
				return
			}
			writeJSON(w, 200, map[string]any{"ok": true})
			return

		default:
			writeErr(w, 405, "method not allowed")
			return
		}
	}

	if len(parts) == 2 && parts[1] == "toggle" {
		if r.Method != http.MethodPost {
			writeErr(w, 405, "method not allowed")
			return
		}
		res, ok := h.store.Toggle(id)
		if !ok {
			writeErr(w, 404, "not found")
			return
		}
		writeJSON(w, 200, res)
		return
	}

	if len(parts) == 4 && parts[1] == "subtasks" && parts[3] == "toggle" {
		if r.Method != http.MethodPost {
			writeErr(w, 405, "method not allowed")
			return
		}
		res, ok := h.store.ToggleSubtask(id, parts[2])
		if !ok {
			writeErr(w, 404, "not found")
			return
		}
		writeJSON(w, 200, res)
		return
	}

	writeErr(w, 404, "not found")
}

// /api/tasks/reorder
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in struct {
		DragID string `json:"dragId"`
		DropID string `json:"dropId"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	if !h.store.Reorder(in.DragID, in.DropID) {
		writeErr(w, 404, "not found")
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

// /api/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}

	now := h.store.Now()
	stats := h.store.Stats()

	motivation := ""
	if len(h.messages) > 0 {
		motivation = h.messages[rand.Intn(len(h.messages))]
	}
	payload := map[string]any{
		"stats":      stats,
		"motivation": motivation,
	}
	if reminder, ok := h.store.DueSoonReminder(now); ok {
		payload["reminder"] = reminder
		payload["motivation"] = "Reminder: " + reminder.Title + " is due soon."
	}

	writeJSON(w, 200, payload)
}

// /api/theme
func (h *Handler) Theme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeErr(w, 405, "method not allowed")
		return
	}
	var in struct {
		Theme string `json:"theme"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, 400, "bad json")
		return
	}
	if !h.store.SetTheme(strings.TrimSpace(in.Theme)) {
		writeErr(w, 400, "theme is not unlocked")
		return
	}
	writeJSON(w, 200, h.store.Meta())
}

// /api/stats/activity
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, 405, "method not allowed")
		return
	}
	if h.events == nil {
		writeErr(w, 404, "activity tracking disabled")
		return
	}

	days := 7
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}

	now := h.store.Now()
	since := now.Add(-time.Duration(days) * 24 * time.Hour)
	events, err := h.events.GetEvents(since, nil)
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, telemetry.CalculateStats(events, since, now))
}
