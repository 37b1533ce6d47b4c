package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/mariaspatani/SmartTodo/internal/config"
	"github.com/mariaspatani/SmartTodo/internal/serverapp"
)

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_TaskLifecycle(t *testing.T) {
	app := newTestApp(t)

	createRes := app.json(http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Integration task",
		"category": "Work",
		"priority": "high",
		"subtasks": "First\nSecond",
	})
	if createRes.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d body=%s", createRes.Code, createRes.Body.String())
	}
	created := decodeBodyMap(t, createRes)
	taskID := asString(t, created["id"])

	listRes := app.request(http.MethodGet, "/api/tasks", nil, "")
	if listRes.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d body=%s", listRes.Code, listRes.Body.String())
	}
	if !strings.Contains(listRes.Body.String(), taskID) {
		t.Fatalf("expected list to include %s, body=%s", taskID, listRes.Body.String())
	}

	toggleRes := app.json(http.MethodPost, "/api/tasks/"+taskID+"/toggle", nil)
	if toggleRes.Code != http.StatusOK {
		t.Fatalf("toggle expected 200, got %d body=%s", toggleRes.Code, toggleRes.Body.String())
	}
	toggled := decodeBodyMap(t, toggleRes)
	award := asMap(t, toggled["award"])
	// high base 25 plus 2 subtasks * 2 bonus.
	if total, _ := award["total"].(float64); total != 29 {
		t.Fatalf("expected award total 29, got %v", award["total"])
	}

	stateRes := app.request(http.MethodGet, "/api/state", nil, "")
	if stateRes.Code != http.StatusOK {
		t.Fatalf("state expected 200, got %d body=%s", stateRes.Code, stateRes.Body.String())
	}
	state := decodeBodyMap(t, stateRes)
	stats := asMap(t, state["stats"])
	if xp, _ := stats["xp"].(float64); xp != 29 {
		t.Fatalf("expected 29 xp in state, got %v", stats["xp"])
	}
	if pct, _ := stats["completionPct"].(float64); pct != 100 {
		t.Fatalf("expected 100%% completion, got %v", stats["completionPct"])
	}

	deleteRes := app.request(http.MethodDelete, "/api/tasks/"+taskID, nil, "")
	if deleteRes.Code != http.StatusOK {
		t.Fatalf("delete expected 200, got %d body=%s", deleteRes.Code, deleteRes.Body.String())
	}
}

func TestServer_ThemeAndActivity(t *testing.T) {
	app := newTestApp(t)

	themeRes := app.json(http.MethodPut, "/api/theme", map[string]any{"theme": "dark"})
	if themeRes.Code != http.StatusOK {
		t.Fatalf("theme expected 200, got %d body=%s", themeRes.Code, themeRes.Body.String())
	}

	lockedRes := app.json(http.MethodPut, "/api/theme", map[string]any{"theme": "sunset"})
	if lockedRes.Code != http.StatusBadRequest {
		t.Fatalf("locked theme expected 400, got %d body=%s", lockedRes.Code, lockedRes.Body.String())
	}

	createRes := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "Tracked"})
	if createRes.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d body=%s", createRes.Code, createRes.Body.String())
	}

	activityRes := app.request(http.MethodGet, "/api/stats/activity?days=1", nil, "")
	if activityRes.Code != http.StatusOK {
		t.Fatalf("activity expected 200, got %d body=%s", activityRes.Code, activityRes.Body.String())
	}
	activity := decodeBodyMap(t, activityRes)
	if n, _ := activity["tasks_created"].(float64); n != 1 {
		t.Fatalf("expected 1 task created in activity, got %v", activity["tasks_created"])
	}
}

func TestServer_PersistenceAcrossRestart(t *testing.T) {
	dataDir := t.TempDir()

	app := newTestAppWithDataDir(t, dataDir)
	createRes := app.json(http.MethodPost, "/api/tasks", map[string]any{"title": "Survivor"})
	if createRes.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d body=%s", createRes.Code, createRes.Body.String())
	}
	taskID := asString(t, decodeBodyMap(t, createRes)["id"])

	// A fresh handler over the same data dir sees the persisted task.
	app2 := newTestAppWithDataDir(t, dataDir)
	getRes := app2.request(http.MethodGet, "/api/tasks/"+taskID, nil, "")
	if getRes.Code != http.StatusOK {
		t.Fatalf("get after restart expected 200, got %d body=%s", getRes.Code, getRes.Body.String())
	}
}

func TestServer_EmbeddedStaticAndPageShell(t *testing.T) {
	app := newTestApp(t)

	staticRes := app.request(http.MethodGet, "/static/js/app.js", nil, "")
	if staticRes.Code != http.StatusOK {
		t.Fatalf("embedded static asset expected 200, got %d", staticRes.Code)
	}
	if staticRes.Body.Len() == 0 {
		t.Fatalf("embedded static asset should not be empty")
	}

	pageRes := app.request(http.MethodGet, "/", nil, "")
	if pageRes.Code != http.StatusOK {
		t.Fatalf("page shell expected 200, got %d", pageRes.Code)
	}
	if !strings.Contains(pageRes.Body.String(), "taskForm") {
		t.Fatalf("page shell missing task form markup")
	}
}

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithDataDir(t, t.TempDir())
}

func newTestAppWithDataDir(t *testing.T, dataDir string) *testApp {
	t.Helper()

	cfg := loadTestConfig(t)

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       dataDir,
		StaticDir:     filepath.Join(projectRoot(t), "static"),
		UseDiskStatic: false,
		Logger:        logger,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, logs: &logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfgPath := filepath.Join(projectRoot(t), "smarttodo.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load config %s: %v", cfgPath, err)
	}
	return cfg
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}
