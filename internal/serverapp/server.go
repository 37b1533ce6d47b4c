// Package serverapp assembles the HTTP application: storage, store,
// telemetry, API routes, embedded frontend, and the middleware chain.
package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/mariaspatani/SmartTodo/internal/config"
	"github.com/mariaspatani/SmartTodo/internal/httpmw"
	"github.com/mariaspatani/SmartTodo/internal/storage"
	"github.com/mariaspatani/SmartTodo/internal/store"
	"github.com/mariaspatani/SmartTodo/internal/telemetry"
	staticfiles "github.com/mariaspatani/SmartTodo/static"
	"github.com/mariaspatani/SmartTodo/ui/page"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Storage.DataDir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	gateway, err := storage.NewFileGateway(opts.DataDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	events := telemetry.NewMemoryRepository()
	st := store.New(store.Options{
		Gateway: gateway,
		Balance: opts.Config.Balance(),
		Events:  events,
		Logger:  opts.Logger,
	})

	handler := store.NewHandler(st)
	handler.SetEvents(events)
	handler.SetMotivationMessages(opts.Config.UI.MotivationMessages)

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "smarttodo",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		// The store hydrates at boot, so a reachable store means storage
		// was at least readable.
		_ = st.Stats()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "smarttodo",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/tasks", handler.TasksRoot)
	mux.HandleFunc("/api/tasks/", handler.TasksSub)
	mux.HandleFunc("/api/tasks/reorder", handler.Reorder)
	mux.HandleFunc("/api/state", handler.State)
	mux.HandleFunc("/api/theme", handler.Theme)
	mux.HandleFunc("/api/stats/activity", handler.Activity)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	mux.Handle("/", templ.Handler(page.AppPage()))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
