// Package storage is the persistence gateway: two independent JSON records
// (the task list and the progression meta) under a data directory.
package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/mariaspatani/SmartTodo/internal/model"
)

const (
	tasksFile = "tasks.json"
	metaFile  = "meta.json"
)

type FileGateway struct {
	mu        sync.Mutex
	tasksPath string
	metaPath  string
	logger    *log.Logger
}

func NewFileGateway(dataDir string, logger *log.Logger) (*FileGateway, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileGateway{
		tasksPath: filepath.Join(dataDir, tasksFile),
		metaPath:  filepath.Join(dataDir, metaFile),
		logger:    logger,
	}, nil
}

// Load reads both records. Missing or corrupt data degrades to defaults
// instead of propagating: the worst case on startup is an empty list and a
// fresh meta record.
func (g *FileGateway) Load() ([]model.Task, model.Meta) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tasks := []model.Task{}
	if b, err := os.ReadFile(g.tasksPath); err == nil {
		var loaded []model.Task
		if err := json.Unmarshal(b, &loaded); err != nil {
			g.logger.Printf("[storage] corrupt %s, starting empty: %v", tasksFile, err)
		} else if loaded != nil {
			tasks = loaded
		}
	} else if !os.IsNotExist(err) {
		g.logger.Printf("[storage] read %s: %v", tasksFile, err)
	}
	for i := range tasks {
		if tasks[i].Subtasks == nil {
			tasks[i].Subtasks = []model.Subtask{}
		}
	}

	meta := model.DefaultMeta()
	if b, err := os.ReadFile(g.metaPath); err == nil {
		var loaded model.Meta
		if err := json.Unmarshal(b, &loaded); err != nil {
			g.logger.Printf("[storage] corrupt %s, using defaults: %v", metaFile, err)
		} else {
			meta = loaded
		}
	} else if !os.IsNotExist(err) {
		g.logger.Printf("[storage] read %s: %v", metaFile, err)
	}
	meta.Normalize()

	// The next order key handed out must be unused by any loaded task.
	if seed := nextSeed(tasks); meta.OrderSeed < seed {
		meta.OrderSeed = seed
	}

	return tasks, meta
}

func nextSeed(tasks []model.Task) int {
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

func (g *FileGateway) Save(tasks []model.Task, meta model.Meta) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	tb, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.tasksPath, tb, 0o644); err != nil {
		return err
	}

	mb, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(g.metaPath, mb, 0o644)
}
