// Package progress is the side-channel the orchestrator writes stage
// updates to. Writes are fire-and-forget; a polling API consumes them.
package progress

import (
	"context"
	"sync"
)

type Update struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// Reporter receives progress updates keyed by task ID. Implementations
// must never block the pipeline; errors are swallowed after logging.
type Reporter interface {
	Report(taskID string, percent int, stage string)
}

// Store is a Reporter whose updates can be read back by the polling API.
type Store interface {
	Reporter
	Fetch(ctx context.Context, taskID string) (Update, bool, error)
}

// Nop discards all updates. Used when no caller is polling.
type Nop struct{}

func (Nop) Report(string, int, string) {}

// Memory keeps the latest update per task in-process. The HTTP server uses
// it when no Redis URL is configured.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]Update
}

func NewMemory() *Memory {
	return &Memory{tasks: make(map[string]Update)}
}

func (m *Memory) Report(taskID string, percent int, stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[taskID] = Update{Percent: percent, Stage: stage}
}

func (m *Memory) Get(taskID string) (Update, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.tasks[taskID]
	return u, ok
}

func (m *Memory) Fetch(_ context.Context, taskID string) (Update, bool, error) {
	u, ok := m.Get(taskID)
	return u, ok, nil
}
