package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status shows what state a task is in
type Status string

const (
	StatusPending    Status = "pending"    // waiting to start
	StatusProcessing Status = "processing" // currently running
	StatusCompleted  Status = "completed"  // finished successfully
	StatusFailed     Status = "failed"     // something went wrong
)

// TypeRebuild is the only task type today: a full course-tree rebuild
const TypeRebuild = "rebuild"

// Task represents a background job that might take a while
type Task struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	StartedAt    time.Time `json:"started_at,omitempty"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
	Message      string    `json:"message,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Result       any       `json:"result,omitempty"`
}

// Manager keeps track of running and recently-finished tasks in memory.
// Nothing survives a restart, which is fine - a lost rebuild task just
// means the client re-triggers it.
type Manager struct {
	tasks map[string]*Task
	mu    sync.RWMutex
}

// NewManager creates an empty task registry
func NewManager() *Manager {
	return &Manager{tasks: make(map[string]*Task)}
}

// Create registers a new pending task and returns its id
func (m *Manager) Create(taskType string) string {
	taskID := uuid.New().String()
	t := &Task{
		ID:        taskID,
		Type:      taskType,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.tasks[taskID] = t
	m.mu.Unlock()

	return taskID
}

// Get retrieves a copy of the task by id
func (m *Manager) Get(taskID string) (Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[taskID]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Start marks a task as processing
func (m *Manager) Start(taskID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[taskID]; ok {
		t.Status = StatusProcessing
		if t.StartedAt.IsZero() {
			t.StartedAt = time.Now()
		}
	}
}

// SetMessage updates the human-readable status line
func (m *Manager) SetMessage(taskID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[taskID]; ok {
		t.Message = message
	}
}

// Complete marks a task as done with optional result data
func (m *Manager) Complete(taskID string, result any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[taskID]; ok {
		t.Status = StatusCompleted
		t.Result = result
		t.CompletedAt = time.Now()
	}
}

// Fail marks a task as failed with the error message
func (m *Manager) Fail(taskID, errorMessage string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[taskID]; ok {
		t.Status = StatusFailed
		t.ErrorMessage = errorMessage
		t.CompletedAt = time.Now()
	}
}

// Cleanup removes finished tasks older than maxAge, returning the count
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for id, t := range m.tasks {
		if (t.Status == StatusCompleted || t.Status == StatusFailed) &&
			!t.CompletedAt.IsZero() && t.CompletedAt.Before(cutoff) {
			delete(m.tasks, id)
			cleaned++
		}
	}
	return cleaned
}

// CleanupRoutine runs Cleanup on a schedule until stop is closed
func (m *Manager) CleanupRoutine(interval, maxAge time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Cleanup(maxAge)
		case <-stop:
			return
		}
	}
}
