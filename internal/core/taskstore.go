// Package core contains the task list state and the view logic that sits
// on top of it, plus configuration loading.
package core

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/valter-silva-au/today/pkg/models"
)

// TaskStore owns the authoritative ordered task list. Every mutation
// hands a full snapshot to the persister. It is not safe for concurrent
// use; callers drive it from a single goroutine.
type TaskStore struct {
	tasks     []models.Task
	persister TaskPersister
	logger    *log.Logger
	events    EventLogger
	newID     func() string
}

// NewTaskStore returns an empty store. persister, logger and events may be
// nil, in which case nothing is persisted, logged or recorded.
func NewTaskStore(persister TaskPersister, logger *log.Logger, events EventLogger) *TaskStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskStore{
		tasks:     []models.Task{},
		persister: persister,
		logger:    logger,
		events:    events,
		newID:     uuid.NewString,
	}
}

// Load hydrates the list from the persister, replacing the current
// contents. A read or decode failure is logged and leaves the list empty.
// It returns the number of tasks loaded.
func (s *TaskStore) Load(ctx context.Context) int {
	s.tasks = []models.Task{}
	if s.persister == nil {
		return 0
	}

	loaded, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn("starting with an empty list", "err", err)
		s.logEvent("store.load_failed", map[string]any{"error": err.Error()})
		return 0
	}
	for _, t := range loaded {
		t.ID = s.newID()
		s.tasks = append(s.tasks, t)
	}
	s.logger.Debug("loaded tasks", "count", len(s.tasks))
	return len(s.tasks)
}

// Add appends a pending task. Text that is empty after trimming is
// rejected and Add reports false. The text is stored as given, except that
// invalid UTF-8 sequences are replaced with U+FFFD so the stored blob
// decodes to the same text.
func (s *TaskStore) Add(text string) (models.Task, bool) {
	text = strings.ToValidUTF8(text, "\uFFFD")
	if strings.TrimSpace(text) == "" {
		return models.Task{}, false
	}
	t := models.Task{ID: s.newID(), Text: text}
	s.tasks = append(s.tasks, t)
	s.save()
	s.logEvent("task.added", map[string]any{"id": t.ID, "position": len(s.tasks) - 1})
	return t, true
}

// Toggle flips the completion flag of the task with the given ID. Unknown
// IDs are a no-op.
func (s *TaskStore) Toggle(id string) bool {
	return s.ToggleAt(s.indexOf(id))
}

// ToggleAt flips the completion flag of the task at index in the
// unfiltered list. Out-of-range indexes are a no-op.
func (s *TaskStore) ToggleAt(index int) bool {
	if index < 0 || index >= len(s.tasks) {
		if index >= 0 {
			s.logger.Debug("toggle out of range", "index", index, "len", len(s.tasks))
		}
		return false
	}
	s.tasks[index].Done = !s.tasks[index].Done
	s.save()
	s.logEvent("task.toggled", map[string]any{
		"id":       s.tasks[index].ID,
		"position": index,
		"done":     s.tasks[index].Done,
	})
	return true
}

// ClearAll removes every task.
func (s *TaskStore) ClearAll() {
	removed := len(s.tasks)
	s.tasks = []models.Task{}
	s.save()
	s.logEvent("tasks.cleared", map[string]any{"removed": removed})
}

// Tasks returns a copy of the list in display order.
func (s *TaskStore) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int { return len(s.tasks) }

// At returns the task at index in the unfiltered list.
func (s *TaskStore) At(index int) (models.Task, bool) {
	if index < 0 || index >= len(s.tasks) {
		return models.Task{}, false
	}
	return s.tasks[index], true
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (models.Task, bool) {
	return s.At(s.indexOf(id))
}

// Counts tallies the list by completion state.
func (s *TaskStore) Counts() models.TaskCounts {
	c := models.TaskCounts{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Done {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

func (s *TaskStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) save() {
	if s.persister == nil {
		return
	}
	s.persister.Save(s.Tasks())
}

func (s *TaskStore) logEvent(eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.LogEvent(eventType, data); err != nil {
		s.logger.Debug("recording event failed", "type", eventType, "err", err)
	}
}
