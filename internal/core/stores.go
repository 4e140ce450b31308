package core

import (
	"context"

	"github.com/valter-silva-au/today/pkg/models"
)

// TaskPersister is the durable side of the task list. Save is fire and
// forget; Load is called once at startup.
// This interface is defined locally in core to avoid importing storage.
type TaskPersister interface {
	Load(ctx context.Context) ([]models.Task, error)
	Save(tasks []models.Task)
}

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}
