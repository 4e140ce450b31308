package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/today/internal/core"
	"github.com/valter-silva-au/today/internal/observability"
	"github.com/valter-silva-au/today/pkg/models"
)

// Flusher waits for pending background writes. Implemented by
// storage.Persister.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Service instances, set during app initialization in app.go.
var (
	BasePath  string
	Config    *models.GlobalConfig
	TaskStore *core.TaskStore
	Persister Flusher
	Logger    *log.Logger
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	AlertEngine observability.AlertEngine
)
