// Package internal provides the App struct that wires the task store, its
// persistence and the observability layer together and initializes the
// CLI layer.
package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/today/internal/cli"
	"github.com/valter-silva-au/today/internal/core"
	"github.com/valter-silva-au/today/internal/observability"
	"github.com/valter-silva-au/today/internal/storage"
	"github.com/valter-silva-au/today/pkg/models"
)

// closeTimeout bounds the final flush on shutdown.
const closeTimeout = 5 * time.Second

// App holds all service dependencies.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig
	Logger    *log.Logger

	// Storage layer
	KV        storage.KeyValueStore
	Persister *storage.Persister

	// Core services
	TaskStore *core.TaskStore

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	AlertEngine observability.AlertEngine
}

// NewApp creates and wires all components and hydrates the task list.
// basePath is the directory holding .todayconfig, the data directory and
// the event log.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, err
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	app.Logger, err = observability.NewLogger(os.Stderr, observability.LoggerOptions{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Prefix: "today",
	})
	if err != nil {
		return nil, err
	}

	// --- Observability ---
	var recorder *observability.Recorder
	if cfg.Events.Enabled {
		app.EventLog, err = observability.NewJSONLEventLog(filepath.Join(basePath, ".today_events.jsonl"))
		if err != nil {
			// Non-fatal: run without the event log.
			app.Logger.Warn("event log disabled", "err", err)
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		recorder = &observability.Recorder{Log: app.EventLog}
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	app.AlertEngine = observability.NewAlertEngine(app.EventLog, observability.DefaultAlertThresholds())

	// --- Storage layer ---
	app.KV, err = storage.OpenKeyValueStore(cfg.Storage, basePath)
	if err != nil {
		app.closeEventLog()
		return nil, err
	}
	var persistEvents storage.EventLogger
	if recorder != nil {
		persistEvents = recorder
	}
	app.Persister = storage.NewPersister(app.KV, cfg.Storage.Key, app.Logger, persistEvents)

	// --- Core services ---
	var storeEvents core.EventLogger
	if recorder != nil {
		storeEvents = recorder
	}
	app.TaskStore = core.NewTaskStore(app.Persister, app.Logger, storeEvents)
	app.TaskStore.Load(context.Background())

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = cfg
	cli.ConfigMgr = app.ConfigMgr
	cli.Logger = app.Logger
	cli.TaskStore = app.TaskStore
	cli.Persister = app.Persister
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.AlertEngine = app.AlertEngine

	return app, nil
}

// Close flushes pending saves and releases the storage backend and event
// log. It is safe to call on a partially initialized App.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if a.Persister != nil {
		if err := a.Persister.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.KV != nil {
		if err := a.KV.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing storage: %w", err))
		}
	}
	if err := a.closeEventLog(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeEventLog() error {
	if a.EventLog == nil {
		return nil
	}
	err := a.EventLog.Close()
	a.EventLog = nil
	return err
}

// ResolveBasePath determines the data directory. It checks TODAY_HOME, then
// walks up from the current directory looking for .todayconfig, then falls
// back to ~/.today.
func ResolveBasePath() string {
	if home := os.Getenv("TODAY_HOME"); home != "" {
		return home
	}
	if dir, err := os.Getwd(); err == nil {
		for {
			for _, name := range []string{core.ConfigFileName, core.ConfigFileName + ".yaml", core.ConfigFileName + ".yml"} {
				if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
					return dir
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".today")
	}
	cwd, _ := os.Getwd()
	return cwd
}
