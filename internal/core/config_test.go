package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/today/pkg/models"
)

// --- Helper ---

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// --- LoadGlobalConfig tests ---

func TestLoadGlobalConfig_Defaults_WhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultGlobalConfig()
	if *cfg != *want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadGlobalConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".todayconfig.yaml", `
storage:
  backend: SQLite
  key: my-tasks
  path: /var/lib/today
log:
  level: debug
  format: JSON
ui:
  default_filter: pending
  title: Errands
events:
  enabled: false
`)

	cm := NewConfigurationManager(dir)
	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != models.BackendSQLite {
		t.Errorf("Storage.Backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "my-tasks" {
		t.Errorf("Storage.Key = %q", cfg.Storage.Key)
	}
	if cfg.Storage.Path != "/var/lib/today" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.UI.DefaultFilter != "pending" || cfg.UI.Title != "Errands" {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.Events.Enabled {
		t.Error("Events.Enabled = true, want false")
	}
}

func TestLoadGlobalConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".todayconfig.yaml", "ui:\n  title: Groceries\n")

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.Title != "Groceries" {
		t.Errorf("UI.Title = %q", cfg.UI.Title)
	}
	if cfg.Storage.Key != "tasks" || cfg.Storage.Backend != models.BackendFile {
		t.Errorf("Storage = %+v, want defaults", cfg.Storage)
	}
	if !cfg.Events.Enabled {
		t.Error("Events.Enabled should default to true")
	}
}

func TestLoadGlobalConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".todayconfig.yaml", "storage:\n  backend: sqlite\n")
	t.Setenv("TODAY_STORAGE_BACKEND", "bolt")
	t.Setenv("TODAY_LOG_LEVEL", "warn")

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Backend != models.BackendBolt {
		t.Errorf("Storage.Backend = %q, want bolt", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadGlobalConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".todayconfig.yaml", "storage: [unclosed\n")

	_, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err == nil {
		t.Fatal("expected error for malformed config")
	}
	if !strings.Contains(err.Error(), ConfigFileName) {
		t.Errorf("error should name the config file: %v", err)
	}
}

// --- ValidateConfig tests ---

func TestValidateConfig_Defaults(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	if err := cm.ValidateConfig(DefaultGlobalConfig()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	if err := cm.ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidateConfig_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultGlobalConfig()
	cfg.Storage.Backend = "redis"
	cfg.Storage.Key = "  "
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"
	cfg.UI.DefaultFilter = "someday"

	err := NewConfigurationManager(t.TempDir()).ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"storage.backend", "storage.key", "log.level", "log.format", "ui.default_filter"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidateConfig_FilterAliases(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	for _, f := range []string{"", "all", "done", "todo", "completed", "pending"} {
		cfg := DefaultGlobalConfig()
		cfg.UI.DefaultFilter = f
		if err := cm.ValidateConfig(cfg); err != nil {
			t.Errorf("ui.default_filter %q should be valid: %v", f, err)
		}
	}
}
