package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/valter-silva-au/today/pkg/models"
)

// ConfigFileName is the base name of the YAML config file looked up in the
// base path.
const ConfigFileName = ".todayconfig"

// ConfigurationManager loads and validates the global configuration.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML file and TODAY_* environment overrides.
type viperConfigManager struct {
	// basePath is the root directory where .todayconfig resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		Storage: models.StorageConfig{
			Backend: models.BackendFile,
			Key:     "tasks",
			Path:    "data",
		},
		Log: models.LogConfig{
			Level:  "info",
			Format: "text",
		},
		UI: models.UIConfig{
			DefaultFilter: string(models.FilterAll),
			Title:         "Today's tasks",
		},
		Events: models.EventsConfig{Enabled: true},
	}
}

// LoadGlobalConfig reads .todayconfig from the base path and applies
// environment overrides. A missing file is not an error.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix("TODAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("ui.default_filter", cfg.UI.DefaultFilter)
	v.SetDefault("ui.title", cfg.UI.Title)
	v.SetDefault("events.enabled", cfg.Events.Enabled)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
	}

	cfg.Storage.Backend = strings.ToLower(v.GetString("storage.backend"))
	cfg.Storage.Key = v.GetString("storage.key")
	cfg.Storage.Path = v.GetString("storage.path")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))
	cfg.UI.DefaultFilter = v.GetString("ui.default_filter")
	cfg.UI.Title = v.GetString("ui.title")
	cfg.Events.Enabled = v.GetBool("events.enabled")

	return cfg, nil
}

var validBackends = map[string]bool{
	models.BackendFile:   true,
	models.BackendSQLite: true,
	models.BackendBolt:   true,
	models.BackendMemory: true,
}

var validLogFormats = map[string]bool{
	"text":   true,
	"json":   true,
	"logfmt": true,
}

// ValidateConfig checks cfg for invalid values and reports all of them.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if !validBackends[cfg.Storage.Backend] {
		errs = append(errs, fmt.Sprintf(
			"storage.backend %q is invalid, must be one of: file, sqlite, bolt, memory",
			cfg.Storage.Backend,
		))
	}
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		errs = append(errs, "storage.key must not be empty")
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is invalid", cfg.Log.Level))
	}
	if !validLogFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Sprintf(
			"log.format %q is invalid, must be one of: text, json, logfmt",
			cfg.Log.Format,
		))
	}
	if _, err := models.ParseFilter(cfg.UI.DefaultFilter); err != nil {
		errs = append(errs, fmt.Sprintf("ui.default_filter: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
