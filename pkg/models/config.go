package models

// Storage backend names accepted in storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// StorageConfig controls where the task list blob is kept.
type StorageConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	Key     string `yaml:"key" mapstructure:"key"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// LogConfig controls the console logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// UIConfig holds settings for the interactive screen and list output.
type UIConfig struct {
	DefaultFilter string `yaml:"default_filter" mapstructure:"default_filter"`
	Title         string `yaml:"title" mapstructure:"title"`
}

// EventsConfig toggles the JSONL event log.
type EventsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// GlobalConfig holds all settings read from .todayconfig via Viper.
type GlobalConfig struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Events  EventsConfig  `yaml:"events" mapstructure:"events"`
}
