package config

import "time"

// PublishingConfig selects the sinks every published event is fanned out to
type PublishingConfig struct {
	Log      LogSinkConfig      `mapstructure:"log" yaml:"log"`
	Database DatabaseSinkConfig `mapstructure:"database" yaml:"database"`
	Journal  JournalConfig      `mapstructure:"journal" yaml:"journal"`
	Archive  ArchiveConfig      `mapstructure:"archive" yaml:"archive"`
	Stream   StreamConfig       `mapstructure:"stream" yaml:"stream"`
}

// LogSinkConfig writes every event to the application log
type LogSinkConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// DatabaseSinkConfig stores every event and the ledger projection through gorm
type DatabaseSinkConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// JournalConfig writes events to zstd-compressed JSONL segments
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir" validate:"required_if=Enabled true"`

	// Segments are closed and a new one opened after this long
	RotateEvery time.Duration `mapstructure:"rotate_every" yaml:"rotate_every" validate:"required_if=Enabled true"`
}

// ArchiveConfig uploads closed journal segments to S3
type ArchiveConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket" validate:"required_if=Enabled true"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
	Region   string `mapstructure:"region" yaml:"region"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// Required by most S3-compatible stores such as MinIO
	UsePathStyle bool `mapstructure:"use_path_style" yaml:"use_path_style"`

	// Remove the local segment once uploaded
	DeleteAfterUpload bool `mapstructure:"delete_after_upload" yaml:"delete_after_upload"`
}

// StreamConfig serves events to websocket subscribers
type StreamConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Host    string `mapstructure:"host" yaml:"host"`
	Port    int    `mapstructure:"port" yaml:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path" yaml:"path"`

	// Events buffered per subscriber before it is dropped
	Buffer int `mapstructure:"buffer" yaml:"buffer" validate:"min=1"`
}
