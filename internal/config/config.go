package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Practice PracticeConfig `mapstructure:"practice" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// PracticeConfig contains the practice session settings.
type PracticeConfig struct {
	// DefaultCount is the question count a new or reset session starts with.
	DefaultCount int `mapstructure:"default_count" validate:"required,gtefield=MinCount,ltefield=MaxCount"`
	// MinCount and MaxCount bound the count a client may select.
	MinCount int `mapstructure:"min_count" validate:"required,gt=0"`
	MaxCount int `mapstructure:"max_count" validate:"required,gtefield=MinCount"`
	// AdvanceDelayMS enables automatic advance after an outcome; 0 disables it.
	AdvanceDelayMS int `mapstructure:"advance_delay_ms" validate:"gte=0"`
	// MaxSessions caps live sessions held in memory; 0 means unlimited.
	MaxSessions int `mapstructure:"max_sessions" validate:"gte=0"`
}

// DatabaseConfig contains the result store settings.
type DatabaseConfig struct {
	// DSN for the SQLite result log. The default is a shared in-memory
	// database that lives only as long as the process.
	DSN string `mapstructure:"dsn" validate:"required"`
}

// TaskConfig contains the background task runner settings.
type TaskConfig struct {
	// WorkerCount is the number of workers executing background tasks.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
	// QueueSize is the buffer of tasks waiting for a worker.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
	// TimeoutSeconds bounds a single task's execution.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}
