package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PLANTSIM_SIMULATION_INTERVAL
const EnvPrefix = "PLANTSIM"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Plant      PlantConfig      `mapstructure:"plant" yaml:"plant"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Daemon     DaemonConfig     `mapstructure:"daemon" yaml:"daemon"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Metrics    MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
	Tracing    TracingConfig    `mapstructure:"tracing" yaml:"tracing"`
	Publishing PublishingConfig `mapstructure:"publishing" yaml:"publishing"`
}

// scalar keys that may be set from the environment without appearing in the file
var envKeys = []string{
	"simulation.interval",
	"simulation.heartbeat_every",
	"simulation.max_intervals",
	"simulation.seed",
	"simulation.manual_tick_rate",
	"simulation.manual_tick_burst",
	"database.type",
	"database.url",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.name",
	"database.sslmode",
	"database.path",
	"daemon.socket_path",
	"daemon.pid_file",
	"daemon.shutdown_timeout",
	"logging.level",
	"logging.format",
	"logging.output",
	"logging.file_path",
	"metrics.enabled",
	"metrics.host",
	"metrics.port",
	"tracing.enabled",
	"tracing.endpoint",
	"publishing.journal.enabled",
	"publishing.journal.dir",
	"publishing.archive.enabled",
	"publishing.archive.bucket",
	"publishing.archive.region",
	"publishing.archive.endpoint",
	"publishing.stream.enabled",
	"publishing.stream.port",
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
//
// The plant section has no defaults and must come from the file.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/plantsim")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL is honoured without the prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	if !v.IsSet("plant") {
		return nil, fmt.Errorf("invalid configuration: plant section is required")
	}
	if err := ValidatePlantDocument(v.Get("plant")); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error.
// The default config carries no plant and is only useful for the ambient sections.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
