package config

import "time"

// SetDefaults sets default values for all configuration fields except the plant
func SetDefaults(cfg *Config) {
	// Simulation defaults
	if cfg.Simulation.Interval == 0 {
		cfg.Simulation.Interval = 1 * time.Second
	}
	if cfg.Simulation.HeartbeatEvery == 0 {
		cfg.Simulation.HeartbeatEvery = 10
	}
	if cfg.Simulation.ManualTickRate == 0 {
		cfg.Simulation.ManualTickRate = 5
	}
	if cfg.Simulation.ManualTickBurst == 0 {
		cfg.Simulation.ManualTickBurst = 1
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "plantsim.db"
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.User == "" {
			cfg.Database.User = "plantsim"
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = "plantsim"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Daemon defaults
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/plantsim-daemon.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/plantsim-daemon.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Tracing defaults
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "plantsim"
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}

	// Publishing defaults
	if cfg.Publishing.Journal.Dir == "" {
		cfg.Publishing.Journal.Dir = "data/events"
	}
	if cfg.Publishing.Journal.RotateEvery == 0 {
		cfg.Publishing.Journal.RotateEvery = 1 * time.Hour
	}
	if cfg.Publishing.Archive.Prefix == "" {
		cfg.Publishing.Archive.Prefix = "plantsim/events"
	}
	if cfg.Publishing.Archive.Region == "" {
		cfg.Publishing.Archive.Region = "us-east-1"
	}
	if cfg.Publishing.Stream.Host == "" {
		cfg.Publishing.Stream.Host = "localhost"
	}
	if cfg.Publishing.Stream.Port == 0 {
		cfg.Publishing.Stream.Port = 8081
	}
	if cfg.Publishing.Stream.Path == "" {
		cfg.Publishing.Stream.Path = "/events"
	}
	if cfg.Publishing.Stream.Buffer == 0 {
		cfg.Publishing.Stream.Buffer = 64
	}
}
