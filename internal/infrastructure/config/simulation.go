package config

import "time"

// SimulationConfig holds tick driver configuration
type SimulationConfig struct {
	// Wall-clock time between intervals
	Interval time.Duration `mapstructure:"interval" yaml:"interval" validate:"required"`

	// Publish a heartbeat every N intervals (0 disables heartbeats)
	HeartbeatEvery int `mapstructure:"heartbeat_every" yaml:"heartbeat_every" validate:"min=0"`

	// Stop after this many intervals (0 runs until stopped)
	MaxIntervals int `mapstructure:"max_intervals" yaml:"max_intervals" validate:"min=0"`

	// Seed embedded in minted order numbers (random when empty)
	Seed string `mapstructure:"seed" yaml:"seed"`

	// Manual ticks allowed per second over the control socket
	ManualTickRate float64 `mapstructure:"manual_tick_rate" yaml:"manual_tick_rate" validate:"gt=0"`

	// Burst of manual ticks allowed above the rate
	ManualTickBurst int `mapstructure:"manual_tick_burst" yaml:"manual_tick_burst" validate:"min=1"`
}
