package config

// TracingConfig holds OpenTelemetry export configuration
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// OTLP/HTTP collector URL, e.g. http://localhost:4318
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" validate:"required_if=Enabled true,omitempty,url"`

	ServiceName string `mapstructure:"service_name" yaml:"service_name" validate:"required"`

	// Fraction of ticks sampled, 0..1
	SampleRatio float64 `mapstructure:"sample_ratio" yaml:"sample_ratio" validate:"min=0,max=1"`
}
