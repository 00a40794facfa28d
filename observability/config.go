package observability

import (
	"fmt"
	"time"
)

// Config controls the OTLP exporters.
type Config struct {
	TracingEnabled bool          `yaml:"tracing_enabled" mapstructure:"tracing_enabled"`
	MetricsEnabled bool          `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`
	Endpoint       string        `yaml:"otlp_endpoint" mapstructure:"otlp_endpoint"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	ExportInterval time.Duration `yaml:"export_interval" mapstructure:"export_interval"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.ExportInterval == 0 {
		c.ExportInterval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("observability.sample_rate must be within [0, 1] (got: %v)", c.SampleRate)
	}
	if (c.TracingEnabled || c.MetricsEnabled) && c.Endpoint == "" {
		return fmt.Errorf("observability.otlp_endpoint is required when an exporter is enabled")
	}
	return nil
}

// Resource describes the running service.
type Resource struct {
	Name        string
	Version     string
	Environment string
}
