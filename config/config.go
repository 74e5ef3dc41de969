package config

import (
	"time"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/observability"
	"github.com/kbukum/lazyseq/util"
	"github.com/kbukum/lazyseq/validation"
	"github.com/kbukum/lazyseq/version"
)

// Sort modes.
const (
	SortStable   = "stable"
	SortUnstable = "unstable"
)

// Config holds the settings of the sequence engine.
//
//	name: orders
//	logging:
//	  level: debug
//	sort:
//	  mode: stable
//	observability:
//	  metrics: true
type Config struct {
	BaseConfig    `yaml:",inline" mapstructure:",squash"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Sort          SortConfig          `yaml:"sort" mapstructure:"sort"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// SortConfig selects the algorithm behind the sort family.
type SortConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=stable unstable"`
}

// IsStable reports whether equal keys keep their encounter order.
func (c SortConfig) IsStable() bool { return c.Mode != SortUnstable }

// ObservabilityConfig switches engine metrics and traced traversals on and
// says where the OTLP exporters send them.
type ObservabilityConfig struct {
	Metrics     bool          `yaml:"metrics" mapstructure:"metrics"`
	Tracing     bool          `yaml:"tracing" mapstructure:"tracing"`
	ServiceName string        `yaml:"service_name" mapstructure:"service_name"`
	Endpoint    string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure    bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate  float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"min=0,max=1"`
	Interval    time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	c.BaseConfig.ApplyDefaults()
	c.Version = util.Coalesce(c.Version, version.Short())
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	if c.Sort.Mode == "" {
		c.Sort.Mode = SortStable
	}

	o := &c.Observability
	o.ServiceName = util.Coalesce(o.ServiceName, c.Name)
	o.Endpoint = util.Coalesce(o.Endpoint, "localhost:4318")
	if o.SampleRate == 0 {
		o.SampleRate = 1
	}
	if o.Interval == 0 {
		o.Interval = 15 * time.Second
	}
}

// Validate checks the settings and reports every problem in one
// INVALID_CONFIG error.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.InvalidConfig("config validation failed").WithCause(err)
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("config.logging").WithCause(err)
	}
	o := c.Observability
	if appErr := validation.New().
		RequiredIf(o.Metrics || o.Tracing, "observability.service_name", o.ServiceName).
		Validate(); appErr != nil {
		return errors.InvalidConfig("config validation failed").WithCause(appErr)
	}
	return nil
}

// MeterConfig returns the OTLP meter settings.
func (c *Config) MeterConfig() *observability.MeterConfig {
	return &observability.MeterConfig{
		ServiceName:    c.Observability.ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Observability.Endpoint,
		Insecure:       c.Observability.Insecure,
		Interval:       c.Observability.Interval,
	}
}

// TracerConfig returns the OTLP tracer settings.
func (c *Config) TracerConfig() *observability.TracerConfig {
	return &observability.TracerConfig{
		ServiceName:    c.Observability.ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Observability.Endpoint,
		Insecure:       c.Observability.Insecure,
		SampleRate:     c.Observability.SampleRate,
	}
}
