package config

import (
	"time"

	"github.com/b64forge/b64forge/internal/codec"
)

// Config represents the complete application configuration. Values are
// layered by viper: built-in defaults, then the config file, then
// B64FORGE_* environment variables, then command-line flags.
type Config struct {
	Codec   CodecConfig   `mapstructure:"codec"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Health  HealthConfig  `mapstructure:"health"`
	Output  OutputConfig  `mapstructure:"output"`
}

// CodecConfig holds the defaults applied to encode and decode requests.
type CodecConfig struct {
	// Padding controls whether encoders append '=' to short final groups.
	Padding bool `mapstructure:"padding"`

	// Policy selects the decode policy.
	// Valid values: legacy, strict
	Policy string `mapstructure:"policy"`

	// MaxInputBytes caps the size of a single request body or input file.
	MaxInputBytes int64 `mapstructure:"max_input_bytes"`
}

// Encoder returns an encoder honoring the padding default.
func (c CodecConfig) Encoder() codec.Encoder {
	return codec.Encoder{Padding: c.Padding}
}

// Decoder returns a decoder for the configured policy.
func (c CodecConfig) Decoder() (codec.Decoder, error) {
	policy, err := codec.ParsePolicy(c.Policy)
	if err != nil {
		return codec.Decoder{}, err
	}
	return codec.Decoder{Policy: policy}, nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the server logger shape
	// Valid values: simple, structured
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated Prometheus exporter port. /metrics on the main
	// HTTP port proxies to it.
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// OutputConfig selects the CLI rendering.
type OutputConfig struct {
	// Format: text, json, yaml, table, markdown
	Format string `mapstructure:"format"`
}
