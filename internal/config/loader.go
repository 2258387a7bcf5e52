// Package config loads b64forge settings from defaults, an optional YAML
// file, B64FORGE_* environment variables and bound CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"github.com/b64forge/b64forge/internal/codec"
)

const (
	// AppName is used for the config directory and file names.
	AppName = "b64forge"

	// EnvPrefix prefixes every environment override, e.g. B64FORGE_CODEC_POLICY.
	EnvPrefix = "B64FORGE"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// NewViper returns a viper instance with defaults and environment binding
// configured. Nested keys map to env vars with '.' replaced by '_'.
func NewViper() *viper.Viper {
	v := viper.New()
	Configure(v)
	return v
}

// Configure applies defaults and environment binding to v.
func Configure(v *viper.Viper) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaults sets default configuration values
func SetDefaults(v *viper.Viper) {
	v.SetDefault("codec.padding", true)
	v.SetDefault("codec.policy", "legacy")
	v.SetDefault("codec.max_input_bytes", 1<<20)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("health.enabled", true)

	v.SetDefault("output.format", "text")
}

// AddSearchPaths registers the config file locations, first match wins:
// $XDG_CONFIG_HOME/b64forge/config.yaml, ~/.b64forge/config.yaml,
// ./config/config.yaml.
func AddSearchPaths(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, AppName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, "."+AppName))
	}
	v.AddConfigPath("./config")
}

// Load decodes the settings held by v into a Config, validates it and stores
// it as the process configuration.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate checks values that mapstructure cannot. Every problem is
// reported, not just the first.
func Validate(cfg *Config) error {
	var result error

	if _, err := codec.ParsePolicy(cfg.Codec.Policy); err != nil {
		result = multierror.Append(result, fmt.Errorf("codec.policy: %w", err))
	}
	if cfg.Codec.MaxInputBytes <= 0 {
		result = multierror.Append(result, fmt.Errorf("codec.max_input_bytes must be positive, got %d", cfg.Codec.MaxInputBytes))
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("server.port out of range: %d", cfg.Server.Port))
	}
	if cfg.Metrics.Port < 0 || cfg.Metrics.Port > 65535 {
		result = multierror.Append(result, fmt.Errorf("metrics.port out of range: %d", cfg.Metrics.Port))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Output.Format)) {
	case "", "text", "json", "yaml", "yml", "table", "markdown", "md":
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported output.format: %s", cfg.Output.Format))
	}

	return result
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}
