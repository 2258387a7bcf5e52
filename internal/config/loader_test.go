package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b64forge/b64forge/internal/codec"
)

func TestLoad(t *testing.T) {
	t.Run("LoadDefaults", func(t *testing.T) {
		cfg, err := Load(NewViper())
		require.NoError(t, err)

		assert.True(t, cfg.Codec.Padding)
		assert.Equal(t, "legacy", cfg.Codec.Policy)
		assert.Equal(t, int64(1<<20), cfg.Codec.MaxInputBytes)

		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "structured", cfg.Logging.Profile)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.Equal(t, "text", cfg.Output.Format)

		assert.Same(t, cfg, GetConfig())
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		t.Setenv("B64FORGE_CODEC_POLICY", "strict")
		t.Setenv("B64FORGE_CODEC_PADDING", "false")
		t.Setenv("B64FORGE_SERVER_PORT", "9191")
		t.Setenv("B64FORGE_SERVER_READ_TIMEOUT", "5s")

		cfg, err := Load(NewViper())
		require.NoError(t, err)

		assert.Equal(t, "strict", cfg.Codec.Policy)
		assert.False(t, cfg.Codec.Padding)
		assert.Equal(t, 9191, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)

		dec, err := cfg.Codec.Decoder()
		require.NoError(t, err)
		assert.Equal(t, codec.PolicyStrict, dec.Policy)
		assert.False(t, cfg.Codec.Encoder().Padding)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := "codec:\n  policy: strict\n  max_input_bytes: 4096\noutput:\n  format: json\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		v := NewViper()
		v.SetConfigFile(path)
		require.NoError(t, v.ReadInConfig())

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "strict", cfg.Codec.Policy)
		assert.Equal(t, int64(4096), cfg.Codec.MaxInputBytes)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.True(t, cfg.Codec.Padding)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(NewViper())
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Codec.Policy = "rfc2045"
	require.Error(t, Validate(cfg))

	cfg = base()
	cfg.Codec.MaxInputBytes = 0
	require.Error(t, Validate(cfg))

	cfg = base()
	cfg.Server.Port = 70000
	require.Error(t, Validate(cfg))

	cfg = base()
	cfg.Output.Format = "csv"
	require.Error(t, Validate(cfg))
}

func TestValidateAcceptsFormatAliases(t *testing.T) {
	for _, format := range []string{"", "text", "JSON", "yml", "table", "markdown", "md"} {
		cfg, err := Load(NewViper())
		require.NoError(t, err)
		cfg.Output.Format = format
		require.NoError(t, Validate(cfg), "format %q", format)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg, err := Load(NewViper())
	require.NoError(t, err)

	cfg.Codec.Policy = "rfc2045"
	cfg.Codec.MaxInputBytes = -1
	cfg.Output.Format = "csv"

	err = Validate(cfg)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 3)
	require.Contains(t, err.Error(), "codec.policy")
	require.Contains(t, err.Error(), "output.format")
}
