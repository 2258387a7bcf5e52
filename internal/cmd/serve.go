package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/b64forge/b64forge/internal/config"
	errwrap "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/metrics"
	"github.com/b64forge/b64forge/internal/observability"
	"github.com/b64forge/b64forge/internal/server"
	"github.com/b64forge/b64forge/internal/server/handlers"
)

// codecHealthChecker round-trips the reference vectors.
type codecHealthChecker struct{}

func (codecHealthChecker) CheckHealth(ctx context.Context) error {
	return runSelfCheck()
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server exposing POST /v1/encode and POST /v1/decode.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config file re-read (codec defaults apply after restart)`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	observability.InitServerLogger(config.AppName, cfg.Logging.Level, cfg.Logging.Profile, config.AppName)
	logger := observability.ServerLogger

	if cfg.Metrics.Enabled {
		if err := observability.InitMetrics(config.AppName, cfg.Metrics.Port, config.AppName); err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			return errwrap.WrapInternal(ctx, err, "metrics initialization failed")
		}
		metrics.SetServerStartTime(time.Now().Unix())
	}

	logger.Info("Initializing server",
		zap.String("version", versionInfo.Version),
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
		zap.Bool("padding", cfg.Codec.Padding),
		zap.String("policy", cfg.Codec.Policy),
		zap.Int64("max_input_bytes", cfg.Codec.MaxInputBytes),
		zap.Int("metrics_port", observability.GetMetricsPort()))

	srv, err := server.New(cfg, newHealthManager(cfg))
	if err != nil {
		return errwrap.WrapConfigInvalid(ctx, err, "server configuration invalid")
	}

	registerLifecycle(srv, cfg, logger)

	errCh := make(chan error, 2)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := signals.Listen(ctx); err != nil {
			logger.Error("Signal handler error", zap.Error(err))
			errCh <- err
		}
	}()

	if err := <-errCh; err != nil {
		return errwrap.WrapInternal(ctx, err, "server error")
	}
	return nil
}

func newHealthManager(cfg *config.Config) *handlers.HealthManager {
	hm := handlers.NewHealthManager(versionInfo.Version)
	hm.RegisterChecker("codec", codecHealthChecker{})
	if cfg.Metrics.Enabled {
		hm.RegisterChecker("telemetry", telemetryHealthChecker{})
	}
	return hm
}

// registerLifecycle wires shutdown, reload and force-quit handling.
// Shutdown handlers run LIFO, so the server stops before the logger flushes.
func registerLifecycle(srv *server.Server, cfg *config.Config, logger *logging.Logger) {
	signals.OnShutdown(func(context.Context) error {
		if err := logger.Sync(); err != nil {
			logger.Debug("Logger sync returned error", zap.Error(err))
		}
		return nil
	})

	signals.OnShutdown(func(ctx context.Context) error {
		logger.Info("Shutting down HTTP server", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errwrap.WrapInternal(ctx, err, "server shutdown failed")
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	signals.OnReload(func(ctx context.Context) error {
		return reloadConfig(ctx, logger)
	})

	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
	}
}

// reloadConfig re-reads and validates the config file on SIGHUP. The running
// router keeps its codec settings; a restart applies them.
func reloadConfig(ctx context.Context, logger *logging.Logger) error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.Info("SIGHUP: no config file, keeping defaults and environment")
			return nil
		}
		logger.Error("SIGHUP: config file unreadable", zap.String("file", viper.ConfigFileUsed()), zap.Error(err))
		return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
	}

	reloaded, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Error("SIGHUP: config invalid", zap.Error(err))
		return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
	}

	logger.Info("SIGHUP: configuration reloaded",
		zap.String("file", viper.ConfigFileUsed()),
		zap.String("policy", reloaded.Codec.Policy))
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")
	serveCmd.Flags().String("policy", "", "decode policy for /v1/decode: legacy or strict")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("codec.policy", serveCmd.Flags().Lookup("policy"))
}
