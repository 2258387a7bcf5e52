package metrics

import (
	"time"

	"github.com/b64forge/b64forge/internal/observability"
)

// Codec metrics following Prometheus conventions
const (
	CodecOperationsTotal = "codec_operations_total"
	CodecPayloadBytes    = "codec_payload_bytes"
	CodecErrorsTotal     = "codec_errors_total"

	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	ServerStartTime = "app_server_start_time_seconds"
)

// RecordCodecOperation records one encode or decode call. in and out are the
// byte counts consumed and produced; errorCode is empty on success.
func RecordCodecOperation(operation string, in, out int, errorCode string) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "success"
	if errorCode != "" {
		status = "failure"
	}

	_ = observability.TelemetrySystem.Counter(
		CodecOperationsTotal,
		1,
		map[string]string{
			"operation": operation,
			"status":    status,
		},
	)

	// Payload sizes are single values per call, so they go out as gauges.
	_ = observability.TelemetrySystem.Gauge(
		CodecPayloadBytes,
		float64(in),
		map[string]string{
			"operation": operation,
			"direction": "in",
		},
	)
	_ = observability.TelemetrySystem.Gauge(
		CodecPayloadBytes,
		float64(out),
		map[string]string{
			"operation": operation,
			"direction": "out",
		},
	)

	if errorCode != "" {
		_ = observability.TelemetrySystem.Counter(
			CodecErrorsTotal,
			1,
			map[string]string{
				"operation": operation,
				"code":      errorCode,
			},
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}
