package metrics

import (
	"strconv"
	"strings"

	"github.com/b64forge/b64forge/internal/observability"
)

// Error metric names
const (
	ErrorsTotalName      = "errors_total"
	PanicsTotalName      = "panics_total"
	ErrorsByEndpointName = "errors_by_endpoint"
)

// knownEndpoints are reported verbatim; any other path is folded into
// "/unknown" so scans against the server cannot grow label cardinality.
var knownEndpoints = map[string]string{
	"/v1/encode":      "/v1/encode",
	"/v1/decode":      "/v1/decode",
	"/version":        "/version",
	"/metrics":        "/metrics",
	"/admin/signal":   "/admin/signal",
	"/health":         "/health/*",
	"/health/live":    "/health/*",
	"/health/ready":   "/health/*",
	"/health/startup": "/health/*",
}

// RecordError records an error with code and status
func RecordError(errorCode string, httpStatus int) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		ErrorsTotalName,
		1,
		map[string]string{
			"error_code":  errorCode,
			"http_status": strconv.Itoa(httpStatus),
		},
	)
}

// RecordPanic records a panic recovery
func RecordPanic() {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(PanicsTotalName, 1, nil)
}

// RecordErrorByEndpoint records an error against the normalized endpoint.
func RecordErrorByEndpoint(path string, errorCode string) {
	if observability.TelemetrySystem == nil {
		return
	}
	_ = observability.TelemetrySystem.Counter(
		ErrorsByEndpointName,
		1,
		map[string]string{
			"endpoint":   EndpointLabel(path),
			"error_code": errorCode,
		},
	)
}

// EndpointLabel maps a request path to a bounded metric label.
func EndpointLabel(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}
	if label, ok := knownEndpoints[path]; ok {
		return label
	}
	return "/unknown"
}
