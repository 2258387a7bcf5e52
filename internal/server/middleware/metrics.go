package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/b64forge/b64forge/internal/metrics"
	"github.com/b64forge/b64forge/internal/observability"
)

// HTTP metric names
const (
	HTTPRequestsTotal     = "http_requests_total"
	HTTPRequestDuration   = "http_request_duration_ms"
	HTTPRequestSizeBytes  = "http_request_size_bytes"
	HTTPResponseSizeBytes = "http_response_size_bytes"
	HTTPErrorsTotal       = "http_errors_total"
)

// statusRecorder captures the status code and body size a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

// getEndpointPattern prefers the matched chi route so labels stay bounded.
func getEndpointPattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if routePattern := rctx.RoutePattern(); routePattern != "" {
			return routePattern
		}
	}
	return metrics.EndpointLabel(r.URL.Path)
}

// RequestMetrics emits request count, latency, sizes and error class for
// every request, then logs it. Probe and scrape traffic logs at debug.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if observability.TelemetrySystem == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := getEndpointPattern(r)
		duration := time.Since(start)
		requestSize := r.ContentLength
		if requestSize < 0 {
			requestSize = 0
		}

		recordRequest(r.Method, endpoint, rec.status, duration, requestSize, rec.written)
		logRequest(r, endpoint, rec.status, duration, requestSize, rec.written)
	})
}

func recordRequest(method, endpoint string, status int, duration time.Duration, requestSize, responseSize int64) {
	sys := observability.TelemetrySystem
	statusLabel := strconv.Itoa(status)
	labels := map[string]string{
		"method":   method,
		"endpoint": endpoint,
		"status":   statusLabel,
	}
	sizeLabels := map[string]string{
		"method":   method,
		"endpoint": endpoint,
	}

	_ = sys.Counter(HTTPRequestsTotal, 1, labels)
	_ = sys.Histogram(HTTPRequestDuration, duration, labels)
	_ = sys.Gauge(HTTPRequestSizeBytes, float64(requestSize), sizeLabels)
	_ = sys.Gauge(HTTPResponseSizeBytes, float64(responseSize), sizeLabels)

	if status >= http.StatusBadRequest {
		errorType := "client_error"
		if status >= http.StatusInternalServerError {
			errorType = "server_error"
		}
		_ = sys.Counter(HTTPErrorsTotal, 1, map[string]string{
			"method":     method,
			"endpoint":   endpoint,
			"status":     statusLabel,
			"error_type": errorType,
		})
	}
}

func logRequest(r *http.Request, endpoint string, status int, duration time.Duration, requestSize, responseSize int64) {
	logger := observability.ServerLogger
	if logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("endpoint", endpoint),
		zap.Int("status", status),
		zap.Duration("duration", duration),
		zap.Int64("request_size", requestSize),
		zap.Int64("response_size", responseSize),
		zap.String("request_id", GetRequestID(r.Context())),
	}

	if strings.HasPrefix(endpoint, "/health") || endpoint == "/metrics" {
		logger.Debug("HTTP request completed", fields...)
		return
	}
	logger.Info("HTTP request completed", fields...)
}
