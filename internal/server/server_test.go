package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b64forge/b64forge/internal/config"
	apperrors "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/server/handlers"
)

func testConfig() *config.Config {
	return &config.Config{
		Codec: config.CodecConfig{
			Padding:       true,
			Policy:        "legacy",
			MaxInputBytes: 1 << 20,
		},
		Server: config.ServerConfig{Host: "127.0.0.1"},
		Health: config.HealthConfig{Enabled: true},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	hm := handlers.NewHealthManager("test")
	hm.RegisterChecker("codec", handlers.HealthCheckerFunc(func(context.Context) error { return nil }))

	srv, err := New(testConfig(), hm)
	require.NoError(t, err)
	return srv
}

func TestNewRejectsInvalidPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Codec.Policy = "relaxed"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestServerUsesStandardErrorHandlers(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		status int
		code   string
	}{
		{http.MethodGet, "/does-not-exist", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/v1/encode", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)

			var body apperrors.HTTPErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.RequestID)
		})
	}
}

func TestServerRoundTripsThroughCodecRoutes(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/encode", strings.NewReader(`{"text":"foo"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var encoded handlers.EncodeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&encoded))
	assert.Equal(t, "Zm9v", encoded.Encoded)

	req = httptest.NewRequest(http.MethodPost, "/v1/decode", strings.NewReader(`{"encoded":"`+encoded.Encoded+`"}`))
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var decoded handlers.DecodeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decoded))
	assert.Equal(t, "foo", decoded.Text)
}

func TestServerPropagatesRequestIDToErrors(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/decode", strings.NewReader(`{"encoded":"Zm9v!"}`))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_CHARACTER", body.Error.Code)
	assert.Equal(t, "req-123", body.Error.RequestID)
}

func TestHealthRoutesFollowConfig(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/health/startup"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	cfg := testConfig()
	cfg.Health.Enabled = false
	disabled, err := New(cfg, handlers.NewHealthManager("test"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	disabled.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminEndpointRequiresToken(t *testing.T) {
	t.Setenv(AdminTokenEnv, "")
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/signal", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVersionReportsConfiguredCodec(t *testing.T) {
	cfg := testConfig()
	cfg.Codec.Policy = "strict"
	cfg.Codec.Padding = false

	srv, err := New(cfg, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "strict", resp.Codec.Policy)
	assert.False(t, resp.Codec.PadByDefault)
	assert.EqualValues(t, 1<<20, resp.Codec.MaxInputBytes)
}
