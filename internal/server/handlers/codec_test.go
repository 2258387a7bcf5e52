package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b64forge/b64forge/internal/config"
)

type errorBody struct {
	Error struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func newTestCodecHandler(t *testing.T, policy string, maxBytes int64) *CodecHandler {
	t.Helper()
	h, err := NewCodecHandler(config.CodecConfig{
		Padding:       true,
		Policy:        policy,
		MaxInputBytes: maxBytes,
	})
	require.NoError(t, err)
	return h
}

func post(handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestNewCodecHandlerRejectsUnknownPolicy(t *testing.T) {
	_, err := NewCodecHandler(config.CodecConfig{Policy: "lenient", MaxInputBytes: 1})
	assert.Error(t, err)
}

func TestEncodeHandler(t *testing.T) {
	h := newTestCodecHandler(t, "legacy", 1<<20)

	tests := []struct {
		name    string
		body    string
		encoded string
	}{
		{"three bytes", `{"text":"Man"}`, "TWFu"},
		{"padded by default", `{"text":"f"}`, "Zg=="},
		{"padding disabled", `{"text":"f","padding":false}`, "Zg"},
		{"empty", `{"text":""}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(h.Encode, "/v1/encode", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp EncodeResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.encoded, resp.Encoded)
			assert.Equal(t, len(tt.encoded), resp.Length)
		})
	}
}

func TestDecodeHandler(t *testing.T) {
	h := newTestCodecHandler(t, "legacy", 1<<20)

	rec := post(h.Decode, "/v1/decode", `{"encoded":"Zm9v"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DecodeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, DecodeResponse{Text: "foo", Length: 3, UTF8: true}, resp)
}

func TestDecodeHandlerHexEncodesBinaryOutput(t *testing.T) {
	h := newTestCodecHandler(t, "legacy", 1<<20)

	rec := post(h.Decode, "/v1/decode", `{"encoded":"/w=="}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DecodeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, DecodeResponse{Text: "ff", Length: 1, UTF8: false, Encoding: "hex"}, resp)
}

func TestDecodeHandlerReportsInvalidCharacter(t *testing.T) {
	h := newTestCodecHandler(t, "legacy", 1<<20)

	rec := post(h.Decode, "/v1/decode", `{"encoded":"TWFu*AAA"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_CHARACTER", body.Error.Code)
	assert.EqualValues(t, 4, body.Error.Details["offset"])
	assert.EqualValues(t, '*', body.Error.Details["byte"])
}

func TestDecodeHandlerPolicySelection(t *testing.T) {
	legacy := newTestCodecHandler(t, "legacy", 1<<20)
	strict := newTestCodecHandler(t, "strict", 1<<20)

	// Interior padding is tolerated by the legacy state machine.
	rec := post(legacy.Decode, "/v1/decode", `{"encoded":"Zm=v"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = post(legacy.Decode, "/v1/decode", `{"encoded":"Zm=v","strict":true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_PADDING", body.Error.Code)
	assert.EqualValues(t, 2, body.Error.Details["offset"])

	rec = post(strict.Decode, "/v1/decode", `{"encoded":"Z"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = errorBody{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "TRUNCATED_INPUT", body.Error.Code)

	rec = post(strict.Decode, "/v1/decode", `{"encoded":"Zm=v","strict":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCodecHandlerRejectsOversizedBody(t *testing.T) {
	h := newTestCodecHandler(t, "legacy", 16)

	rec := post(h.Encode, "/v1/encode", `{"text":"`+strings.Repeat("a", 64)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "PAYLOAD_TOO_LARGE", body.Error.Code)
	assert.EqualValues(t, 16, body.Error.Details["limit_bytes"])
}

func TestCodecHandlerRejectsMalformedBodies(t *testing.T) {
	h := newTestCodecHandler(t, "legacy", 1<<20)

	for _, raw := range []string{"", "{", `{"text":1}`, `{"txt":"Man"}`} {
		rec := post(h.Encode, "/v1/encode", raw)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", raw)

		var body errorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "INVALID_INPUT", body.Error.Code, "body %q", raw)
	}
}
