package handlers

import (
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/b64forge/b64forge/internal/codec"
	"github.com/b64forge/b64forge/internal/config"
	apperrors "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/metrics"
)

// EncodeRequest is the body of POST /v1/encode.
type EncodeRequest struct {
	Text    string `json:"text"`
	Padding *bool  `json:"padding,omitempty"`
}

// EncodeResponse is returned by POST /v1/encode.
type EncodeResponse struct {
	Encoded string `json:"encoded"`
	Length  int    `json:"length"`
}

// DecodeRequest is the body of POST /v1/decode. Strict overrides the
// configured decode policy when set.
type DecodeRequest struct {
	Encoded string `json:"encoded"`
	Strict  *bool  `json:"strict,omitempty"`
}

// DecodeResponse is returned by POST /v1/decode. When the decoded bytes are
// not valid UTF-8, Text carries them hex encoded and Encoding is "hex".
type DecodeResponse struct {
	Text     string `json:"text"`
	Length   int    `json:"length"`
	UTF8     bool   `json:"utf8"`
	Encoding string `json:"encoding,omitempty"`
}

// CodecHandler serves the encode and decode endpoints using the configured
// codec defaults.
type CodecHandler struct {
	encoder  codec.Encoder
	decoder  codec.Decoder
	maxBytes int64
}

// NewCodecHandler builds a handler from the codec section of the config.
func NewCodecHandler(cfg config.CodecConfig) (*CodecHandler, error) {
	dec, err := cfg.Decoder()
	if err != nil {
		return nil, err
	}
	return &CodecHandler{
		encoder:  cfg.Encoder(),
		decoder:  dec,
		maxBytes: cfg.MaxInputBytes,
	}, nil
}

// Encode handles POST /v1/encode.
func (h *CodecHandler) Encode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if !h.readBody(w, r, &req) {
		return
	}

	enc := h.encoder
	if req.Padding != nil {
		enc.Padding = *req.Padding
	}

	encoded := enc.EncodeToString([]byte(req.Text))
	metrics.RecordCodecOperation("encode", len(req.Text), len(encoded), "")

	writeJSON(w, http.StatusOK, EncodeResponse{
		Encoded: encoded,
		Length:  len(encoded),
	})
}

// Decode handles POST /v1/decode.
func (h *CodecHandler) Decode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if !h.readBody(w, r, &req) {
		return
	}

	dec := h.decoder
	if req.Strict != nil {
		dec.Policy = codec.PolicyLegacy
		if *req.Strict {
			dec.Policy = codec.PolicyStrict
		}
	}

	buf := make([]byte, codec.DecodedLen(len(req.Encoded)))
	n, err := dec.Decode(buf, []byte(req.Encoded))
	if err != nil {
		envelope := apperrors.FromCodecError(r.Context(), err)
		metrics.RecordCodecOperation("decode", len(req.Encoded), n, envelope.Code)
		respondWithError(w, r, envelope)
		return
	}
	metrics.RecordCodecOperation("decode", len(req.Encoded), n, "")

	decoded := buf[:n]
	resp := DecodeResponse{
		Length: n,
		UTF8:   utf8.Valid(decoded),
	}
	if resp.UTF8 {
		resp.Text = string(decoded)
	} else {
		resp.Text = hex.EncodeToString(decoded)
		resp.Encoding = "hex"
	}

	writeJSON(w, http.StatusOK, resp)
}

// readBody decodes a JSON body capped at the configured size and reports
// failures to the caller. It returns false when a response has been written.
func (h *CodecHandler) readBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, h.maxBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			envelope := apperrors.NewPayloadTooLargeError("request body exceeds the configured input limit")
			envelope = envelope.WithDetails(map[string]interface{}{
				"limit_bytes": maxErr.Limit,
			})
			respondWithError(w, r, envelope)
		case stderrors.Is(err, io.EOF):
			respondWithError(w, r, apperrors.NewInvalidInputError("request body is empty"))
		default:
			respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "request body is not valid JSON"))
		}
		return false
	}
	return true
}

// respondWithError is the single exit for handler failures.
var respondWithError = apperrors.RespondWithError

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
