package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/b64forge/b64forge/internal/codec"
	errwrap "github.com/b64forge/b64forge/internal/errors"
	"github.com/b64forge/b64forge/internal/metrics"
	"github.com/b64forge/b64forge/internal/output"
)

var errInputTooLarge = errors.New("input exceeds codec.max_input_bytes")

// readInput returns the payload from the positional argument, the --file
// path, or stdin (also selected by --file -), capped at limit bytes.
func readInput(args []string, path string, stdin io.Reader, limit int64) ([]byte, error) {
	path = strings.TrimSpace(path)
	if len(args) > 0 {
		if path != "" {
			return nil, fmt.Errorf("cannot combine positional input with --file")
		}
		if int64(len(args[0])) > limit {
			return nil, errInputTooLarge
		}
		return []byte(args[0]), nil
	}

	reader := stdin
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close() // nolint:errcheck
		reader = file
	}

	data, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errInputTooLarge
	}
	return data, nil
}

// encodeInput encodes data and records the operation.
func encodeInput(data []byte, enc codec.Encoder) *output.Result {
	buf := make([]byte, enc.EncodedLen(len(data)))
	n := enc.Encode(buf, data)
	metrics.RecordCodecOperation(output.OperationEncode, len(data), n, "")
	return output.NewEncodeResult(len(data), buf[:n], enc.Padding)
}

// decodeInput decodes data after dropping trailing line endings, which
// shells and editors append to files and piped text.
func decodeInput(ctx context.Context, data []byte, dec codec.Decoder) (*output.Result, error) {
	data = bytes.TrimRight(data, "\r\n")

	buf := make([]byte, codec.DecodedLen(len(data)))
	n, err := dec.Decode(buf, data)
	if err != nil {
		envelope := errwrap.FromCodecError(ctx, err)
		metrics.RecordCodecOperation(output.OperationDecode, len(data), n, envelope.Code)
		return nil, envelope
	}

	metrics.RecordCodecOperation(output.OperationDecode, len(data), n, "")
	return output.NewDecodeResult(len(data), buf[:n], dec.Policy.String()), nil
}

func writeResult(w io.Writer, format output.Format, result *output.Result) error {
	rendered, err := output.NewFormatter(format).FormatResult(result)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
