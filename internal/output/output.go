package output

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Format represents an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatTable):
		return FormatTable, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// Operation names carried by Result.
const (
	OperationEncode = "encode"
	OperationDecode = "decode"
)

// Result describes one codec call for rendering.
type Result struct {
	Operation    string `json:"operation" yaml:"operation"`
	Policy       string `json:"policy,omitempty" yaml:"policy,omitempty"`
	Padding      bool   `json:"padding" yaml:"padding"`
	InputLength  int    `json:"input_length" yaml:"input_length"`
	OutputLength int    `json:"output_length" yaml:"output_length"`

	// Output is the rendered payload; Encoding says how to read it.
	Output   string `json:"output" yaml:"output"`
	Encoding string `json:"encoding" yaml:"encoding"`

	raw []byte
}

// NewEncodeResult builds a Result for encoded text.
func NewEncodeResult(inputLength int, encoded []byte, padding bool) *Result {
	return &Result{
		Operation:    OperationEncode,
		Padding:      padding,
		InputLength:  inputLength,
		OutputLength: len(encoded),
		Output:       string(encoded),
		Encoding:     "utf-8",
		raw:          encoded,
	}
}

// NewDecodeResult builds a Result for decoded bytes. Bytes that are not
// valid UTF-8 are carried as hex in structured formats.
func NewDecodeResult(inputLength int, decoded []byte, policy string) *Result {
	r := &Result{
		Operation:    OperationDecode,
		Policy:       policy,
		InputLength:  inputLength,
		OutputLength: len(decoded),
		Output:       string(decoded),
		Encoding:     "utf-8",
		raw:          decoded,
	}
	if !utf8.Valid(decoded) {
		r.Output = hex.EncodeToString(decoded)
		r.Encoding = "hex"
	}
	return r
}

// Raw returns the unmodified output bytes.
func (r *Result) Raw() []byte {
	return r.raw
}

// Formatter renders codec results.
type Formatter interface {
	FormatResult(result *Result) (string, error)
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TextFormatter{}
	}
}

// TextFormatter emits only the payload. Encoded text gets a trailing newline;
// decoded bytes are passed through untouched.
type TextFormatter struct{}

// FormatResult renders a result as plain text.
func (f *TextFormatter) FormatResult(result *Result) (string, error) {
	if result == nil {
		return "", nil
	}
	if result.Operation == OperationEncode {
		return string(result.raw) + "\n", nil
	}
	return string(result.raw), nil
}
