package output

import (
	"encoding/json"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatResult renders a result as JSON.
func (f *JSONFormatter) FormatResult(result *Result) (string, error) {
	if result == nil {
		return "", nil
	}
	return marshalJSON(result, f.Indent)
}

func marshalJSON(value any, indent bool) (string, error) {
	var (
		data []byte
		err  error
	)

	if indent {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}
