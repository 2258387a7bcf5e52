package output

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders results as YAML.
type YAMLFormatter struct{}

// FormatResult renders a result as YAML.
func (f *YAMLFormatter) FormatResult(result *Result) (string, error) {
	if result == nil {
		return "", nil
	}
	return marshalYAML(result)
}

func marshalYAML(value any) (string, error) {
	data, err := yaml.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
