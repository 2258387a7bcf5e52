package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatResult renders a result as a two-column table.
func (f *TableFormatter) FormatResult(result *Result) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, row := range resultRows(result) {
		t.AppendRow(table.Row{row[0], row[1]})
	}

	return t.Render() + "\n", nil
}

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatResult renders a result as a markdown table.
func (f *MarkdownFormatter) FormatResult(result *Result) (string, error) {
	if result == nil {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("| Field | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, row := range resultRows(result) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], escapeMarkdownCell(row[1]))
	}
	return b.String(), nil
}

func resultRows(result *Result) [][2]string {
	rows := [][2]string{
		{"operation", result.Operation},
	}
	if result.Operation == OperationEncode {
		rows = append(rows, [2]string{"padding", fmt.Sprintf("%t", result.Padding)})
	}
	if result.Policy != "" {
		rows = append(rows, [2]string{"policy", result.Policy})
	}
	rows = append(rows,
		[2]string{"input_length", fmt.Sprintf("%d", result.InputLength)},
		[2]string{"output_length", fmt.Sprintf("%d", result.OutputLength)},
		[2]string{"encoding", result.Encoding},
		[2]string{"output", result.Output},
	)
	return rows
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	return strings.ReplaceAll(value, "\n", "<br>")
}
