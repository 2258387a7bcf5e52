package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/b64forge/b64forge/internal/codec"
)

// AlphabetEntry is one row of the symbol table.
type AlphabetEntry struct {
	Value  int    `json:"value" yaml:"value"`
	Symbol string `json:"symbol" yaml:"symbol"`
	Code   int    `json:"code" yaml:"code"`
	Bits   string `json:"bits" yaml:"bits"`
}

// AlphabetEntries lists the 64 data symbols followed by the padding symbol,
// which has Value -1.
func AlphabetEntries() []AlphabetEntry {
	symbols := codec.Alphabet()
	entries := make([]AlphabetEntry, 0, len(symbols)+1)
	for i := 0; i < len(symbols); i++ {
		entries = append(entries, AlphabetEntry{
			Value:  i,
			Symbol: string(symbols[i]),
			Code:   int(symbols[i]),
			Bits:   fmt.Sprintf("%06b", i),
		})
	}
	entries = append(entries, AlphabetEntry{
		Value:  -1,
		Symbol: string(rune(codec.PadChar)),
		Code:   codec.PadChar,
		Bits:   "pad",
	})
	return entries
}

// FormatAlphabet renders the alphabet in the requested format.
func FormatAlphabet(format Format) (string, error) {
	entries := AlphabetEntries()

	switch format {
	case FormatJSON:
		return marshalJSON(entries, true)
	case FormatYAML:
		return marshalYAML(entries)
	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("| Value | Symbol | Code | Bits |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "| %s | `%s` | %d | %s |\n", valueLabel(e), e.Symbol, e.Code, e.Bits)
		}
		return b.String(), nil
	case FormatTable:
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Value", "Symbol", "Code", "Bits"})
		for _, e := range entries {
			t.AppendRow(table.Row{valueLabel(e), e.Symbol, e.Code, e.Bits})
		}
		return t.Render() + "\n", nil
	default:
		return codec.Alphabet() + string(rune(codec.PadChar)) + "\n", nil
	}
}

func valueLabel(e AlphabetEntry) string {
	if e.Value < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", e.Value)
}
