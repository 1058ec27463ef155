// Package formats enumerates the closed set of supported table encodings.
//
// Input and output formats are distinct variants: a name is resolved once
// when configuration is loaded and unknown names are rejected there, so a
// bad configuration never touches a file.
package formats

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnsupportedFormat indicates a format name outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Input is a decodable source encoding.
type Input string

const (
	InputXLSX   Input = "xlsx"   // spreadsheet
	InputCSV    Input = "csv"    // delimited text
	InputJSON   Input = "json"   // structured records
	InputYAML   Input = "yaml"   // structured records
	InputSQLite Input = "sqlite" // relational query
)

// Output is an encodable target format.
type Output string

const (
	OutputCSV      Output = "csv"
	OutputXLSX     Output = "xlsx"
	OutputJSON     Output = "json"
	OutputYAML     Output = "yaml"
	OutputLaTeX    Output = "latex"
	OutputMarkdown Output = "markdown"
)

var inputs = map[Input][]string{
	InputXLSX:   {".xlsx"},
	InputCSV:    {".csv"},
	InputJSON:   {".json"},
	InputYAML:   {".yaml", ".yml"},
	InputSQLite: {".db", ".sqlite", ".sqlite3"},
}

var outputs = map[Output]string{
	OutputCSV:      ".csv",
	OutputXLSX:     ".xlsx",
	OutputJSON:     ".json",
	OutputYAML:     ".yaml",
	OutputLaTeX:    ".tex",
	OutputMarkdown: ".md",
}

// inputAliases accepts the historical command line names.
var inputAliases = map[string]Input{
	"excel":       InputXLSX,
	"spreadsheet": InputXLSX,
	"yml":         InputYAML,
	"sql":         InputSQLite,
}

var outputAliases = map[string]Output{
	"excel": OutputXLSX,
	"yml":   OutputYAML,
	"tex":   OutputLaTeX,
	"md":    OutputMarkdown,
}

// ParseInput resolves an input format name.
func ParseInput(name string) (Input, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := inputAliases[key]; ok {
		return alias, nil
	}
	in := Input(key)
	if _, ok := inputs[in]; !ok {
		return "", fmt.Errorf("input format %q: %w", name, ErrUnsupportedFormat)
	}
	return in, nil
}

// ParseOutput resolves an output format name.
func ParseOutput(name string) (Output, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := outputAliases[key]; ok {
		return alias, nil
	}
	out := Output(key)
	if _, ok := outputs[out]; !ok {
		return "", fmt.Errorf("output format %q: %w", name, ErrUnsupportedFormat)
	}
	return out, nil
}

// Extensions returns the file extensions recognised for an input format.
func (in Input) Extensions() []string {
	return slices.Clone(inputs[in])
}

// Matches reports whether path carries one of the format's extensions.
func (in Input) Matches(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range inputs[in] {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Extension returns the file extension written for an output format.
func (out Output) Extension() string {
	return outputs[out]
}

// InputNames lists supported input formats in a stable order.
func InputNames() []string {
	names := make([]string, 0, len(inputs))
	for in := range inputs {
		names = append(names, string(in))
	}
	slices.Sort(names)
	return names
}

// OutputNames lists supported output formats in a stable order.
func OutputNames() []string {
	names := make([]string, 0, len(outputs))
	for out := range outputs {
		names = append(names, string(out))
	}
	slices.Sort(names)
	return names
}
