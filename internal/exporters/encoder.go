package exporters

import (
	"fmt"
	"io"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
)

// EncodeOptions controls the framing of an encoded table.
type EncodeOptions struct {
	// Header writes the column names. The aggregate of all final
	// snapshots is written without one.
	Header bool
}

// Encoder serializes a table to one output format.
//
// Implementations:
//   - CSVEncoder (csv.go)
//   - XLSXEncoder (xlsx.go)
//   - JSONEncoder, YAMLEncoder (records.go)
//   - LaTeXEncoder (latex.go)
//   - MarkdownEncoder (markdown.go)
type Encoder interface {
	Encode(w io.Writer, t entities.Table, opts EncodeOptions) error
}

// ForFormat returns the encoder for an output format.
func ForFormat(format formats.Output) (Encoder, error) {
	switch format {
	case formats.OutputCSV:
		return &CSVEncoder{}, nil
	case formats.OutputXLSX:
		return &XLSXEncoder{}, nil
	case formats.OutputJSON:
		return &JSONEncoder{}, nil
	case formats.OutputYAML:
		return &YAMLEncoder{}, nil
	case formats.OutputLaTeX:
		return &LaTeXEncoder{}, nil
	case formats.OutputMarkdown:
		return &MarkdownEncoder{}, nil
	default:
		return nil, fmt.Errorf("output format %q: %w", format, formats.ErrUnsupportedFormat)
	}
}
