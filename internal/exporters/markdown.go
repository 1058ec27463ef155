package exporters

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

var markdownEscaper = strings.NewReplacer(
	`|`, `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
)

// MarkdownEncoder writes a pipe table. Pipe tables always need a header
// line, so a headerless table gets blank column titles.
type MarkdownEncoder struct{}

func (e *MarkdownEncoder) Encode(w io.Writer, t entities.Table, opts EncodeOptions) error {
	var builder strings.Builder

	width := len(t.Columns)
	if width == 0 && len(t.Rows) > 0 {
		width = len(t.Rows[0].Cells)
	}

	header := make([]string, width)
	if opts.Header {
		copy(header, t.Columns)
	}
	writeMarkdownRow(&builder, header)

	separator := make([]string, width)
	for i := range separator {
		separator[i] = "---"
	}
	fmt.Fprintf(&builder, "| %s |\n", strings.Join(separator, " | "))

	for _, row := range t.Strings() {
		writeMarkdownRow(&builder, row)
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeMarkdownRow(builder *strings.Builder, values []string) {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = markdownEscaper.Replace(v)
	}
	fmt.Fprintf(builder, "| %s |\n", strings.Join(escaped, " | "))
}

var _ Encoder = (*MarkdownEncoder)(nil)
