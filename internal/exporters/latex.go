package exporters

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	"\n", " ",
)

// EscapeLaTeX escapes the characters LaTeX treats specially.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// LaTeXEncoder writes a tabular environment, one line per record.
type LaTeXEncoder struct{}

func (e *LaTeXEncoder) Encode(w io.Writer, t entities.Table, opts EncodeOptions) error {
	bw := bufio.NewWriter(w)

	width := len(t.Columns)
	if width == 0 && len(t.Rows) > 0 {
		width = len(t.Rows[0].Cells)
	}

	fmt.Fprintf(bw, "\\begin{tabular}{|%s}\n", strings.Repeat("l|", width))
	fmt.Fprintf(bw, "\\hline\n")
	if opts.Header {
		writeLaTeXRow(bw, t.Columns)
	}
	for _, row := range t.Strings() {
		writeLaTeXRow(bw, row)
	}
	fmt.Fprintf(bw, "\\end{tabular}\n")

	return bw.Flush()
}

func writeLaTeXRow(w io.Writer, values []string) {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = EscapeLaTeX(v)
	}
	fmt.Fprintf(w, "%s \\\\ \\hline\n", strings.Join(escaped, " & "))
}

var _ Encoder = (*LaTeXEncoder)(nil)
