package washer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mrlokans/qawash/internal/entities"
)

// DefaultBoilerplate lists the literal fragments erased from every raw cell:
// control whitespace, non-breaking spaces and consultation section labels.
var DefaultBoilerplate = []string{
	"\n",
	"\t",
	"\u00a0",
	"健康咨询描述：",
	"病情分析：",
	"指导意见：",
	"处理意见：",
}

// Sanitizer erases boilerplate from cells in a single pass.
type Sanitizer struct {
	boilerplate *regexp.Regexp
}

// NewSanitizer compiles the phrases into one alternation so every phrase is
// matched against the original cell value.
func NewSanitizer(phrases []string) *Sanitizer {
	quoted := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(p))
	}
	s := &Sanitizer{}
	if len(quoted) > 0 {
		s.boilerplate = regexp.MustCompile(strings.Join(quoted, "|"))
	}
	return s
}

// Clean returns v with boilerplate erased and edges trimmed. Any Unicode
// space counts as an edge, including the ideographic space.
func (s *Sanitizer) Clean(v string) string {
	if s.boilerplate != nil {
		v = s.boilerplate.ReplaceAllString(v, "")
	}
	return strings.TrimFunc(v, unicode.IsSpace)
}

// Apply sanitizes every present cell of a raw table.
func (s *Sanitizer) Apply(t entities.Table) entities.Table {
	out := t.Clone()
	if t.Schema != entities.SchemaRaw {
		return out
	}
	for _, r := range out.Rows {
		for j, c := range r.Cells {
			if c.Missing {
				continue
			}
			r.Cells[j].Value = s.Clean(c.Value)
		}
	}
	return out
}
