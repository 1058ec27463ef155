package washer

import (
	"fmt"
	"slices"

	"github.com/mrlokans/qawash/internal/entities"
)

// AttentionCheck is a synthetic question inserted at a fixed row position.
type AttentionCheck struct {
	Position int
	Answer   string
}

const (
	attentionTitle    = "注意力问题"
	attentionTemplate = "如果您看到此问题，请将所有选项（诊断评分、疾病熟悉程度）选择为%s。"
)

// DefaultTruncateLimit caps the filtered table before injection.
const DefaultTruncateLimit = 100

// DefaultAttentionChecks asks for a decreasing score at each checkpoint.
var DefaultAttentionChecks = []AttentionCheck{
	{Position: 39, Answer: "4"},
	{Position: 59, Answer: "2"},
	{Position: 79, Answer: "1"},
}

// AttentionRow builds the synthetic record for check c in the washed layout.
func AttentionRow(category string, c AttentionCheck) entities.Record {
	cells := make([]entities.Cell, len(entities.WashedColumns))
	for i := range cells {
		cells[i] = entities.Text("")
	}
	cells[0] = entities.Text(category)
	cells[1] = entities.Text(attentionTitle)
	cells[2] = entities.Text(fmt.Sprintf(attentionTemplate, c.Answer))
	return entities.Record{Index: entities.SyntheticIndex, Cells: cells}
}

// Truncate keeps at most the first limit rows. A non-positive limit keeps all.
func Truncate(t entities.Table, limit int) entities.Table {
	out := t.Clone()
	if limit > 0 && out.Len() > limit {
		out.Rows = out.Rows[:limit]
	}
	return out
}

// InjectAttentionChecks inserts each check in order, shifting later rows
// down. A position past the end of the table is an error: a short set of
// checks would silently weaken response-quality validation.
func InjectAttentionChecks(t entities.Table, category string, checks []AttentionCheck) (entities.Table, error) {
	if err := assertLayout(t, entities.WashedColumns); err != nil {
		return entities.Table{}, err
	}
	out := t.Clone()
	for _, c := range checks {
		if c.Position < 0 || c.Position > out.Len() {
			return entities.Table{}, &InjectionError{File: t.Name, Position: c.Position, Rows: out.Len()}
		}
		out.Rows = slices.Insert(out.Rows, c.Position, AttentionRow(category, c))
	}
	return out, nil
}
