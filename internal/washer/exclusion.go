package washer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

// DefaultExclusionKeywords marks rows that reference images or lab results,
// plus the operator's wildcard annotation.
var DefaultExclusionKeywords = []string{"*", "图", "检查结果"}

// ExclusionReport lists the original indices removed by each pass.
type ExclusionReport struct {
	File       string          `json:"file"`
	Schema     entities.Schema `json:"schema"`
	ByKeyword  []int           `json:"by_keyword"`
	ByEmpty    []int           `json:"by_empty_cell"`
	EmptyPass  bool            `json:"empty_cell_pass"`
	RowsBefore int             `json:"rows_before"`
	Remaining  int             `json:"rows_remaining"`
}

// Total returns the number of rows removed by both passes.
func (r ExclusionReport) Total() int {
	return len(r.ByKeyword) + len(r.ByEmpty)
}

// FormatIndices renders indices as "#i" entries, ten per line.
func FormatIndices(indices []int) string {
	var b strings.Builder
	for i, idx := range indices {
		if i > 0 {
			if i%10 == 0 {
				b.WriteString(",\n")
			} else {
				b.WriteString(", ")
			}
		}
		fmt.Fprintf(&b, "#%d", idx)
	}
	return b.String()
}

// Format renders the report for manual audit.
func (r ExclusionReport) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Excluded indices (by keyword, in total of %d lines):\n", len(r.ByKeyword))
	writeIndented(&b, FormatIndices(r.ByKeyword))
	if r.EmptyPass {
		fmt.Fprintf(&b, "Excluded indices (by empty cell, in total of %d lines):\n", len(r.ByEmpty))
		writeIndented(&b, FormatIndices(r.ByEmpty))
	}
	fmt.Fprintf(&b, "Total of %d lines are excluded, %d lines are left\n", r.Total(), r.Remaining)
	return b.String()
}

func writeIndented(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	for _, line := range strings.Split(s, "\n") {
		b.WriteString("\t")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// ExclusionFilter removes rows in two passes: keyword matches, then rows
// with empty cells (raw input only).
type ExclusionFilter struct {
	Keywords []string
}

// NewExclusionFilter returns a filter for the given keywords.
func NewExclusionFilter(keywords []string) *ExclusionFilter {
	return &ExclusionFilter{Keywords: slices.Clone(keywords)}
}

// Apply runs both passes on a tagged table and drops the is_excluded
// column. The result has the canonical washed layout.
func (f *ExclusionFilter) Apply(t entities.Table) (entities.Table, ExclusionReport, error) {
	report := ExclusionReport{File: t.Name, Schema: t.Schema, RowsBefore: t.Len()}
	if err := assertLayout(t, entities.TaggedColumns); err != nil {
		return entities.Table{}, report, err
	}

	kept := make([]entities.Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		if f.matches(r) {
			report.ByKeyword = append(report.ByKeyword, r.Index)
			continue
		}
		kept = append(kept, r)
	}

	flag := t.ColumnIndex(entities.ColumnIsExcluded)
	out := entities.Table{
		Name:    t.Name,
		Schema:  t.Schema,
		Columns: slices.Clone(entities.WashedColumns),
		Rows:    make([]entities.Record, 0, len(kept)),
	}
	report.EmptyPass = t.Schema == entities.SchemaRaw
	for _, r := range kept {
		cells := make([]entities.Cell, 0, len(out.Columns))
		cells = append(cells, r.Cells[:flag]...)
		cells = append(cells, r.Cells[flag+1:]...)
		if report.EmptyPass && slices.ContainsFunc(cells, entities.Cell.Empty) {
			report.ByEmpty = append(report.ByEmpty, r.Index)
			continue
		}
		out.Rows = append(out.Rows, entities.Record{Index: r.Index, Cells: cells})
	}

	slices.Sort(report.ByKeyword)
	slices.Sort(report.ByEmpty)
	report.Remaining = out.Len()
	return out, report, nil
}

func (f *ExclusionFilter) matches(r entities.Record) bool {
	var b strings.Builder
	for _, c := range r.Cells {
		b.WriteString(c.Value)
		b.WriteByte('\t')
	}
	row := b.String()
	for _, kw := range f.Keywords {
		if kw != "" && strings.Contains(row, kw) {
			return true
		}
	}
	return false
}
