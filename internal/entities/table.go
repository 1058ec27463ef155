package entities

import (
	"fmt"
	"slices"
)

// Schema is decided once when a table is loaded and carried through every stage.
type Schema string

const (
	SchemaRaw    Schema = "raw"    // unprocessed 11-column export
	SchemaWashed Schema = "washed" // 18-column output of a previous pass
)

const (
	ColumnCategory   = "category"
	ColumnIsExcluded = "is_excluded"
	ColumnTitle      = "title"
	ColumnDesc       = "description"
)

// DoctorSlots is the number of doctor answer groups in every record.
const DoctorSlots = 3

// RawColumns is the positional layout of an unprocessed export.
var RawColumns = []string{
	"title", "description",
	"doc1", "info1", "ans1",
	"doc2", "info2", "ans2",
	"doc3", "info3", "ans3",
}

// StoredWashedColumns is the positional layout of a washed export read back
// from disk. The first column holds operator annotations.
var StoredWashedColumns = append([]string{ColumnIsExcluded, ColumnTitle, ColumnDesc}, doctorColumns()...)

// DecomposedColumns is the raw layout after doctor fields were split.
var DecomposedColumns = append([]string{ColumnTitle, ColumnDesc}, doctorColumns()...)

// TaggedColumns is the layout after the category tagger ran.
var TaggedColumns = append([]string{ColumnCategory, ColumnIsExcluded, ColumnTitle, ColumnDesc}, doctorColumns()...)

// WashedColumns is the canonical output layout.
var WashedColumns = append([]string{ColumnCategory, ColumnTitle, ColumnDesc}, doctorColumns()...)

func doctorColumns() []string {
	cols := make([]string, 0, DoctorSlots*5)
	for i := 1; i <= DoctorSlots; i++ {
		cols = append(cols,
			fmt.Sprintf("doc%d", i),
			fmt.Sprintf("hosp%d", i),
			fmt.Sprintf("pos%d", i),
			fmt.Sprintf("info%d", i),
			fmt.Sprintf("ans%d", i),
		)
	}
	return cols
}

// Cell is a single string-typed value. Missing distinguishes an absent
// value (empty spreadsheet cell, SQL NULL) from an empty string.
type Cell struct {
	Value   string
	Missing bool
}

// Text returns a present cell.
func Text(v string) Cell { return Cell{Value: v} }

// MissingCell returns an absent cell.
func MissingCell() Cell { return Cell{Missing: true} }

// Empty reports whether the cell carries no usable data.
func (c Cell) Empty() bool { return c.Missing || c.Value == "" }

// SyntheticIndex marks records that were not read from the source table.
const SyntheticIndex = -1

// Record is one row. Index is its position in the table as first read.
type Record struct {
	Index int
	Cells []Cell
}

func (r Record) clone() Record {
	return Record{Index: r.Index, Cells: slices.Clone(r.Cells)}
}

// Table is an ordered set of records sharing one column layout.
// Stages never mutate a table they received; they build a new one.
type Table struct {
	Name    string // source file path
	Schema  Schema
	Columns []string
	Rows    []Record
}

// NewTable builds a table from plain rows, assigning stable indices.
func NewTable(name string, columns []string, rows [][]Cell) Table {
	t := Table{Name: name, Columns: slices.Clone(columns), Rows: make([]Record, len(rows))}
	for i, cells := range rows {
		t.Rows[i] = Record{Index: i, Cells: slices.Clone(cells)}
	}
	return t
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := Table{Name: t.Name, Schema: t.Schema, Columns: slices.Clone(t.Columns), Rows: make([]Record, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = r.clone()
	}
	return out
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a named column or -1.
func (t Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// Value returns the named cell of row i.
func (t Table) Value(i int, column string) Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) || idx >= len(t.Rows[i].Cells) {
		return MissingCell()
	}
	return t.Rows[i].Cells[idx]
}

// Indices returns the original index of every row in order.
func (t Table) Indices() []int {
	out := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Index
	}
	return out
}

// Strings returns the rows as plain strings, missing cells rendered empty.
func (t Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]string, len(r.Cells))
		for j, c := range r.Cells {
			row[j] = c.Value
		}
		out[i] = row
	}
	return out
}

// Concat appends the rows of every table in order. All tables must share
// the column layout of the first one.
func Concat(name string, tables ...Table) (Table, error) {
	if len(tables) == 0 {
		return Table{Name: name}, nil
	}
	out := Table{Name: name, Schema: tables[0].Schema, Columns: slices.Clone(tables[0].Columns)}
	for _, t := range tables {
		if !slices.Equal(t.Columns, out.Columns) {
			return Table{}, fmt.Errorf("cannot concatenate %s: column layout differs", t.Name)
		}
		for _, r := range t.Rows {
			out.Rows = append(out.Rows, r.clone())
		}
	}
	for i := range out.Rows {
		out.Rows[i].Index = i
	}
	return out, nil
}
