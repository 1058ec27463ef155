package washer

import (
	"fmt"
	"slices"

	"github.com/mrlokans/qawash/internal/entities"
)

// DetectSchema classifies a table by its column count.
func DetectSchema(file string, columns int) (entities.Schema, error) {
	switch columns {
	case len(entities.StoredWashedColumns):
		return entities.SchemaWashed, nil
	case len(entities.RawColumns):
		return entities.SchemaRaw, nil
	default:
		return "", &SchemaMismatchError{File: file, Columns: columns}
	}
}

// Normalize detects the schema and renames columns positionally.
// Header text is ignored; only position carries meaning.
func Normalize(t entities.Table) (entities.Table, error) {
	schema, err := DetectSchema(t.Name, len(t.Columns))
	if err != nil {
		return entities.Table{}, err
	}

	layout := entities.RawColumns
	if schema == entities.SchemaWashed {
		layout = entities.StoredWashedColumns
	}

	out := t.Clone()
	out.Schema = schema
	out.Columns = slices.Clone(layout)
	for i, r := range out.Rows {
		switch {
		case len(r.Cells) > len(layout):
			return entities.Table{}, fmt.Errorf("row %d has %d cells: %w", r.Index, len(r.Cells),
				&SchemaMismatchError{File: t.Name, Columns: len(r.Cells)})
		case len(r.Cells) < len(layout):
			for len(r.Cells) < len(layout) {
				r.Cells = append(r.Cells, entities.MissingCell())
			}
			out.Rows[i] = r
		}
	}
	return out, nil
}

// assertLayout fails with ErrSchemaInvariantViolation when t does not carry exactly want.
func assertLayout(t entities.Table, want []string) error {
	if !slices.Equal(t.Columns, want) {
		return fmt.Errorf("%s: columns %v, want %v: %w", t.Name, t.Columns, want, ErrSchemaInvariantViolation)
	}
	for _, r := range t.Rows {
		if len(r.Cells) != len(want) {
			return fmt.Errorf("%s: row %d has %d cells, want %d: %w", t.Name, r.Index, len(r.Cells), len(want), ErrSchemaInvariantViolation)
		}
	}
	return nil
}
