package washer

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

// CategoryFromPath derives the category tag from a file's base name with
// whitespace runs collapsed to underscores.
func CategoryFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Join(strings.Fields(base), "_")
}

// Tag prepends the category column, and for raw input an empty is_excluded
// column. The category is always recomputed from sourcePath, never read
// from stored data.
func Tag(t entities.Table, sourcePath string) (entities.Table, error) {
	category := entities.Text(CategoryFromPath(sourcePath))

	var prefix []entities.Cell
	switch t.Schema {
	case entities.SchemaRaw:
		if err := assertLayout(t, entities.DecomposedColumns); err != nil {
			return entities.Table{}, err
		}
		prefix = []entities.Cell{category, entities.Text("")}
	case entities.SchemaWashed:
		if err := assertLayout(t, entities.StoredWashedColumns); err != nil {
			return entities.Table{}, err
		}
		prefix = []entities.Cell{category}
	default:
		return entities.Table{}, &SchemaMismatchError{File: t.Name, Columns: len(t.Columns)}
	}

	out := entities.Table{
		Name:    t.Name,
		Schema:  t.Schema,
		Columns: slices.Clone(entities.TaggedColumns),
		Rows:    make([]entities.Record, len(t.Rows)),
	}
	for i, r := range t.Rows {
		cells := make([]entities.Cell, 0, len(out.Columns))
		cells = append(cells, prefix...)
		cells = append(cells, r.Cells...)
		out.Rows[i] = entities.Record{Index: r.Index, Cells: cells}
	}

	if err := assertLayout(out, entities.TaggedColumns); err != nil {
		return entities.Table{}, err
	}
	return out, nil
}
