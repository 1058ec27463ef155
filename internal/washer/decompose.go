package washer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

// SplitDoctor splits a compound "name hospital position" field on its first
// two spaces. Missing parts are empty; further spaces stay in the position.
func SplitDoctor(v string) (name, hospital, position string) {
	parts := strings.SplitN(v, " ", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// Decompose expands doc1..doc3 of a raw table into name, hospital and
// position columns. Washed tables already carry those and are returned as is.
func Decompose(t entities.Table) (entities.Table, error) {
	if t.Schema != entities.SchemaRaw {
		return t.Clone(), nil
	}
	if err := assertLayout(t, entities.RawColumns); err != nil {
		return entities.Table{}, err
	}

	src := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		src[c] = i
	}

	out := entities.Table{
		Name:    t.Name,
		Schema:  t.Schema,
		Columns: slices.Clone(entities.DecomposedColumns),
		Rows:    make([]entities.Record, len(t.Rows)),
	}
	for i, r := range t.Rows {
		cells := make([]entities.Cell, 0, len(out.Columns))
		cells = append(cells, r.Cells[src[entities.ColumnTitle]], r.Cells[src[entities.ColumnDesc]])
		for slot := 1; slot <= entities.DoctorSlots; slot++ {
			doc := r.Cells[src[fmt.Sprintf("doc%d", slot)]]
			if doc.Missing {
				cells = append(cells, doc, entities.MissingCell(), entities.MissingCell())
			} else {
				name, hosp, pos := SplitDoctor(doc.Value)
				cells = append(cells, entities.Text(name), entities.Text(hosp), entities.Text(pos))
			}
			cells = append(cells,
				r.Cells[src[fmt.Sprintf("info%d", slot)]],
				r.Cells[src[fmt.Sprintf("ans%d", slot)]],
			)
		}
		out.Rows[i] = entities.Record{Index: r.Index, Cells: cells}
	}
	return out, nil
}
