package washer

import (
	"fmt"

	"github.com/mrlokans/qawash/internal/entities"
)

func texts(values ...string) []entities.Cell {
	cells := make([]entities.Cell, len(values))
	for i, v := range values {
		cells[i] = entities.Text(v)
	}
	return cells
}

// rawRow returns a complete raw row whose fields are tagged with n.
func rawRow(n int) []entities.Cell {
	return texts(
		fmt.Sprintf("title %d", n), fmt.Sprintf("description %d", n),
		"Dr.Li CityHospital Cardiology", "info a", "answer a",
		"Dr.Wang People's Respiratory", "info b", "answer b",
		"Dr.Zhao Union Pediatrics", "info c", "answer c",
	)
}

func rawTable(name string, rows int) entities.Table {
	cells := make([][]entities.Cell, rows)
	for i := range cells {
		cells[i] = rawRow(i)
	}
	header := make([]string, len(entities.RawColumns))
	for i := range header {
		header[i] = fmt.Sprintf("Unnamed: %d", i)
	}
	return entities.NewTable(name, header, cells)
}

// washedTable builds n rows shaped like a previous FINAL export.
func washedTable(name string, rows int) entities.Table {
	cells := make([][]entities.Cell, rows)
	for i := range cells {
		row := texts("old_category", fmt.Sprintf("title %d", i), fmt.Sprintf("description %d", i))
		for slot := 1; slot <= entities.DoctorSlots; slot++ {
			row = append(row, texts("Dr.Li", "CityHospital", "Cardiology", "info", "answer")...)
		}
		cells[i] = row
	}
	return entities.NewTable(name, entities.WashedColumns, cells)
}

type recordingSink struct {
	suffixes []entities.Suffix
	tables   []entities.Table
	err      error
}

func (s *recordingSink) Write(t entities.Table, suffix entities.Suffix) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	s.suffixes = append(s.suffixes, suffix)
	s.tables = append(s.tables, t)
	return string(suffix), true, nil
}
