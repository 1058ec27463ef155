package importers

import (
	"fmt"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
)

// Decoder reads one source file into a table of string cells.
// The first row of every source is a header; rows keep their source order.
//
// Implementations:
//   - XLSXDecoder (xlsx.go) - first worksheet of a workbook
//   - CSVDecoder (csv.go) - comma separated text
//   - RecordsDecoder (records.go) - JSON or YAML sequence of mappings
//   - SQLiteDecoder (sqlite.go) - result set of a query against a SQLite file
type Decoder interface {
	Decode(path string) (entities.Table, error)
}

// Options tunes decoders that need more than a path.
type Options struct {
	Sheet       string // xlsx: worksheet name, first sheet when empty
	SQLiteQuery string // sqlite: query producing the records
}

// ForFormat returns the decoder for an input format.
func ForFormat(format formats.Input, opts Options) (Decoder, error) {
	switch format {
	case formats.InputXLSX:
		return &XLSXDecoder{Sheet: opts.Sheet}, nil
	case formats.InputCSV:
		return &CSVDecoder{}, nil
	case formats.InputJSON, formats.InputYAML:
		return &RecordsDecoder{}, nil
	case formats.InputSQLite:
		return NewSQLiteDecoder(opts.SQLiteQuery), nil
	default:
		return nil, fmt.Errorf("input format %q: %w", format, formats.ErrUnsupportedFormat)
	}
}

// tableFromRows turns a header row and data rows into a table. Short rows
// are padded with missing cells. With blankIsMissing, empty strings become
// missing cells as well.
func tableFromRows(path string, header []string, rows [][]string, blankIsMissing bool) entities.Table {
	width := len(header)
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	columns := make([]string, width)
	copy(columns, header)

	cells := make([][]entities.Cell, 0, len(rows))
	for _, r := range rows {
		row := make([]entities.Cell, width)
		for i := range row {
			switch {
			case i >= len(r):
				row[i] = entities.MissingCell()
			case blankIsMissing && r[i] == "":
				row[i] = entities.MissingCell()
			default:
				row[i] = entities.Text(r[i])
			}
		}
		cells = append(cells, row)
	}
	return entities.NewTable(path, columns, cells)
}
