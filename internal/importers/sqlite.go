package importers

import (
	"fmt"

	"github.com/mrlokans/qawash/internal/database"
	"github.com/mrlokans/qawash/internal/entities"
)

// DefaultSQLiteQuery selects every record of the conventional export table.
const DefaultSQLiteQuery = "SELECT * FROM records"

// SQLiteDecoder reads the result set of a query against a SQLite file.
// NULL values are missing cells.
type SQLiteDecoder struct {
	Query string
}

func NewSQLiteDecoder(query string) *SQLiteDecoder {
	if query == "" {
		query = DefaultSQLiteQuery
	}
	return &SQLiteDecoder{Query: query}
}

// Decode implements Decoder.
func (d *SQLiteDecoder) Decode(path string) (entities.Table, error) {
	db, err := database.OpenSource(path)
	if err != nil {
		return entities.Table{}, err
	}
	defer db.Close()

	columns, values, err := db.QueryStrings(d.Query)
	if err != nil {
		return entities.Table{}, fmt.Errorf("%s: %w", path, err)
	}

	rows := make([][]entities.Cell, len(values))
	for i, v := range values {
		row := make([]entities.Cell, len(v))
		for j, s := range v {
			if s.Valid {
				row[j] = entities.Text(s.String)
			} else {
				row[j] = entities.MissingCell()
			}
		}
		rows[i] = row
	}
	return entities.NewTable(path, columns, rows), nil
}

var _ Decoder = (*SQLiteDecoder)(nil)
