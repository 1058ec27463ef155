package importers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/qawash/internal/entities"
)

// CSVDecoder reads comma separated exports with a header row.
type CSVDecoder struct{}

// Decode implements Decoder.
func (d *CSVDecoder) Decode(path string) (entities.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return entities.Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ParseCSV(path, f)
}

// ParseCSV reads a header row followed by data rows. Empty fields are
// treated as missing, matching how spreadsheets export blank cells.
func ParseCSV(name string, r io.Reader) (entities.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return entities.Table{}, fmt.Errorf("%s: missing header row", name)
	}
	if err != nil {
		return entities.Table{}, fmt.Errorf("failed to read header: %w", err)
	}
	// Excel writes a byte order mark in front of UTF-8 CSV files
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	lineNum := 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entities.Table{}, fmt.Errorf("line %d: %w", lineNum, err)
		}
		rows = append(rows, record)
	}

	return tableFromRows(name, header, rows, true), nil
}

var _ Decoder = (*CSVDecoder)(nil)
