package importers

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mrlokans/qawash/internal/entities"
)

// XLSXDecoder reads a worksheet of an Excel workbook.
type XLSXDecoder struct {
	Sheet string
}

// Decode implements Decoder. Empty spreadsheet cells are missing values.
func (d *XLSXDecoder) Decode(path string) (entities.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return entities.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := d.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return entities.Table{}, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return entities.Table{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return entities.Table{}, fmt.Errorf("sheet %q of %s is empty", sheet, path)
	}

	return tableFromRows(path, rows[0], rows[1:], true), nil
}

var _ Decoder = (*XLSXDecoder)(nil)
