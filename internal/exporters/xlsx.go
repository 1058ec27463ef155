package exporters

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mrlokans/qawash/internal/entities"
)

// SheetName is the worksheet every snapshot is written to.
const SheetName = "Sheet1"

type XLSXEncoder struct{}

// Encode writes the table to a single-sheet workbook. Missing cells are left
// blank so they read back as missing.
func (e *XLSXEncoder) Encode(w io.Writer, t entities.Table, opts EncodeOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	rowNum := 1
	if opts.Header {
		header := make([]any, len(t.Columns))
		for i, col := range t.Columns {
			header[i] = col
		}
		if err := setRow(f, rowNum, header); err != nil {
			return err
		}
		rowNum++
	}

	for _, record := range t.Rows {
		values := make([]any, len(record.Cells))
		for i, c := range record.Cells {
			if c.Missing {
				values[i] = nil
			} else {
				values[i] = c.Value
			}
		}
		if err := setRow(f, rowNum, values); err != nil {
			return err
		}
		rowNum++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

var _ Encoder = (*XLSXEncoder)(nil)
