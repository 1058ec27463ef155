package exporters

import (
	"encoding/csv"
	"io"

	"github.com/mrlokans/qawash/internal/entities"
)

type CSVEncoder struct{}

func (e *CSVEncoder) Encode(w io.Writer, t entities.Table, opts EncodeOptions) error {
	writer := csv.NewWriter(w)
	if opts.Header {
		if err := writer.Write(t.Columns); err != nil {
			return err
		}
	}
	if err := writer.WriteAll(t.Strings()); err != nil {
		return err
	}
	return writer.Error()
}

var _ Encoder = (*CSVEncoder)(nil)
