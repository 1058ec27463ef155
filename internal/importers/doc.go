// Package importers decodes source files into tables.
//
// Every supported input format has a Decoder. A decoder only turns bytes
// into a header plus rows of string cells; it never interprets columns.
// Schema detection and normalization happen in the washer.
//
//	source file → Decoder → entities.Table → washer.Pipeline
//
// Blank spreadsheet cells, empty CSV fields, JSON/YAML nulls and SQL NULLs
// all become missing cells, which the empty-cell filter treats alike.
//
// # Example Usage
//
//	dec, err := importers.ForFormat(formats.InputXLSX, importers.Options{})
//	if err != nil {
//		return err
//	}
//	table, err := dec.Decode("asthma.xlsx")
package importers
