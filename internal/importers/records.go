package importers

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/qawash/internal/entities"
)

// RecordsDecoder reads structured record files. JSON is parsed by the YAML
// decoder as well, which keeps mapping keys in document order.
//
// Two shapes are accepted: a sequence of mappings (keys are columns, in
// first-seen order) or a sequence of sequences whose first entry is the header.
type RecordsDecoder struct{}

// Decode implements Decoder.
func (d *RecordsDecoder) Decode(path string) (entities.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return entities.Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ParseRecords(path, f)
}

// ParseRecords decodes a JSON or YAML document into a table.
func ParseRecords(name string, r io.Reader) (entities.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return entities.Table{}, fmt.Errorf("%s: empty document", name)
		}
		return entities.Table{}, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return entities.Table{}, fmt.Errorf("%s: expected a list of records at line %d", name, root.Line)
	}
	if len(root.Content) == 0 {
		return entities.NewTable(name, nil, nil), nil
	}

	if root.Content[0].Kind == yaml.SequenceNode {
		return parseRowLists(name, root.Content)
	}
	return parseMappings(name, root.Content)
}

func parseMappings(name string, items []*yaml.Node) (entities.Table, error) {
	var columns []string
	position := make(map[string]int)
	records := make([]map[string]entities.Cell, 0, len(items))

	for _, item := range items {
		if item.Kind != yaml.MappingNode {
			return entities.Table{}, fmt.Errorf("%s: line %d: expected a mapping", name, item.Line)
		}
		record := make(map[string]entities.Cell, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key := item.Content[i].Value
			cell, err := scalarCell(name, item.Content[i+1])
			if err != nil {
				return entities.Table{}, err
			}
			if _, seen := position[key]; !seen {
				position[key] = len(columns)
				columns = append(columns, key)
			}
			record[key] = cell
		}
		records = append(records, record)
	}

	rows := make([][]entities.Cell, len(records))
	for i, record := range records {
		row := make([]entities.Cell, len(columns))
		for j, col := range columns {
			cell, ok := record[col]
			if !ok {
				cell = entities.MissingCell()
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return entities.NewTable(name, columns, rows), nil
}

func parseRowLists(name string, items []*yaml.Node) (entities.Table, error) {
	var header []string
	rows := make([][]entities.Cell, 0, len(items)-1)
	for n, item := range items {
		if item.Kind != yaml.SequenceNode {
			return entities.Table{}, fmt.Errorf("%s: line %d: expected a list of values", name, item.Line)
		}
		row := make([]entities.Cell, 0, len(item.Content))
		for _, v := range item.Content {
			cell, err := scalarCell(name, v)
			if err != nil {
				return entities.Table{}, err
			}
			row = append(row, cell)
		}
		if n == 0 {
			for _, c := range row {
				header = append(header, c.Value)
			}
			continue
		}
		rows = append(rows, row)
	}

	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, entities.MissingCell())
		}
		rows[i] = row
	}
	return entities.NewTable(name, header, rows), nil
}

func scalarCell(name string, n *yaml.Node) (entities.Cell, error) {
	if n.Kind != yaml.ScalarNode {
		return entities.Cell{}, fmt.Errorf("%s: line %d: nested values are not supported", name, n.Line)
	}
	if n.ShortTag() == "!!null" {
		return entities.MissingCell(), nil
	}
	return entities.Text(n.Value), nil
}

var _ Decoder = (*RecordsDecoder)(nil)
