package exporters

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/qawash/internal/entities"
)

// JSONEncoder writes an array of objects whose keys follow the column order.
// Without a header every record is an array of values. Missing cells are null.
type JSONEncoder struct{}

func (e *JSONEncoder) Encode(w io.Writer, t entities.Table, opts EncodeOptions) error {
	bw := bufio.NewWriter(w)
	if len(t.Rows) == 0 {
		bw.WriteString("[]\n")
		return bw.Flush()
	}

	bw.WriteString("[\n")
	for i, record := range t.Rows {
		if opts.Header {
			bw.WriteString("  {")
		} else {
			bw.WriteString("  [")
		}
		for j, c := range record.Cells {
			if j > 0 {
				bw.WriteString(", ")
			}
			if opts.Header {
				key, err := json.Marshal(columnName(t, j))
				if err != nil {
					return err
				}
				bw.Write(key)
				bw.WriteString(": ")
			}
			if err := writeJSONCell(bw, c); err != nil {
				return err
			}
		}
		if opts.Header {
			bw.WriteString("}")
		} else {
			bw.WriteString("]")
		}
		if i < len(t.Rows)-1 {
			bw.WriteString(",")
		}
		bw.WriteString("\n")
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

func writeJSONCell(w *bufio.Writer, c entities.Cell) error {
	if c.Missing {
		_, err := w.WriteString("null")
		return err
	}
	value, err := json.Marshal(c.Value)
	if err != nil {
		return err
	}
	_, err = w.Write(value)
	return err
}

// YAMLEncoder writes a sequence of mappings, or a sequence of sequences
// without a header. Every value is tagged as a string so answers like "4"
// keep their type on the way back in.
type YAMLEncoder struct{}

func (e *YAMLEncoder) Encode(w io.Writer, t entities.Table, opts EncodeOptions) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, record := range t.Rows {
		item := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if opts.Header {
			item = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		for j, c := range record.Cells {
			if opts.Header {
				item.Content = append(item.Content, stringNode(columnName(t, j)))
			}
			item.Content = append(item.Content, cellNode(c))
		}
		doc.Content = append(doc.Content, item)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func stringNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func cellNode(c entities.Cell) *yaml.Node {
	if c.Missing {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	return stringNode(c.Value)
}

// columnName returns the name of column j, falling back to its position.
func columnName(t entities.Table, j int) string {
	if j < len(t.Columns) && t.Columns[j] != "" {
		return t.Columns[j]
	}
	return "col" + strconv.Itoa(j+1)
}

var (
	_ Encoder = (*JSONEncoder)(nil)
	_ Encoder = (*YAMLEncoder)(nil)
)
