package exporters

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
	"github.com/mrlokans/qawash/internal/importers"
	"github.com/mrlokans/qawash/internal/washer"
)

var _ washer.Sink = (*SnapshotWriter)(nil)

func sampleTable(name string) entities.Table {
	return entities.NewTable(name,
		[]string{"category", "title", "answer"},
		[][]entities.Cell{
			{entities.Text("asthma"), entities.Text("Wheezing | night"), entities.Text("4")},
			{entities.Text("asthma"), entities.Text("50% better_now"), entities.MissingCell()},
		},
	)
}

func encode(t *testing.T, enc Encoder, table entities.Table, header bool) string {
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, table, EncodeOptions{Header: header}))
	return buf.String()
}

func TestCSVEncoder(t *testing.T) {
	out := encode(t, &CSVEncoder{}, sampleTable("asthma.xlsx"), true)
	assert.Equal(t, "category,title,answer\nasthma,Wheezing | night,4\nasthma,50% better_now,\n", out)

	out = encode(t, &CSVEncoder{}, sampleTable("asthma.xlsx"), false)
	assert.Equal(t, "asthma,Wheezing | night,4\nasthma,50% better_now,\n", out)
}

func TestJSONEncoder(t *testing.T) {
	out := encode(t, &JSONEncoder{}, sampleTable("asthma.xlsx"), true)
	assert.Equal(t, `[
  {"category": "asthma", "title": "Wheezing | night", "answer": "4"},
  {"category": "asthma", "title": "50% better_now", "answer": null}
]
`, out)

	out = encode(t, &JSONEncoder{}, sampleTable("asthma.xlsx"), false)
	assert.Contains(t, out, `["asthma", "Wheezing | night", "4"]`)

	out = encode(t, &JSONEncoder{}, entities.NewTable("empty", []string{"a"}, nil), true)
	assert.Equal(t, "[]\n", out)
}

func TestJSONEncoder_ReadsBack(t *testing.T) {
	out := encode(t, &JSONEncoder{}, sampleTable("asthma.xlsx"), true)

	table, err := importers.ParseRecords("asthma.json", strings.NewReader(out))

	require.NoError(t, err)
	assert.Equal(t, []string{"category", "title", "answer"}, table.Columns)
	assert.Equal(t, "4", table.Value(0, "answer").Value)
	assert.True(t, table.Value(1, "answer").Missing)
}

func TestYAMLEncoder_ReadsBack(t *testing.T) {
	out := encode(t, &YAMLEncoder{}, sampleTable("asthma.xlsx"), true)
	assert.Contains(t, out, `answer: "4"`)

	table, err := importers.ParseRecords("asthma.yaml", strings.NewReader(out))

	require.NoError(t, err)
	assert.Equal(t, []string{"category", "title", "answer"}, table.Columns)
	assert.Equal(t, "Wheezing | night", table.Value(0, "title").Value)
	assert.True(t, table.Value(1, "answer").Missing)
}

func TestLaTeXEncoder(t *testing.T) {
	out := encode(t, &LaTeXEncoder{}, sampleTable("asthma.xlsx"), true)

	assert.True(t, strings.HasPrefix(out, "\\begin{tabular}{|l|l|l|}\n\\hline\n"))
	assert.Contains(t, out, "category & title & answer \\\\ \\hline\n")
	assert.Contains(t, out, "asthma & 50\\% better\\_now &  \\\\ \\hline\n")
	assert.True(t, strings.HasSuffix(out, "\\end{tabular}\n"))
}

func TestEscapeLaTeX(t *testing.T) {
	assert.Equal(t, `\textbackslash{}\&\#\{\}\textasciitilde{}`, EscapeLaTeX(`\&#{}~`))
	assert.Equal(t, "line one line two", EscapeLaTeX("line one\nline two"))
}

func TestMarkdownEncoder(t *testing.T) {
	out := encode(t, &MarkdownEncoder{}, sampleTable("asthma.xlsx"), true)
	assert.Equal(t, "| category | title | answer |\n"+
		"| --- | --- | --- |\n"+
		"| asthma | Wheezing \\| night | 4 |\n"+
		"| asthma | 50% better_now |  |\n", out)

	out = encode(t, &MarkdownEncoder{}, sampleTable("asthma.xlsx"), false)
	assert.True(t, strings.HasPrefix(out, "|  |  |  |\n| --- | --- | --- |\n"))
}

func TestXLSXEncoder_ReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asthma_FINAL[gen].xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, (&XLSXEncoder{}).Encode(f, sampleTable("asthma.xlsx"), EncodeOptions{Header: true}))
	require.NoError(t, f.Close())

	book, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows(SheetName)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"category", "title", "answer"}, rows[0])
	assert.Equal(t, "4", rows[1][2])
	assert.Equal(t, "50% better_now", rows[2][1])
}

func TestForFormat(t *testing.T) {
	for _, name := range formats.OutputNames() {
		out, err := formats.ParseOutput(name)
		require.NoError(t, err)
		enc, err := ForFormat(out)
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}

	_, err := ForFormat(formats.Output("pdf"))
	assert.ErrorIs(t, err, formats.ErrUnsupportedFormat)
}

func TestNewSnapshotWriter_RejectsUnknownFormat(t *testing.T) {
	w, err := NewSnapshotWriter(formats.Output("docx"), SnapshotOptions{})
	assert.Nil(t, w)
	assert.ErrorIs(t, err, formats.ErrUnsupportedFormat)
}

func TestSnapshotWriter_Write(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "asthma.xlsx")

	w, err := NewSnapshotWriter(formats.OutputCSV, SnapshotOptions{})
	require.NoError(t, err)

	path, written, err := w.Write(sampleTable(source), entities.SuffixExcluded)

	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, filepath.Join(dir, "asthma_excluded[gen].csv"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "category,title,answer\n"))
}

func TestSnapshotWriter_OutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "washed")

	w, err := NewSnapshotWriter(formats.OutputMarkdown, SnapshotOptions{OutputDir: out})
	require.NoError(t, err)

	path, written, err := w.Write(sampleTable("/data/asthma.xlsx"), entities.SuffixFinal)

	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, filepath.Join(out, "asthma_FINAL[gen].md"), path)
	assert.FileExists(t, path)
}

func TestSnapshotWriter_Suppression(t *testing.T) {
	tests := []struct {
		name    string
		opts    SnapshotOptions
		written map[entities.Suffix]bool
	}{
		{
			name: "all snapshots by default",
			opts: SnapshotOptions{},
			written: map[entities.Suffix]bool{
				entities.SuffixReplaced: true, entities.SuffixExcluded: true,
				entities.SuffixTop: true, entities.SuffixFinal: true, entities.SuffixFake: true,
			},
		},
		{
			name: "finalize keeps only final snapshots",
			opts: SnapshotOptions{Finalize: true},
			written: map[entities.Suffix]bool{
				entities.SuffixReplaced: false, entities.SuffixExcluded: false,
				entities.SuffixTop: false, entities.SuffixFinal: true, entities.SuffixFake: true,
			},
		},
		{
			name: "single file suppresses everything",
			opts: SnapshotOptions{SingleFile: true, Finalize: true},
			written: map[entities.Suffix]bool{
				entities.SuffixReplaced: false, entities.SuffixExcluded: false,
				entities.SuffixTop: false, entities.SuffixFinal: false, entities.SuffixFake: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w, err := NewSnapshotWriter(formats.OutputCSV, tt.opts)
			require.NoError(t, err)

			for suffix, want := range tt.written {
				path, written, err := w.Write(sampleTable(filepath.Join(dir, "asthma.xlsx")), suffix)
				require.NoError(t, err)
				assert.Equal(t, want, written, suffix)
				if want {
					assert.FileExists(t, path)
				} else {
					assert.Empty(t, path)
				}
			}
		})
	}
}

func TestSnapshotWriter_WriteAggregate(t *testing.T) {
	dir := t.TempDir()

	w, err := NewSnapshotWriter(formats.OutputCSV, SnapshotOptions{SingleFile: true})
	require.NoError(t, err)

	path, err := w.WriteAggregate(sampleTable("all"), "final", dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "final[gen].csv"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "asthma,Wheezing | night,4\nasthma,50% better_now,\n", string(content))
}
