package importers

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/qawash/internal/entities"
	"github.com/mrlokans/qawash/internal/formats"
)

func TestParseCSV(t *testing.T) {
	input := "\ufefftitle,description,doc1\n" +
		"Cough,\"lasting, two weeks\",Dr.Li CityHospital Cardiology\n" +
		"Fever,,\n" +
		"Rash\n"

	table, err := ParseCSV("sample.csv", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"title", "description", "doc1"}, table.Columns)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "lasting, two weeks", table.Value(0, "description").Value)
	assert.True(t, table.Value(1, "description").Missing)
	assert.True(t, table.Value(2, "doc1").Missing, "short rows are padded")
	assert.Equal(t, []int{0, 1, 2}, table.Indices())
}

func TestParseCSV_MissingHeader(t *testing.T) {
	_, err := ParseCSV("empty.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseRecords_JSONObjects(t *testing.T) {
	input := `[
		{"title": "Cough", "description": "dry", "ans1": null},
		{"description": "wet", "title": "Cough", "extra": 3}
	]`

	table, err := ParseRecords("sample.json", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"title", "description", "ans1", "extra"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.True(t, table.Value(0, "ans1").Missing)
	assert.True(t, table.Value(0, "extra").Missing)
	assert.Equal(t, "wet", table.Value(1, "description").Value)
	assert.True(t, table.Value(1, "ans1").Missing)
	assert.Equal(t, "3", table.Value(1, "extra").Value)
}

func TestParseRecords_YAMLRowLists(t *testing.T) {
	input := `
- [title, description, doc1]
- [Cough, dry, ~]
- [Fever]
`

	table, err := ParseRecords("sample.yaml", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"title", "description", "doc1"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.True(t, table.Value(0, "doc1").Missing)
	assert.Equal(t, "Fever", table.Value(1, "title").Value)
	assert.True(t, table.Value(1, "description").Missing)
}

func TestParseRecords_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty document", ""},
		{"not a list", "title: Cough"},
		{"nested value", `[{"title": {"text": "Cough"}}]`},
		{"mixed shapes", `[{"title": "Cough"}, ["Fever"]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecords("bad.yaml", strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestXLSXDecoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asthma.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"title", "description", "doc1"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Wheezing", "", "Dr.Li CityHospital Cardiology"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Short breath"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	dec, err := ForFormat(formats.InputXLSX, Options{})
	require.NoError(t, err)

	table, err := dec.Decode(path)

	require.NoError(t, err)
	assert.Equal(t, path, table.Name)
	assert.Equal(t, []string{"title", "description", "doc1"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.True(t, table.Value(0, "description").Missing)
	assert.Equal(t, "Dr.Li CityHospital Cardiology", table.Value(0, "doc1").Value)
	assert.True(t, table.Value(1, "doc1").Missing)
}

func TestXLSXDecoder_UnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asthma.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"title"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := (&XLSXDecoder{Sheet: "Answers"}).Decode(path)
	assert.Error(t, err)
}

func TestSQLiteDecoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asthma.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE records (title TEXT, description TEXT, rank INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO records VALUES (?, ?, ?)", "Wheezing", "at night", 1).Error)
	require.NoError(t, db.Exec("INSERT INTO records VALUES (?, NULL, ?)", "Short breath", 2).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	table, err := NewSQLiteDecoder("").Decode(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"title", "description", "rank"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "at night", table.Value(0, "description").Value)
	assert.Equal(t, "1", table.Value(0, "rank").Value)
	assert.True(t, table.Value(1, "description").Missing)

	table, err = NewSQLiteDecoder("SELECT title FROM records WHERE rank > 1").Decode(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, entities.Text("Short breath"), table.Rows[0].Cells[0])
}

func TestSQLiteDecoder_MissingFile(t *testing.T) {
	_, err := NewSQLiteDecoder("").Decode(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	for _, name := range formats.InputNames() {
		in, err := formats.ParseInput(name)
		require.NoError(t, err)
		dec, err := ForFormat(in, Options{})
		require.NoError(t, err, name)
		assert.NotNil(t, dec)
	}

	_, err := ForFormat(formats.Input("ods"), Options{})
	assert.ErrorIs(t, err, formats.ErrUnsupportedFormat)
}
