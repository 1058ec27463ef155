package washer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qawash/internal/entities"
)

func TestCategoryFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "asthma.xlsx", expected: "asthma"},
		{path: "/data/chronic  cough.xlsx", expected: "chronic_cough"},
		{path: "儿童 哮喘.csv", expected: "儿童_哮喘"},
		{path: " padded name .xlsx", expected: "padded_name"},
		{path: "noext", expected: "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryFromPath(tt.path))
		})
	}
}

func TestTag_Raw(t *testing.T) {
	in, err := Normalize(rawTable("chronic cough.xlsx", 2))
	require.NoError(t, err)
	in, err = Decompose(in)
	require.NoError(t, err)

	out, err := Tag(in, "chronic cough.xlsx")

	require.NoError(t, err)
	assert.Equal(t, entities.TaggedColumns, out.Columns)
	for i := range out.Rows {
		assert.Equal(t, "chronic_cough", out.Value(i, entities.ColumnCategory).Value)
		assert.Equal(t, entities.Text(""), out.Value(i, entities.ColumnIsExcluded))
	}
	assert.Equal(t, "title 1", out.Value(1, "title").Value)
}

func TestTag_WashedRecomputesCategory(t *testing.T) {
	in, err := Normalize(washedTable("renamed.xlsx", 1))
	require.NoError(t, err)

	out, err := Tag(in, "renamed.xlsx")

	require.NoError(t, err)
	assert.Equal(t, entities.TaggedColumns, out.Columns)
	assert.Equal(t, "renamed", out.Value(0, entities.ColumnCategory).Value)
	// the stored first column is read back as the annotation column
	assert.Equal(t, "old_category", out.Value(0, entities.ColumnIsExcluded).Value)
}

func TestTag_InvariantViolation(t *testing.T) {
	in, err := Normalize(rawTable("a.xlsx", 1))
	require.NoError(t, err)

	// not decomposed, so the layout is still the 11-column raw one
	_, err = Tag(in, "a.xlsx")

	assert.ErrorIs(t, err, ErrSchemaInvariantViolation)
}
