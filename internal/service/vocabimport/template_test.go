package vocabimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTemplate_SheetAndHeaders(t *testing.T) {
	t.Parallel()

	data, err := Template()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{templateSheet}, f.GetSheetList())

	rows, err := f.GetRows(templateSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TemplateHeaders, rows[0])
}

func TestTemplate_SampleRowIsValid(t *testing.T) {
	t.Parallel()

	data, err := Template()
	require.NoError(t, err)

	rows, err := NewDecoder(0, 0).Decode(data, "", "template.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	out := Validate(rows[0].Number, Normalize(rows[0]), rows[0])
	assert.True(t, out.Valid(), out.Reasons)
	assert.Equal(t, "apple", out.Row.Word)
	require.NotNil(t, out.Row.ExampleCn)
}
