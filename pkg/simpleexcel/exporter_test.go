package simpleexcel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type person struct {
	ID    int
	Name  string
	Email *string
}

func strPtr(s string) *string { return &s }

const personTemplate = `
sheets:
  - name: "People"
    sections:
      - id: "people"
        title: "Directory"
        show_header: true
        columns:
          - field_name: "ID"
            header: "ID"
          - field_name: "Name"
            header: "Name"
            width: 30
          - field_name: "Email"
            header: "Email"
`

func TestDataExporter_YamlTemplate(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(personTemplate)
	require.NoError(t, err)

	exporter.BindSectionData("people", []person{
		{ID: 1, Name: "Alice", Email: strPtr("alice@example.com")},
		{ID: 2, Name: "Bob"},
	})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("People", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Directory", cell("A1"))
	assert.Equal(t, "Name", cell("B2"))
	assert.Equal(t, "1", cell("A3"))
	assert.Equal(t, "alice@example.com", cell("C3"))
	assert.Equal(t, "Bob", cell("B4"))
	assert.Equal(t, "", cell("C4"))
}

const stackedTemplate = `
sheets:
  - name: "Summary"
    sections:
      - id: "people"
        title: "Directory"
        show_header: true
        columns:
          - field_name: "ID"
            header: "ID"
      - id: "notes"
        title: "Notes"
        locked: true
        columns:
          - field_name: "Col"
            header: "Column A"
  - name: "Raw"
    sections:
      - id: "raw"
        columns:
          - field_name: "Name"
            header: "Name"
`

func TestDataExporter_SectionsStackAcrossSheets(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(stackedTemplate)
	require.NoError(t, err)
	exporter.BindSectionData("people", []person{{ID: 1}, {ID: 2}})
	exporter.BindSectionData("notes", []map[string]interface{}{{"Col": "Value A"}})
	exporter.BindSectionData("raw", []person{{Name: "Grace"}})

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Raw"}, f.GetSheetList())
	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}
	// Directory occupies rows 1-4; the notes section follows it.
	assert.Equal(t, "2", cell("Summary", "A4"))
	assert.Equal(t, "Notes", cell("Summary", "A5"))
	assert.Equal(t, "Value A", cell("Summary", "A6"))
	assert.Equal(t, "Grace", cell("Raw", "A1"))
}

func TestDataExporter_ToCSV(t *testing.T) {
	exporter, err := NewDataExporterFromYamlConfig(personTemplate)
	require.NoError(t, err)
	exporter.BindSectionData("people", []*person{
		{ID: 1, Name: "Alice", Email: strPtr("alice@example.com")},
		{ID: 2, Name: "Bob, Jr."},
	})

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, FormatCSV))

	assert.Equal(t, "ID,Name,Email\n1,Alice,alice@example.com\n2,\"Bob, Jr.\",\n", buf.String())
}

func TestDataExporter_NoSheets(t *testing.T) {
	assert.Error(t, NewDataExporter().Export(&bytes.Buffer{}, FormatXLSX))
	assert.Error(t, NewDataExporter().ToCSV(&bytes.Buffer{}))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "text/csv", f.ContentType())
	assert.Equal(t, "employees.csv", f.Filename("employees"))

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
