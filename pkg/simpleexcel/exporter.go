package simpleexcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Constants & Types
// =============================================================================

// DataExporter is the main entry point for exporting data.
type DataExporter struct {
	// data holds data bound to section IDs declared in a YAML template
	data   map[string]interface{}
	sheets []*SheetBuilder
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a section of data in a sheet.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Locked      bool           `yaml:"locked"`
	ShowHeader  bool           `yaml:"show_header"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"` // struct field name or map key
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font   *FontTemplate `yaml:"font"`
	Fill   *FillTemplate `yaml:"fill"`
	Locked *bool         `yaml:"locked"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex
}

type FillTemplate struct {
	Color string `yaml:"color"` // hex
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data: make(map[string]interface{}),
	}
}

// NewDataExporterFromYamlConfig builds an exporter whose sheets and sections
// come from a YAML document. Section data is attached with BindSectionData.
func NewDataExporterFromYamlConfig(config string) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.Unmarshal([]byte(config), &tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	e := NewDataExporter()
	for _, st := range tmpl.Sheets {
		sb := e.AddSheet(st.Name)
		for i := range st.Sections {
			sec := st.Sections[i]
			sb.AddSection(&sec)
		}
	}
	return e, nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{name: name}
	e.sheets = append(e.sheets, sb)
	return sb
}

// BindSectionData binds data to a section ID.
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

type SheetBuilder struct {
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

// sectionData returns the data bound to the section's ID.
func (e *DataExporter) sectionData(sec *SectionConfig) interface{} {
	return e.data[sec.ID]
}

// =============================================================================
// Output
// =============================================================================

// BuildExcel renders every sheet into a new workbook. The caller closes it.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	if len(e.sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}
	f := excelize.NewFile()
	for i, sb := range e.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sb.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := e.renderSections(f, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", sb.name, err)
		}
	}
	return f, nil
}

// WriteTo writes the workbook to w.
func (e *DataExporter) WriteTo(w io.Writer) (int64, error) {
	f, err := e.BuildExcel()
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(w)
}

// ToCSV writes the first sheet as CSV. Section titles are skipped; headers
// and rows are written in section order.
func (e *DataExporter) ToCSV(w io.Writer) error {
	if len(e.sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}
	cw := csv.NewWriter(w)
	for _, sec := range e.sheets[0].sections {
		if sec.ShowHeader {
			headers := make([]string, len(sec.Columns))
			for i, col := range sec.Columns {
				headers[i] = col.Header
			}
			if err := cw.Write(headers); err != nil {
				return fmt.Errorf("error writing CSV header: %w", err)
			}
		}
		rows := reflect.ValueOf(e.sectionData(sec))
		if rows.Kind() != reflect.Slice {
			continue
		}
		for i := 0; i < rows.Len(); i++ {
			record := make([]string, len(sec.Columns))
			for j, col := range sec.Columns {
				record[j] = fmt.Sprint(extractValue(rows.Index(i), col.FieldName))
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("error writing CSV row %d: %w", i+1, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes the exporter in the given format.
func (e *DataExporter) Export(w io.Writer, format Format) error {
	if format == FormatCSV {
		return e.ToCSV(w)
	}
	_, err := e.WriteTo(w)
	return err
}

// =============================================================================
// Rendering Logic
// =============================================================================

func (e *DataExporter) renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	nextRow := 1 // sections stack vertically
	hasLockedSections := false

	for _, sec := range sections {
		if sec.Locked {
			hasLockedSections = true
		}

		startCol, currentRow := 1, nextRow

		// Unlocked cells stay editable once the sheet is protected.
		effective := func(base *StyleTemplate) *StyleTemplate {
			s := &StyleTemplate{}
			if base != nil {
				*s = *base
			}
			locked := sec.Locked
			s.Locked = &locked
			return s
		}

		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			styleID, err := createStyle(f, effective(sec.TitleStyle))
			if err != nil {
				return err
			}
			endCell := cell
			if len(sec.Columns) > 1 {
				endCell, _ = excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow)
				if err := f.MergeCell(sheet, cell, endCell); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(sheet, cell, endCell, styleID); err != nil {
				return err
			}
			currentRow++
		}

		if sec.ShowHeader {
			styleID, err := createStyle(f, effective(sec.HeaderStyle))
			if err != nil {
				return err
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(startCol+i, currentRow)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
					return err
				}
				if col.Width > 0 {
					colName, _ := excelize.ColumnNumberToName(startCol + i)
					if err := f.SetColWidth(sheet, colName, colName, col.Width); err != nil {
						return err
					}
				}
			}
			currentRow++
		}

		rows := reflect.ValueOf(e.sectionData(sec))
		if rows.Kind() == reflect.Slice && rows.Len() > 0 && len(sec.Columns) > 0 {
			dataStyle, err := createStyle(f, effective(nil))
			if err != nil {
				return err
			}
			for i := 0; i < rows.Len(); i++ {
				values := make([]interface{}, len(sec.Columns))
				for j, col := range sec.Columns {
					values[j] = extractValue(rows.Index(i), col.FieldName)
				}
				cell, _ := excelize.CoordinatesToCellName(startCol, currentRow)
				if err := f.SetSheetRow(sheet, cell, &values); err != nil {
					return fmt.Errorf("error writing row %d: %w", i+1, err)
				}
				currentRow++
			}
			first, _ := excelize.CoordinatesToCellName(startCol, currentRow-rows.Len())
			last, _ := excelize.CoordinatesToCellName(startCol+len(sec.Columns)-1, currentRow-1)
			if err := f.SetCellStyle(sheet, first, last, dataStyle); err != nil {
				return err
			}
		}

		nextRow = currentRow
	}

	// Locked=true only takes effect on a protected sheet.
	if hasLockedSections {
		return f.ProtectSheet(sheet, &excelize.SheetProtectionOptions{
			SelectLockedCells:   true,
			SelectUnlockedCells: true,
		})
	}
	return nil
}

// extractValue reads fieldName from a struct (or map) element. Nil pointers
// render as empty cells.
func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}

	var v reflect.Value
	switch item.Kind() {
	case reflect.Struct:
		v = item.FieldByName(fieldName)
	case reflect.Map:
		if item.Type().Key().Kind() != reflect.String {
			return ""
		}
		v = item.MapIndex(reflect.ValueOf(fieldName).Convert(item.Type().Key()))
	}
	if !v.IsValid() {
		return ""
	}
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return v.Interface()
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	if tmpl.Locked != nil {
		style.Protection = &excelize.Protection{
			Locked: *tmpl.Locked,
		}
	}
	return f.NewStyle(style)
}
