// Package legacy bridges the old JSON schema API onto the template
// engine. Old-style schemas carry headers and positional row data in a
// single document; the bridge converts them to a template plus data and
// renders through the regular engine.
package legacy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-sheet/sheet"
)

// Schema is the old-style spreadsheet description.
type Schema struct {
	Filename string        `json:"filename,omitempty"`
	Sheets   []SheetSchema `json:"sheets"`
}

// SheetSchema is one sheet in an old-style schema.
type SheetSchema struct {
	Name        string        `json:"name"`
	Tables      []TableSchema `json:"tables"`
	FreezePanes *FreezeSchema `json:"freeze_panes,omitempty"`
}

// TableSchema is one table in an old-style schema. Data rows are
// positional and map onto columns by index.
type TableSchema struct {
	Title   string         `json:"title,omitempty"`
	Headers []HeaderSchema `json:"headers"`
	Data    [][]any        `json:"data"`
}

// HeaderSchema is a column header: either a bare string or an object
// with a text and an optional style.
type HeaderSchema struct {
	Text  string
	Style *StyleSchema
}

func (h *HeaderSchema) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		h.Text = text
		return nil
	}

	var obj struct {
		Text  string       `json:"text"`
		Style *StyleSchema `json:"style"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	h.Text = obj.Text
	h.Style = obj.Style
	return nil
}

// StyleSchema is the old-style flat style dictionary.
type StyleSchema struct {
	Bold                bool    `json:"bold,omitempty"`
	Italic              bool    `json:"italic,omitempty"`
	FontSize            float64 `json:"font_size,omitempty"`
	FontColor           string  `json:"font_color,omitempty"`
	BackgroundColor     string  `json:"background_color,omitempty"`
	HorizontalAlignment string  `json:"horizontal_alignment,omitempty"`
	VerticalAlignment   string  `json:"vertical_alignment,omitempty"`
}

// FreezeSchema accepts either an A1 cell reference ("A2") or an object
// with frozen row and column counts ({"rows": 1, "columns": 0}).
type FreezeSchema struct {
	Position sheet.Position
}

func (f *FreezeSchema) UnmarshalJSON(b []byte) error {
	var ref string
	if err := json.Unmarshal(b, &ref); err == nil {
		pos, err := sheet.ParseA1(ref)
		if err != nil {
			return err
		}
		f.Position = pos
		return nil
	}

	var obj struct {
		Rows    int `json:"rows"`
		Columns int `json:"columns"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	f.Position = sheet.Position{Row: obj.Rows + 1, Col: obj.Columns + 1}
	return nil
}

// ParseSchema decodes an old-style JSON schema.
func ParseSchema(b []byte) (Schema, error) {
	var schema Schema
	if err := json.Unmarshal(b, &schema); err != nil {
		return Schema{}, sheet.NewError(sheet.KindValidation, "parse legacy schema", err)
	}
	return schema, nil
}

// Builder renders an old-style schema through the template engine.
type Builder struct {
	template *sheet.SpreadsheetTemplate
	data     *sheet.SpreadsheetData
	engine   *sheet.Engine
}

// NewBuilder converts an old-style schema. The conversion maps each
// positional data row onto generated column keys (col_0, col_1, ...).
func NewBuilder(schema Schema) (*Builder, error) {
	template, data, err := Convert(schema)
	if err != nil {
		return nil, err
	}
	return &Builder{template: template, data: data, engine: sheet.NewEngine()}, nil
}

// Template returns the converted template.
func (b *Builder) Template() *sheet.SpreadsheetTemplate {
	return b.template
}

// Data returns the converted data.
func (b *Builder) Data() *sheet.SpreadsheetData {
	return b.data
}

// Bytes renders the schema in the given format.
func (b *Builder) Bytes(ctx context.Context, format sheet.Format) ([]byte, error) {
	return b.engine.Render(ctx, b.template, b.data, sheet.RenderOptions{Format: format})
}

// Save renders the schema to a file, inferring the format from the
// extension.
func (b *Builder) Save(ctx context.Context, path string) error {
	return b.engine.RenderFile(ctx, b.template, b.data, path, sheet.RenderOptions{})
}

// Convert translates an old-style schema into a template and data pair
// for the regular engine API.
func Convert(schema Schema) (*sheet.SpreadsheetTemplate, *sheet.SpreadsheetData, error) {
	template := &sheet.SpreadsheetTemplate{}
	data := sheet.NewSpreadsheetData()

	for _, sheetSchema := range schema.Sheets {
		sheetTpl, sheetData, err := convertSheet(sheetSchema)
		if err != nil {
			return nil, nil, err
		}
		template.Sheets = append(template.Sheets, sheetTpl)
		data.AddSheet(sheetSchema.Name, sheetData)
	}

	if err := template.Validate(); err != nil {
		return nil, nil, err
	}
	return template, data, nil
}

func convertSheet(schema SheetSchema) (*sheet.SheetTemplate, *sheet.SheetData, error) {
	tpl := &sheet.SheetTemplate{Name: schema.Name}
	if schema.FreezePanes != nil {
		pos := schema.FreezePanes.Position
		tpl.FreezePanes = &pos
	}

	sheetData := sheet.NewSheetData()
	for i, tableSchema := range schema.Tables {
		name := fmt.Sprintf("table_%d", i)
		tableTpl, tableData := convertTable(name, tableSchema)
		tpl.Tables = append(tpl.Tables, tableTpl)
		sheetData.AddTable(name, tableData)
	}
	return tpl, sheetData, nil
}

func convertTable(name string, schema TableSchema) (*sheet.TableTemplate, *sheet.TableData) {
	tpl := &sheet.TableTemplate{Name: name, Title: schema.Title}
	for idx, header := range schema.Headers {
		label := header.Text
		if label == "" {
			label = fmt.Sprintf("Column %d", idx)
		}
		tpl.Columns = append(tpl.Columns, sheet.ColumnDefinition{
			Key:         columnKey(idx),
			Label:       label,
			HeaderStyle: header.Style.toCellStyle(),
		})
	}

	tableData := sheet.NewTableData()
	for _, row := range schema.Data {
		converted := make(sheet.Row, len(row))
		for idx, value := range row {
			converted[columnKey(idx)] = sheet.ValueOf(value)
		}
		tableData.AddRow(converted)
	}
	return tpl, tableData
}

func columnKey(idx int) string {
	return fmt.Sprintf("col_%d", idx)
}

func (s *StyleSchema) toCellStyle() *sheet.CellStyle {
	if s == nil {
		return nil
	}

	style := &sheet.CellStyle{}
	if s.Bold || s.Italic || s.FontSize > 0 || s.FontColor != "" {
		style.Font = &sheet.Font{
			Bold:   s.Bold,
			Italic: s.Italic,
			Size:   s.FontSize,
			Color:  sheet.Color(s.FontColor),
		}
	}
	if s.BackgroundColor != "" {
		style.Fill = sheet.SolidFill(sheet.Color(s.BackgroundColor))
	}
	if s.HorizontalAlignment != "" || s.VerticalAlignment != "" {
		style.Alignment = &sheet.Alignment{
			Horizontal: sheet.HorizontalAlignment(s.HorizontalAlignment),
			Vertical:   sheet.VerticalAlignment(s.VerticalAlignment),
		}
	}
	if style.Font == nil && style.Fill == nil && style.Alignment == nil {
		return nil
	}
	return style
}
