package legacy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-sheet/sheet"
)

const sampleSchema = `{
	"filename": "report.xlsx",
	"sheets": [{
		"name": "Summary",
		"freeze_panes": {"rows": 1, "columns": 0},
		"tables": [{
			"title": "Totals",
			"headers": [
				"Name",
				{"text": "Amount", "style": {"bold": true, "background_color": "D3D3D3"}}
			],
			"data": [
				["A", 10],
				["B", -5]
			]
		}]
	}]
}`

func TestParseSchema_HeaderVariants(t *testing.T) {
	schema, err := ParseSchema([]byte(sampleSchema))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	headers := schema.Sheets[0].Tables[0].Headers
	if headers[0].Text != "Name" || headers[0].Style != nil {
		t.Fatalf("expected bare string header, got %+v", headers[0])
	}
	if headers[1].Text != "Amount" || headers[1].Style == nil || !headers[1].Style.Bold {
		t.Fatalf("expected styled header, got %+v", headers[1])
	}
}

func TestParseSchema_FreezeVariants(t *testing.T) {
	schema, err := ParseSchema([]byte(`{"sheets":[{"name":"S","freeze_panes":"B2","tables":[{"headers":["X"],"data":[]}]}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if pos := schema.Sheets[0].FreezePanes.Position; pos != (sheet.Position{Row: 2, Col: 2}) {
		t.Fatalf("expected B2, got %+v", pos)
	}

	schema, err = ParseSchema([]byte(sampleSchema))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if pos := schema.Sheets[0].FreezePanes.Position; pos != (sheet.Position{Row: 2, Col: 1}) {
		t.Fatalf("expected frozen header row, got %+v", pos)
	}
}

func TestConvert_ColumnKeys(t *testing.T) {
	schema, err := ParseSchema([]byte(sampleSchema))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	template, data, err := Convert(schema)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	table := template.Sheets[0].Tables[0]
	if table.Columns[0].Key != "col_0" || table.Columns[1].Key != "col_1" {
		t.Fatalf("unexpected column keys: %+v", table.Columns)
	}
	if table.Title != "Totals" {
		t.Fatalf("expected title carried over, got %q", table.Title)
	}
	if table.Columns[1].HeaderStyle == nil || table.Columns[1].HeaderStyle.Fill == nil {
		t.Fatalf("expected header style converted")
	}

	sheetData, ok := data.Sheet("Summary")
	if !ok {
		t.Fatalf("expected sheet data bound")
	}
	provider, ok := sheetData.Table("table_0")
	if !ok {
		t.Fatalf("expected table data bound")
	}
	if td, ok := provider.(*sheet.TableData); !ok || td.RowCount() != 2 {
		t.Fatalf("expected 2 converted rows")
	}
}

func TestBuilder_Bytes(t *testing.T) {
	schema, err := ParseSchema([]byte(sampleSchema))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	builder, err := NewBuilder(schema)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}

	out, err := builder.Bytes(context.Background(), sheet.FormatCSV)
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	want := "Totals\nName,Amount\nA,10\nB,-5\n"
	if string(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestBuilder_Save(t *testing.T) {
	schema, err := ParseSchema([]byte(sampleSchema))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	builder, err := NewBuilder(schema)
	if err != nil {
		t.Fatalf("builder: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := builder.Save(context.Background(), path); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestConvert_RejectsInvalid(t *testing.T) {
	if _, _, err := Convert(Schema{}); err == nil {
		t.Fatalf("expected empty schema rejected")
	}
	if _, _, err := Convert(Schema{Sheets: []SheetSchema{{Name: "S"}}}); err == nil {
		t.Fatalf("expected sheet without tables rejected")
	}
}
