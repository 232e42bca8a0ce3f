package sheet

import (
	"bytes"
	"context"
	"testing"
)

func renderCSV(t *testing.T, doc *Spreadsheet, opts AdapterOptions) string {
	t.Helper()
	adapter := &CSVAdapter{}
	wb, err := adapter.Render(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var buf bytes.Buffer
	if _, err := adapter.WriteTo(wb, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

func csvFixture() *Spreadsheet {
	title := TextCell("Report", nil)

	first := NewTable(Position{Row: 1, Col: 1})
	first.Title = &title
	first.Headers = []Cell{TextCell("Name", nil), TextCell("Value", nil)}
	first.Rows = [][]Cell{
		{TextCell("A", nil), NewCell(Number(10))},
		{TextCell("B", nil), NewCell(Number(-5))},
	}

	second := NewTable(Position{Row: 8, Col: 1})
	second.Headers = []Cell{TextCell("City", nil)}
	second.Rows = [][]Cell{{TextCell("Lisbon", nil)}}

	sh := NewSheet("Data")
	sh.AddTable(first)
	sh.AddTable(second)

	doc := NewSpreadsheet()
	doc.AddSheet(sh)
	return doc
}

func TestCSVAdapter_RegionSeparation(t *testing.T) {
	got := renderCSV(t, csvFixture(), AdapterOptions{})
	want := "Report\nName,Value\nA,10\nB,-5\n\nCity\nLisbon\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCSVAdapter_MultiSheetSeparation(t *testing.T) {
	table := NewTable(Position{Row: 1, Col: 1})
	table.Headers = []Cell{TextCell("X", nil)}

	doc := csvFixture()
	extra := NewSheet("More")
	extra.AddTable(table)
	doc.AddSheet(extra)

	got := renderCSV(t, doc, AdapterOptions{})
	want := "Report\nName,Value\nA,10\nB,-5\n\nCity\nLisbon\n\nX\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCSVAdapter_Delimiter(t *testing.T) {
	got := renderCSV(t, csvFixture(), AdapterOptions{CSV: CSVOptions{Delimiter: ';'}})
	want := "Report\nName;Value\nA;10\nB;-5\n\nCity\nLisbon\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCSVAdapter_FormulaFallsBackToValue(t *testing.T) {
	table := NewTable(Position{Row: 1, Col: 1})
	table.Headers = []Cell{TextCell("Total", nil)}
	table.Rows = [][]Cell{{FormulaCell("SUM(A1:A2)", Number(30), "", nil)}}

	sh := NewSheet("Data")
	sh.AddTable(table)
	doc := NewSpreadsheet()
	doc.AddSheet(sh)

	got := renderCSV(t, doc, AdapterOptions{})
	if want := "Total\n30\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCSVAdapter_QuotesSpecialFields(t *testing.T) {
	table := NewTable(Position{Row: 1, Col: 1})
	table.Headers = []Cell{TextCell("Note", nil)}
	table.Rows = [][]Cell{{TextCell("a,b", nil)}}

	sh := NewSheet("Data")
	sh.AddTable(table)
	doc := NewSpreadsheet()
	doc.AddSheet(sh)

	got := renderCSV(t, doc, AdapterOptions{})
	if want := "Note\n\"a,b\"\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
