package financial

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheet/sheet"
)

func TestNewTemplate_Validates(t *testing.T) {
	tpl := NewTemplate(Options{Period: "FY2024"})
	if err := tpl.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if tpl.Sheets[0].Name != SheetName {
		t.Fatalf("unexpected sheet name %q", tpl.Sheets[0].Name)
	}
	if got := tpl.Sheets[0].Tables[0].Title; got != "INCOME STATEMENT FY2024" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestStatement_DerivesTotals(t *testing.T) {
	data := SampleStatement().Data()
	sheetData, ok := data.Sheet(SheetName)
	if !ok {
		t.Fatalf("expected sheet data")
	}
	provider, ok := sheetData.Table(tableName)
	if !ok {
		t.Fatalf("expected table data")
	}
	table := provider.(*sheet.TableData)

	net := table.SectionRows(SectionNetProfit)
	if len(net) != 1 {
		t.Fatalf("expected one net profit row, got %d", len(net))
	}
	if v, _ := net[0]["value"].Float(); v != 105600 {
		t.Fatalf("expected net profit 105600, got %v", v)
	}

	gross := table.SectionRows(SectionGrossProfit)
	if v, _ := gross[0]["value"].Float(); v != 500000 {
		t.Fatalf("expected gross profit 500000, got %v", v)
	}
	if p, _ := gross[0]["percent"].Float(); p <= 0.33 || p >= 0.34 {
		t.Fatalf("expected gross profit near 33%% of revenue, got %v", p)
	}
}

func TestIncomeStatement_RendersXLSX(t *testing.T) {
	engine := sheet.NewEngine()
	out, err := engine.Render(context.Background(), NewTemplate(Options{}), SampleStatement().Data(), sheet.RenderOptions{Format: sheet.FormatXLSX})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}

	var labels []string
	for _, row := range rows {
		if len(row) > 0 {
			labels = append(labels, row[0])
		}
	}
	joined := strings.Join(labels, "|")
	for _, want := range []string{"Product Sales", "= NET REVENUE", "= GROSS PROFIT", "= NET PROFIT"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in rendered rows, got %s", want, joined)
		}
	}

	// Subtotal label rows come after their section's computed row.
	netIdx := strings.Index(joined, "Net Revenue")
	labelIdx := strings.Index(joined, "= NET REVENUE")
	if netIdx == -1 || labelIdx == -1 || labelIdx < netIdx {
		t.Fatalf("expected subtotal label after computed row: %s", joined)
	}
}

func TestIncomeStatement_RendersCSV(t *testing.T) {
	engine := sheet.NewEngine()
	out, err := engine.Render(context.Background(), NewTemplate(Options{}), SampleStatement().Data(), sheet.RenderOptions{Format: sheet.FormatCSV})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, "Account,Amount,% of Revenue") {
		t.Fatalf("expected header row, got %s", text)
	}
	if !strings.Contains(text, "Income Tax,-54400,") {
		t.Fatalf("expected tax line, got %s", text)
	}
}
