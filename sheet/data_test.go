package sheet

import (
	"context"
	"errors"
	"io"
	"testing"
)

type stubIterator struct {
	rows   []Row
	idx    int
	closed bool
}

func (it *stubIterator) Next(ctx context.Context) (Row, error) {
	if it.idx >= len(it.rows) {
		return nil, io.EOF
	}
	row := it.rows[it.idx]
	it.idx++
	return row, nil
}

func (it *stubIterator) Close() error {
	it.closed = true
	return nil
}

func drain(t *testing.T, provider RowProvider) []Row {
	t.Helper()
	it, err := provider.Rows(context.Background())
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	defer it.Close()

	var out []Row
	for {
		row, err := it.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		out = append(out, row)
	}
}

func TestTableData_Restartable(t *testing.T) {
	data := NewTableData(simpleRows()...)

	first := drain(t, data)
	second := drain(t, data)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 rows per pass, got %d and %d", len(first), len(second))
	}
}

func TestTableData_Sections(t *testing.T) {
	data := NewTableData()
	data.AddSectionRows("revenue", RowsOf([]map[string]any{{"label": "Sales"}}))

	if rows := data.SectionRows("revenue"); len(rows) != 1 {
		t.Fatalf("expected 1 section row, got %d", len(rows))
	}
	if rows := data.SectionRows("missing"); rows != nil {
		t.Fatalf("expected nil for missing section, got %v", rows)
	}
}

func TestStreamingTableData_SingleUse(t *testing.T) {
	data := NewStreamingTableData(&stubIterator{rows: simpleRows()})

	if _, err := data.Rows(context.Background()); err != nil {
		t.Fatalf("first rows: %v", err)
	}

	_, err := data.Rows(context.Background())
	if err == nil {
		t.Fatalf("expected single-use error")
	}
	var renderErr *Error
	if !errors.As(err, &renderErr) || renderErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSliceIterator_ContextCancellation(t *testing.T) {
	data := NewTableData(simpleRows()...)
	it, err := data.Rows(context.Background())
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	defer it.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := it.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestSheetData_NilLookups(t *testing.T) {
	var data *SheetData
	if _, ok := data.Table("items"); ok {
		t.Fatalf("expected no table on nil sheet data")
	}

	var doc *SpreadsheetData
	if _, ok := doc.Sheet("Data"); ok {
		t.Fatalf("expected no sheet on nil spreadsheet data")
	}
}

func TestRowIteratorFunc(t *testing.T) {
	calls := 0
	it := RowIteratorFunc(func(ctx context.Context) (Row, error) {
		if calls == 0 {
			calls++
			return Row{"name": Text("A")}, nil
		}
		return nil, io.EOF
	})

	row, err := it.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if row["name"].String() != "A" {
		t.Fatalf("unexpected row: %v", row)
	}
	if _, err := it.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}
