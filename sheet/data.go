package sheet

import (
	"context"
	"io"
	"sync"
)

// Row maps column keys to values.
type Row map[string]Value

// RowOf builds a Row from plain Go values.
func RowOf(m map[string]any) Row {
	row := make(Row, len(m))
	for k, v := range m {
		row[k] = ValueOf(v)
	}
	return row
}

// RowsOf builds a Row slice from plain Go values.
func RowsOf(ms []map[string]any) []Row {
	rows := make([]Row, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, RowOf(m))
	}
	return rows
}

// RowIterator produces rows in order, once. Next returns io.EOF when the
// sequence is exhausted.
type RowIterator interface {
	Next(ctx context.Context) (Row, error)
	Close() error
}

// RowProvider is the shared read contract of table data: produce rows in
// order, once per Rows call.
type RowProvider interface {
	Rows(ctx context.Context) (RowIterator, error)
}

// sectionProvider is implemented by data that carries per-section rows.
type sectionProvider interface {
	SectionRows(key string) []Row
}

// TableData is the eager, fully materialized table data variant. It is
// restartable and safe to bind any number of times.
type TableData struct {
	rows     []Row
	sections map[string][]Row
}

// NewTableData creates eager table data from rows.
func NewTableData(rows ...Row) *TableData {
	return &TableData{rows: rows, sections: map[string][]Row{}}
}

// AddRow appends a data row.
func (d *TableData) AddRow(row Row) {
	d.rows = append(d.rows, row)
}

// AddRows appends multiple data rows.
func (d *TableData) AddRows(rows ...Row) {
	d.rows = append(d.rows, rows...)
}

// AddSectionRows stores the rows for a named section.
func (d *TableData) AddSectionRows(key string, rows []Row) {
	if d.sections == nil {
		d.sections = map[string][]Row{}
	}
	d.sections[key] = rows
}

// SectionRows returns the rows stored for a named section.
func (d *TableData) SectionRows(key string) []Row {
	return d.sections[key]
}

// RowCount returns the number of plain data rows.
func (d *TableData) RowCount() int {
	return len(d.rows)
}

// Rows returns a fresh iterator over the data rows.
func (d *TableData) Rows(ctx context.Context) (RowIterator, error) {
	return &sliceIterator{rows: d.rows}, nil
}

type sliceIterator struct {
	rows []Row
	idx  int
}

func (it *sliceIterator) Next(ctx context.Context) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if it.idx >= len(it.rows) {
		return nil, io.EOF
	}
	row := it.rows[it.idx]
	it.idx++
	return row, nil
}

func (it *sliceIterator) Close() error { return nil }

// StreamingTableData wraps a forward-only row iterator. It is single-use
// and single-consumer: consuming it is destructive, and a second Rows
// call fails.
type StreamingTableData struct {
	mu     sync.Mutex
	it     RowIterator
	opened bool
}

// NewStreamingTableData creates streaming table data over an iterator.
func NewStreamingTableData(it RowIterator) *StreamingTableData {
	return &StreamingTableData{it: it}
}

// Rows hands out the underlying iterator exactly once.
func (d *StreamingTableData) Rows(ctx context.Context) (RowIterator, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opened {
		return nil, NewError(KindValidation, "streaming table data is single-use and was already consumed", nil)
	}
	d.opened = true
	return d.it, nil
}

// RowIteratorFunc adapts a pull function to a RowIterator. The function
// returns io.EOF at exhaustion.
type RowIteratorFunc func(ctx context.Context) (Row, error)

func (f RowIteratorFunc) Next(ctx context.Context) (Row, error) { return f(ctx) }
func (f RowIteratorFunc) Close() error                          { return nil }

// SheetData maps table names to table data.
type SheetData struct {
	tables map[string]RowProvider
}

// NewSheetData creates empty sheet data.
func NewSheetData() *SheetData {
	return &SheetData{tables: map[string]RowProvider{}}
}

// AddTable binds data to a table name.
func (d *SheetData) AddTable(name string, data RowProvider) {
	if d.tables == nil {
		d.tables = map[string]RowProvider{}
	}
	d.tables[name] = data
}

// Table returns the data bound to a table name.
func (d *SheetData) Table(name string) (RowProvider, bool) {
	if d == nil {
		return nil, false
	}
	data, ok := d.tables[name]
	return data, ok
}

// SpreadsheetData maps sheet names to sheet data. Data is constructed
// per render and discarded afterwards.
type SpreadsheetData struct {
	sheets map[string]*SheetData
}

// NewSpreadsheetData creates empty spreadsheet data.
func NewSpreadsheetData() *SpreadsheetData {
	return &SpreadsheetData{sheets: map[string]*SheetData{}}
}

// AddSheet binds data to a sheet name.
func (d *SpreadsheetData) AddSheet(name string, data *SheetData) {
	if d.sheets == nil {
		d.sheets = map[string]*SheetData{}
	}
	d.sheets[name] = data
}

// Sheet returns the data bound to a sheet name.
func (d *SpreadsheetData) Sheet(name string) (*SheetData, bool) {
	if d == nil {
		return nil, false
	}
	data, ok := d.sheets[name]
	return data, ok
}

// SimpleData builds spreadsheet data with a single sheet and table.
func SimpleData(sheetName, tableName string, rows []Row) *SpreadsheetData {
	sheetData := NewSheetData()
	sheetData.AddTable(tableName, NewTableData(rows...))

	data := NewSpreadsheetData()
	data.AddSheet(sheetName, sheetData)
	return data
}
