package sheet

// Table is a rendered grid of cells with optional header and title rows.
type Table struct {
	Title   *Cell
	Headers []Cell
	Rows    [][]Cell
	Start   Position
}

// NewTable creates an empty table anchored at the given position.
func NewTable(start Position) *Table {
	if start.Row < 1 {
		start.Row = 1
	}
	if start.Col < 1 {
		start.Col = 1
	}
	return &Table{Rows: [][]Cell{}, Start: start}
}

// HasTitle reports whether the table has a title row.
func (t *Table) HasTitle() bool {
	return t.Title != nil
}

// HasHeaders reports whether the table has a header row.
func (t *Table) HasHeaders() bool {
	return len(t.Headers) > 0
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the width of the table.
func (t *Table) ColumnCount() int {
	if len(t.Headers) > 0 {
		return len(t.Headers)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// RowSpan returns the total number of rows the table occupies,
// including title and header rows.
func (t *Table) RowSpan() int {
	span := len(t.Rows)
	if t.HasTitle() {
		span++
	}
	if t.HasHeaders() {
		span++
	}
	return span
}

// Sheet is a rendered sheet holding stacked tables and layout hints.
type Sheet struct {
	Name         string
	Tables       []*Table
	ColumnWidths map[int]float64
	RowHeights   map[int]float64
	FreezePanes  *Position
}

// NewSheet creates an empty sheet. Collections are always non-nil.
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:         name,
		Tables:       []*Table{},
		ColumnWidths: map[int]float64{},
		RowHeights:   map[int]float64{},
	}
}

// AddTable appends a table to the sheet.
func (s *Sheet) AddTable(t *Table) {
	s.Tables = append(s.Tables, t)
}

// Spreadsheet is the fully resolved, format-agnostic document tree.
type Spreadsheet struct {
	Sheets      []*Sheet
	ActiveSheet string
	Metadata    map[string]any
}

// NewSpreadsheet creates an empty spreadsheet. Collections are always
// non-nil.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{Sheets: []*Sheet{}, Metadata: map[string]any{}}
}

// AddSheet appends a sheet; the first sheet becomes active by default.
func (s *Spreadsheet) AddSheet(sh *Sheet) {
	s.Sheets = append(s.Sheets, sh)
	if s.ActiveSheet == "" {
		s.ActiveSheet = sh.Name
	}
}

// SheetByName returns the sheet with the given name.
func (s *Spreadsheet) SheetByName(name string) (*Sheet, bool) {
	for _, sh := range s.Sheets {
		if sh.Name == name {
			return sh, true
		}
	}
	return nil, false
}
