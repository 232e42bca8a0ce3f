package sheet

import "fmt"

// ColumnDefinition declares one column of a table template.
type ColumnDefinition struct {
	// Key is looked up in each data row. A missing key yields an empty
	// cell, never an error.
	Key   string
	Label string
	// Width is a layout hint in character units.
	Width        float64
	Style        *CellStyle
	HeaderStyle  *CellStyle
	NumberFormat string
	// FormulaTemplate, when set, takes rendering precedence over the
	// row value. Occurrences of {row} expand to the cell's 1-based
	// sheet row number; the expansion is purely textual.
	FormulaTemplate string
	// Computed, when set, derives the cell value from the whole row
	// instead of the Key lookup.
	Computed func(Row) Value
	Hidden   bool
}

func (c ColumnDefinition) validate() error {
	if c.Key == "" {
		return NewError(KindValidation, "column key is required", nil)
	}
	if c.Label == "" {
		return NewError(KindValidation, fmt.Sprintf("column %q label is required", c.Key), nil)
	}
	if c.Width < 0 {
		return NewError(KindValidation, fmt.Sprintf("column %q width must be >= 0", c.Key), nil)
	}
	return nil
}

// SectionDefinition groups rows inside a table (e.g. revenue, expenses)
// with optional per-section styling and a synthesized total row.
type SectionDefinition struct {
	Key   string
	Label string
	Style *CellStyle
	// FormulaTemplate fills every non-label cell of the total row.
	FormulaTemplate string
	IsTotal         bool
	Indent          int
}

// TableTemplate declares the layout of one table.
type TableTemplate struct {
	Name     string
	Columns  []ColumnDefinition
	Sections []SectionDefinition
	Title    string
	// TitleStyle falls back to TitleStyle() when unset and a title is
	// present.
	TitleStyle  *CellStyle
	HeaderStyle *CellStyle
	// DefaultStyle applies to data cells without a column style.
	DefaultStyle *CellStyle
	// Rules are evaluated per data cell in declared order; matching
	// rule styles merge on top of the cell's base style.
	Rules []ConditionalRule
	// AlternateRowStyle, when set, merges onto every other data row.
	AlternateRowStyle *CellStyle
	FreezeHeaders     bool
}

// VisibleColumns returns the columns that participate in rendering.
func (t *TableTemplate) VisibleColumns() []ColumnDefinition {
	cols := make([]ColumnDefinition, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Hidden {
			cols = append(cols, c)
		}
	}
	return cols
}

// Validate checks the table template structure.
func (t *TableTemplate) Validate() error {
	if t.Name == "" {
		return NewError(KindValidation, "table name is required", nil)
	}
	if len(t.Columns) == 0 {
		return NewError(KindValidation, fmt.Sprintf("table %q must have at least one column", t.Name), nil)
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, col := range t.Columns {
		if err := col.validate(); err != nil {
			return err
		}
		if seen[col.Key] {
			return NewError(KindValidation, fmt.Sprintf("table %q has duplicate column key %q", t.Name, col.Key), nil)
		}
		seen[col.Key] = true
	}
	return nil
}

// SheetTemplate declares one sheet hosting one or more tables, stacked
// vertically in declared order.
type SheetTemplate struct {
	Name               string
	Tables             []*TableTemplate
	FreezePanes        *Position
	DefaultColumnWidth float64
}

// Validate checks the sheet template structure.
func (s *SheetTemplate) Validate() error {
	if s.Name == "" {
		return NewError(KindValidation, "sheet name is required", nil)
	}
	if len(s.Name) > 31 {
		return NewError(KindValidation, fmt.Sprintf("sheet name %q exceeds 31 characters", s.Name), nil)
	}
	if len(s.Tables) == 0 {
		return NewError(KindValidation, fmt.Sprintf("sheet %q must have at least one table", s.Name), nil)
	}
	seen := make(map[string]bool, len(s.Tables))
	for _, table := range s.Tables {
		if err := table.Validate(); err != nil {
			return err
		}
		if seen[table.Name] {
			return NewError(KindValidation, fmt.Sprintf("sheet %q has duplicate table %q", s.Name, table.Name), nil)
		}
		seen[table.Name] = true
	}
	return nil
}

// SpreadsheetTemplate declares a complete document layout. Templates are
// immutable once built and safe to reuse across concurrent renders.
type SpreadsheetTemplate struct {
	Sheets      []*SheetTemplate
	Metadata    map[string]any
	ActiveSheet string
}

// Validate checks the whole template tree.
func (t *SpreadsheetTemplate) Validate() error {
	if t == nil || len(t.Sheets) == 0 {
		return NewError(KindValidation, "template must have at least one sheet", nil)
	}
	seen := make(map[string]bool, len(t.Sheets))
	for _, sh := range t.Sheets {
		if err := sh.Validate(); err != nil {
			return err
		}
		if seen[sh.Name] {
			return NewError(KindValidation, fmt.Sprintf("duplicate sheet name %q", sh.Name), nil)
		}
		seen[sh.Name] = true
	}
	return nil
}

// SheetByName returns the sheet template with the given name.
func (t *SpreadsheetTemplate) SheetByName(name string) (*SheetTemplate, bool) {
	for _, sh := range t.Sheets {
		if sh.Name == name {
			return sh, true
		}
	}
	return nil, false
}
