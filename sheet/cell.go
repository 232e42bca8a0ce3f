package sheet

import "strings"

// Cell is a single spreadsheet cell. A cell may carry both a formula and
// a value; the formula takes serialization precedence in formats that
// support formulas, with the value kept as a display fallback.
type Cell struct {
	Value        Value
	Formula      string
	Style        *CellStyle
	NumberFormat string
}

// NewCell creates a cell holding a value.
func NewCell(v Value) Cell {
	return Cell{Value: v}
}

// BlankCell creates an empty cell.
func BlankCell() Cell {
	return Cell{Value: Null()}
}

// TextCell creates a text cell.
func TextCell(s string, style *CellStyle) Cell {
	return Cell{Value: Text(s), Style: style}
}

// NumberCell creates a numeric cell with an optional number format.
func NumberCell(f float64, numberFormat string, style *CellStyle) Cell {
	return Cell{Value: Number(f), NumberFormat: numberFormat, Style: style}
}

// FormulaCell creates a formula cell with an optional cached value.
// Formulas are normalized to carry a leading '='.
func FormulaCell(formula string, cached Value, numberFormat string, style *CellStyle) Cell {
	return Cell{
		Value:        cached,
		Formula:      normalizeFormula(formula),
		NumberFormat: numberFormat,
		Style:        style,
	}
}

func normalizeFormula(formula string) string {
	if formula == "" || strings.HasPrefix(formula, "=") {
		return formula
	}
	return "=" + formula
}

// IsFormula reports whether the cell carries a formula.
func (c Cell) IsFormula() bool {
	return c.Formula != ""
}

// IsBlank reports whether the cell has no value and no formula.
func (c Cell) IsBlank() bool {
	return c.Value.IsNull() && c.Formula == ""
}

// MergeStyle returns a copy of the cell with the given style merged on
// top of its current style.
func (c Cell) MergeStyle(style *CellStyle) Cell {
	if style == nil {
		return c
	}
	c.Style = c.Style.Merge(style)
	return c
}
