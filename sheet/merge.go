package sheet

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
)

// tableGapRows is the number of blank rows between tables stacked on the
// same sheet.
const tableGapRows = 2

// rowPlaceholder expands to the cell's 1-based sheet row number inside a
// formula template. The substitution is purely textual.
const rowPlaceholder = "{row}"

func expandFormula(template string, rowNum int) string {
	return strings.ReplaceAll(template, rowPlaceholder, strconv.Itoa(rowNum))
}

// bindSpreadsheet resolves a template against data by exact name match,
// producing the fully populated domain tree. Missing sheet or table data
// degrades to empty rows, never an error.
func bindSpreadsheet(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData) (*Spreadsheet, error) {
	doc := NewSpreadsheet()
	for k, v := range tpl.Metadata {
		doc.Metadata[k] = v
	}

	for _, sheetTpl := range tpl.Sheets {
		sheetData, _ := data.Sheet(sheetTpl.Name)
		sh, err := bindSheet(ctx, sheetTpl, sheetData)
		if err != nil {
			return nil, err
		}
		doc.AddSheet(sh)
	}

	if tpl.ActiveSheet != "" {
		doc.ActiveSheet = tpl.ActiveSheet
	}
	return doc, nil
}

func bindSheet(ctx context.Context, tpl *SheetTemplate, data *SheetData) (*Sheet, error) {
	sh := NewSheet(tpl.Name)
	sh.FreezePanes = sheetFreezePanes(tpl)
	sh.ColumnWidths = sheetColumnWidths(tpl)

	currentRow := 1
	for _, tableTpl := range tpl.Tables {
		provider, _ := data.Table(tableTpl.Name)

		table, err := bindTable(ctx, tableTpl, provider, Position{Row: currentRow, Col: 1})
		if err != nil {
			return nil, err
		}
		sh.AddTable(table)
		currentRow += table.RowSpan() + tableGapRows
	}
	return sh, nil
}

// sheetColumnWidths collects explicit column widths from the sheet's
// tables. Later tables win on overlap; DefaultColumnWidth fills columns
// without an explicit width.
func sheetColumnWidths(tpl *SheetTemplate) map[int]float64 {
	widths := map[int]float64{}
	for _, tableTpl := range tpl.Tables {
		for idx, col := range tableTpl.VisibleColumns() {
			width := col.Width
			if width == 0 {
				width = tpl.DefaultColumnWidth
			}
			if width > 0 {
				widths[idx+1] = width
			}
		}
	}
	return widths
}

// sheetFreezePanes resolves the sheet's pane freeze: an explicit
// position wins; otherwise FreezeHeaders on the first table freezes
// everything above its first data row.
func sheetFreezePanes(tpl *SheetTemplate) *Position {
	if tpl.FreezePanes != nil {
		p := *tpl.FreezePanes
		return &p
	}
	if len(tpl.Tables) > 0 && tpl.Tables[0].FreezeHeaders {
		row := 2
		if tpl.Tables[0].Title != "" {
			row++
		}
		return &Position{Row: row, Col: 1}
	}
	return nil
}

func bindTable(ctx context.Context, tpl *TableTemplate, provider RowProvider, start Position) (*Table, error) {
	table := NewTable(start)
	table.Title = titleCell(tpl)
	table.Headers = headerCells(tpl)

	firstDataRow := start.Row + 1
	if table.HasTitle() {
		firstDataRow++
	}

	_, err := forEachDataRow(ctx, tpl, provider, firstDataRow, func(cells []Cell) error {
		table.Rows = append(table.Rows, cells)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

func titleCell(tpl *TableTemplate) *Cell {
	if tpl.Title == "" {
		return nil
	}
	style := tpl.TitleStyle
	if style == nil {
		style = TitleStyle()
	}
	cell := TextCell(tpl.Title, style)
	return &cell
}

func headerCells(tpl *TableTemplate) []Cell {
	cols := tpl.VisibleColumns()
	cells := make([]Cell, 0, len(cols))
	for _, col := range cols {
		style := col.HeaderStyle
		if style == nil {
			style = tpl.HeaderStyle
		}
		if style == nil {
			style = HeaderStyle()
		}
		cells = append(cells, TextCell(col.Label, style))
	}
	return cells
}

// forEachDataRow resolves data rows against the template in emission
// order, expanding sections and synthesizing total rows, and invokes
// emit once per resolved row. rowNum passed to cell binding is the
// absolute 1-based sheet row, so formula expansion is identical in
// standard and streaming modes. Returns the number of rows emitted.
func forEachDataRow(ctx context.Context, tpl *TableTemplate, provider RowProvider, firstDataRow int, emit func(cells []Cell) error) (int, error) {
	if provider == nil {
		return 0, nil
	}

	count := 0
	emitRow := func(cells []Cell) error {
		if err := emit(cells); err != nil {
			return err
		}
		count++
		return nil
	}

	if len(tpl.Sections) > 0 {
		if sp, ok := provider.(sectionProvider); ok {
			for _, section := range tpl.Sections {
				rows := sp.SectionRows(section.Key)
				if len(rows) == 0 {
					continue
				}
				for _, row := range rows {
					if err := ctx.Err(); err != nil {
						return count, err
					}
					if err := emitRow(bindRow(tpl, row, firstDataRow+count, count)); err != nil {
						return count, err
					}
				}
				if section.IsTotal || section.FormulaTemplate != "" {
					if err := emitRow(totalRowCells(tpl, section, firstDataRow+count)); err != nil {
						return count, err
					}
				}
			}
			return count, nil
		}
	}

	it, err := provider.Rows(ctx)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		row, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return count, err
		}
		if err := emitRow(bindRow(tpl, row, firstDataRow+count, count)); err != nil {
			return count, err
		}
	}
}

// bindRow resolves one data row to cells. rowIdx is the 0-based data row
// index, used for alternate-row styling.
func bindRow(tpl *TableTemplate, row Row, rowNum, rowIdx int) []Cell {
	cols := tpl.VisibleColumns()
	cells := make([]Cell, 0, len(cols))
	alt := rowIdx%2 == 0 && tpl.AlternateRowStyle != nil
	for _, col := range cols {
		cells = append(cells, bindCell(tpl, col, row, rowNum, alt))
	}
	return cells
}

func bindCell(tpl *TableTemplate, col ColumnDefinition, row Row, rowNum int, alt bool) Cell {
	var value Value
	if col.Computed != nil {
		value = col.Computed(row)
	} else {
		value = row[col.Key]
	}

	style := col.Style
	if style == nil {
		style = tpl.DefaultStyle
	}

	var cell Cell
	if col.FormulaTemplate != "" {
		cell = FormulaCell(expandFormula(col.FormulaTemplate, rowNum), value, col.NumberFormat, style)
	} else {
		cell = Cell{Value: value, NumberFormat: col.NumberFormat, Style: style}
	}

	if alt {
		cell = cell.MergeStyle(tpl.AlternateRowStyle)
	}

	// Matching rules merge in declared order: the last matching rule
	// wins per attribute, unset attributes fall through.
	for _, rule := range tpl.Rules {
		if rule.Matches(cell.Value) {
			cell = cell.MergeStyle(rule.Style)
		}
	}
	return cell
}

func totalRowCells(tpl *TableTemplate, section SectionDefinition, rowNum int) []Cell {
	style := section.Style
	if style == nil {
		style = HeaderStyle()
	}

	cols := tpl.VisibleColumns()
	cells := make([]Cell, 0, len(cols))
	for idx, col := range cols {
		switch {
		case idx == 0:
			cells = append(cells, TextCell(section.Label, style))
		case section.FormulaTemplate != "":
			cells = append(cells, FormulaCell(expandFormula(section.FormulaTemplate, rowNum), Null(), col.NumberFormat, style))
		default:
			cells = append(cells, BlankCell())
		}
	}
	return cells
}
