package sheet

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	excelMaxRows    = 1048576
	autofitMinWidth = 10
	autofitMaxWidth = 50
	autofitPadding  = 2
)

// XLSXAdapter renders XLSX workbooks through excelize. It supports both
// standard and streaming modes. In streaming mode title cells are not
// merged across columns and autofit is unavailable.
type XLSXAdapter struct{}

// Render builds the full workbook in memory.
func (a *XLSXAdapter) Render(ctx context.Context, doc *Spreadsheet, opts AdapterOptions) (Workbook, error) {
	file := excelize.NewFile()
	styles := newXLSXStyleCache(file)

	ok := false
	defer func() {
		if !ok {
			file.Close()
		}
	}()

	for i, sh := range doc.Sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i == 0 {
			if def := file.GetSheetName(0); def != sh.Name {
				if err := file.SetSheetName(def, sh.Name); err != nil {
					return nil, NewError(KindRender, fmt.Sprintf("rename sheet to %q", sh.Name), err)
				}
			}
		} else {
			if _, err := file.NewSheet(sh.Name); err != nil {
				return nil, NewError(KindRender, fmt.Sprintf("create sheet %q", sh.Name), err)
			}
		}
		if err := a.renderSheet(ctx, file, styles, sh, opts); err != nil {
			return nil, err
		}
	}

	if doc.ActiveSheet != "" {
		idx, err := file.GetSheetIndex(doc.ActiveSheet)
		if err == nil && idx >= 0 {
			file.SetActiveSheet(idx)
		}
	}

	ok = true
	return file, nil
}

// WriteTo serializes the workbook and closes it.
func (a *XLSXAdapter) WriteTo(wb Workbook, w io.Writer) (int64, error) {
	file, ok := wb.(*excelize.File)
	if !ok {
		return 0, NewError(KindInternal, fmt.Sprintf("unexpected workbook type %T", wb), nil)
	}
	defer file.Close()

	n, err := file.WriteTo(w)
	if err != nil {
		return n, NewError(KindRender, "write xlsx workbook", err)
	}
	return n, nil
}

func (a *XLSXAdapter) renderSheet(ctx context.Context, file *excelize.File, styles *xlsxStyleCache, sh *Sheet, opts AdapterOptions) error {
	colMax := map[int]int{}

	for _, table := range sh.Tables {
		if err := ctx.Err(); err != nil {
			return err
		}

		rowNum := table.Start.Row
		if table.HasTitle() {
			if err := a.setCell(file, styles, sh.Name, Position{Row: rowNum, Col: table.Start.Col}, *table.Title); err != nil {
				return err
			}
			if n := table.ColumnCount(); n > 1 {
				from := Position{Row: rowNum, Col: table.Start.Col}.A1()
				to := Position{Row: rowNum, Col: table.Start.Col + n - 1}.A1()
				if err := file.MergeCell(sh.Name, from, to); err != nil {
					return NewError(KindRender, fmt.Sprintf("merge title cells %s:%s", from, to), err)
				}
			}
			rowNum++
		}

		if table.HasHeaders() {
			if err := a.setRow(file, styles, sh.Name, rowNum, table.Start.Col, table.Headers, colMax); err != nil {
				return err
			}
			rowNum++
		}

		for _, cells := range table.Rows {
			if rowNum > excelMaxRows {
				return NewError(KindRender, fmt.Sprintf("sheet %q exceeds the xlsx row limit", sh.Name), nil)
			}
			if err := a.setRow(file, styles, sh.Name, rowNum, table.Start.Col, cells, colMax); err != nil {
				return err
			}
			rowNum++
		}
	}

	if opts.Autofit {
		for col, maxLen := range colMax {
			width := float64(maxLen + autofitPadding)
			if width < autofitMinWidth {
				width = autofitMinWidth
			}
			if width > autofitMaxWidth {
				width = autofitMaxWidth
			}
			letter := ColumnLetters(col)
			if err := file.SetColWidth(sh.Name, letter, letter, width); err != nil {
				return NewError(KindRender, fmt.Sprintf("set width of column %s", letter), err)
			}
		}
	} else {
		for col, width := range sh.ColumnWidths {
			letter := ColumnLetters(col)
			if err := file.SetColWidth(sh.Name, letter, letter, width); err != nil {
				return NewError(KindRender, fmt.Sprintf("set width of column %s", letter), err)
			}
		}
	}

	for row, height := range sh.RowHeights {
		if err := file.SetRowHeight(sh.Name, row, height); err != nil {
			return NewError(KindRender, fmt.Sprintf("set height of row %d", row), err)
		}
	}

	if sh.FreezePanes != nil {
		if err := file.SetPanes(sh.Name, freezePanes(*sh.FreezePanes)); err != nil {
			return NewError(KindRender, fmt.Sprintf("freeze panes on sheet %q", sh.Name), err)
		}
	}
	return nil
}

func (a *XLSXAdapter) setRow(file *excelize.File, styles *xlsxStyleCache, sheetName string, rowNum, startCol int, cells []Cell, colMax map[int]int) error {
	for i, cell := range cells {
		col := startCol + i
		if err := a.setCell(file, styles, sheetName, Position{Row: rowNum, Col: col}, cell); err != nil {
			return err
		}
		if n := displayWidth(cell); n > colMax[col] {
			colMax[col] = n
		}
	}
	return nil
}

func (a *XLSXAdapter) setCell(file *excelize.File, styles *xlsxStyleCache, sheetName string, pos Position, cell Cell) error {
	ref := pos.A1()

	if cell.IsFormula() {
		if err := file.SetCellFormula(sheetName, ref, strings.TrimPrefix(cell.Formula, "=")); err != nil {
			return NewError(KindRender, fmt.Sprintf("set formula at %s", ref), err)
		}
	} else if !cell.Value.IsNull() {
		if err := file.SetCellValue(sheetName, ref, cell.Value.Any()); err != nil {
			return NewError(KindRender, fmt.Sprintf("set value at %s", ref), err)
		}
	}

	styleID, err := styles.resolve(cell.Style, cell.NumberFormat)
	if err != nil {
		return err
	}
	if styleID != 0 {
		if err := file.SetCellStyle(sheetName, ref, ref, styleID); err != nil {
			return NewError(KindRender, fmt.Sprintf("set style at %s", ref), err)
		}
	}
	return nil
}

// displayWidth approximates the rendered width of a cell for autofit.
func displayWidth(cell Cell) int {
	if cell.IsFormula() {
		return len(cell.Formula)
	}
	return len(cell.Value.String())
}

// Stream opens an incremental workbook writer over w.
func (a *XLSXAdapter) Stream(ctx context.Context, w io.Writer, opts AdapterOptions) (WorkbookStream, error) {
	file := excelize.NewFile()
	return &xlsxStream{
		file:   file,
		w:      w,
		styles: newXLSXStyleCache(file),
	}, nil
}

type xlsxStream struct {
	file    *excelize.File
	w       io.Writer
	styles  *xlsxStyleCache
	sheets  int
	current *xlsxRowWriter
	closed  bool
}

func (s *xlsxStream) OpenSheet(cfg StreamSheet) (RowWriter, error) {
	if s.closed {
		return nil, NewError(KindInternal, "workbook stream is closed", nil)
	}
	if s.current != nil && !s.current.closed {
		return nil, NewError(KindInternal, fmt.Sprintf("sheet %q opened before the previous sheet was closed", cfg.Name), nil)
	}

	if s.sheets == 0 {
		if def := s.file.GetSheetName(0); def != cfg.Name {
			if err := s.file.SetSheetName(def, cfg.Name); err != nil {
				return nil, NewError(KindRender, fmt.Sprintf("rename sheet to %q", cfg.Name), err)
			}
		}
	} else {
		if _, err := s.file.NewSheet(cfg.Name); err != nil {
			return nil, NewError(KindRender, fmt.Sprintf("create sheet %q", cfg.Name), err)
		}
	}
	s.sheets++

	sw, err := s.file.NewStreamWriter(cfg.Name)
	if err != nil {
		return nil, NewError(KindRender, fmt.Sprintf("open stream writer for sheet %q", cfg.Name), err)
	}

	// Column widths and panes must be set before the first row.
	for col, width := range cfg.ColumnWidths {
		if err := sw.SetColWidth(col, col, width); err != nil {
			return nil, NewError(KindRender, fmt.Sprintf("set width of column %d", col), err)
		}
	}
	if cfg.FreezePanes != nil {
		if err := sw.SetPanes(freezePanes(*cfg.FreezePanes)); err != nil {
			return nil, NewError(KindRender, fmt.Sprintf("freeze panes on sheet %q", cfg.Name), err)
		}
	}

	s.current = &xlsxRowWriter{sw: sw, styles: s.styles, row: 1}
	return s.current, nil
}

func (s *xlsxStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.file.Close()

	if s.current != nil && !s.current.closed {
		if err := s.current.Close(); err != nil {
			return err
		}
	}
	if _, err := s.file.WriteTo(s.w); err != nil {
		return NewError(KindRender, "write xlsx workbook", err)
	}
	return nil
}

type xlsxRowWriter struct {
	sw     *excelize.StreamWriter
	styles *xlsxStyleCache
	row    int
	closed bool
}

func (rw *xlsxRowWriter) WriteRow(cells []Cell) error {
	if rw.closed {
		return NewError(KindInternal, "sheet row writer is closed", nil)
	}
	if rw.row > excelMaxRows {
		return NewError(KindRender, "sheet exceeds the xlsx row limit", nil)
	}

	out := make([]interface{}, len(cells))
	for i, cell := range cells {
		styleID, err := rw.styles.resolve(cell.Style, cell.NumberFormat)
		if err != nil {
			return err
		}
		xc := excelize.Cell{StyleID: styleID}
		if cell.IsFormula() {
			xc.Formula = strings.TrimPrefix(cell.Formula, "=")
		} else if !cell.Value.IsNull() {
			xc.Value = cell.Value.Any()
		}
		out[i] = xc
	}

	ref, err := excelize.CoordinatesToCellName(1, rw.row)
	if err != nil {
		return NewError(KindInternal, fmt.Sprintf("resolve row %d reference", rw.row), err)
	}
	if err := rw.sw.SetRow(ref, out); err != nil {
		return NewError(KindRender, fmt.Sprintf("write row %d", rw.row), err)
	}
	rw.row++
	return nil
}

func (rw *xlsxRowWriter) Break() error {
	if rw.closed {
		return NewError(KindInternal, "sheet row writer is closed", nil)
	}
	rw.row += tableGapRows
	return nil
}

func (rw *xlsxRowWriter) Close() error {
	if rw.closed {
		return nil
	}
	rw.closed = true
	if err := rw.sw.Flush(); err != nil {
		return NewError(KindRender, "flush sheet stream", err)
	}
	return nil
}

func freezePanes(p Position) *excelize.Panes {
	return &excelize.Panes{
		Freeze:      true,
		XSplit:      p.Col - 1,
		YSplit:      p.Row - 1,
		TopLeftCell: p.A1(),
		ActivePane:  "bottomRight",
	}
}
