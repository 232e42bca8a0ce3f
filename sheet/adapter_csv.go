package sheet

import (
	"context"
	"encoding/csv"
	"io"
)

// CSVAdapter renders CSV output. Workbook structure flattens to a single
// stream: each table becomes a region of title row, header row and data
// rows, with one blank row between consecutive regions. Formula cells
// fall back to their cached value. Styling does not survive.
type CSVAdapter struct{}

// Render captures the document; CSV serialization happens in WriteTo.
func (a *CSVAdapter) Render(ctx context.Context, doc *Spreadsheet, opts AdapterOptions) (Workbook, error) {
	return &csvWorkbook{doc: doc, opts: opts.CSV}, nil
}

// WriteTo flattens the captured document to w.
func (a *CSVAdapter) WriteTo(wb Workbook, w io.Writer) (int64, error) {
	cwb, ok := wb.(*csvWorkbook)
	if !ok {
		return 0, NewError(KindInternal, "unexpected workbook type", nil)
	}

	cw := &countingWriter{w: w}
	em := newCSVEmitter(cw, cwb.opts)

	for _, sh := range cwb.doc.Sheets {
		for _, table := range sh.Tables {
			if err := writeCSVTable(em, table); err != nil {
				return cw.n, err
			}
		}
	}

	if err := em.flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func writeCSVTable(em *csvEmitter, table *Table) error {
	em.markBreak()

	if table.HasTitle() {
		if err := em.writeCells([]Cell{*table.Title}); err != nil {
			return err
		}
	}
	if table.HasHeaders() {
		if err := em.writeCells(table.Headers); err != nil {
			return err
		}
	}
	for _, cells := range table.Rows {
		if err := em.writeCells(cells); err != nil {
			return err
		}
	}
	return nil
}

// Stream opens an incremental CSV writer over w.
func (a *CSVAdapter) Stream(ctx context.Context, w io.Writer, opts AdapterOptions) (WorkbookStream, error) {
	return &csvStream{em: newCSVEmitter(w, opts.CSV)}, nil
}

type csvWorkbook struct {
	doc  *Spreadsheet
	opts CSVOptions
}

// csvEmitter serializes records with region separation. A blank line is
// emitted lazily before the next record, so separators appear only
// between non-empty regions and never trail the output.
type csvEmitter struct {
	raw     io.Writer
	w       *csv.Writer
	wrote   bool
	pending bool
}

func newCSVEmitter(w io.Writer, opts CSVOptions) *csvEmitter {
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	return &csvEmitter{raw: w, w: cw}
}

// markBreak requests a blank separator line before the next record.
func (em *csvEmitter) markBreak() {
	if em.wrote {
		em.pending = true
	}
}

func (em *csvEmitter) writeCells(cells []Cell) error {
	record := make([]string, len(cells))
	for i, cell := range cells {
		record[i] = cell.Value.String()
	}
	return em.writeRecord(record)
}

func (em *csvEmitter) writeRecord(record []string) error {
	if em.pending {
		em.pending = false
		em.w.Flush()
		if err := em.w.Error(); err != nil {
			return NewError(KindRender, "write csv record", err)
		}
		if _, err := em.raw.Write([]byte("\n")); err != nil {
			return NewError(KindRender, "write csv separator", err)
		}
	}
	if err := em.w.Write(record); err != nil {
		return NewError(KindRender, "write csv record", err)
	}
	em.wrote = true
	return nil
}

func (em *csvEmitter) flush() error {
	em.w.Flush()
	if err := em.w.Error(); err != nil {
		return NewError(KindRender, "flush csv output", err)
	}
	return nil
}

type csvStream struct {
	em     *csvEmitter
	closed bool
}

func (s *csvStream) OpenSheet(cfg StreamSheet) (RowWriter, error) {
	if s.closed {
		return nil, NewError(KindInternal, "workbook stream is closed", nil)
	}
	s.em.markBreak()
	return &csvRowWriter{em: s.em}, nil
}

func (s *csvStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.em.flush()
}

type csvRowWriter struct {
	em     *csvEmitter
	closed bool
}

func (rw *csvRowWriter) WriteRow(cells []Cell) error {
	if rw.closed {
		return NewError(KindInternal, "sheet row writer is closed", nil)
	}
	return rw.em.writeCells(cells)
}

func (rw *csvRowWriter) Break() error {
	if rw.closed {
		return NewError(KindInternal, "sheet row writer is closed", nil)
	}
	rw.em.markBreak()
	return nil
}

func (rw *csvRowWriter) Close() error {
	rw.closed = true
	return rw.em.flush()
}
