package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Engine renders templates against data through registered adapters.
// The zero-value fields fall back to sane defaults; NewEngine returns an
// engine with the built-in XLSX and CSV adapters registered.
type Engine struct {
	Adapters    *AdapterRegistry
	Logger      Logger
	Metrics     MetricsHook
	Now         func() time.Time
	IDGenerator func() string
}

// NewEngine creates an engine with the built-in adapters registered.
func NewEngine() *Engine {
	registry := NewAdapterRegistry()
	_ = registry.Register(FormatXLSX, &XLSXAdapter{})
	_ = registry.Register(FormatCSV, &CSVAdapter{})

	return &Engine{
		Adapters:    registry,
		Logger:      NopLogger{},
		Now:         time.Now,
		IDGenerator: uuid.NewString,
	}
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) renderID() string {
	if e.IDGenerator == nil {
		return uuid.NewString()
	}
	return e.IDGenerator()
}

// Render renders the template against the data and returns the encoded
// output bytes.
func (e *Engine) Render(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData, opts RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.RenderTo(ctx, tpl, data, &buf, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo renders the template against the data into w and reports
// render statistics. Output already written when an error occurs must be
// treated as invalid by the caller.
func (e *Engine) RenderTo(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData, w io.Writer, opts RenderOptions) (RenderStats, error) {
	start := e.now()
	renderID := e.renderID()
	log := e.logger()

	stats, err := e.renderTo(ctx, tpl, data, w, opts, renderID, start)
	if err != nil {
		log.Errorf("render %s failed: format=%s streaming=%v err=%v", renderID, opts.Format, opts.Streaming, err)
		e.emit(ctx, RenderEvent{
			Name:      "render.failed",
			RenderID:  renderID,
			Format:    opts.Format,
			Streaming: opts.Streaming,
			Sheets:    stats.Sheets,
			Tables:    stats.Tables,
			Rows:      stats.Rows,
			Bytes:     stats.Bytes,
			Duration:  e.now().Sub(start),
			ErrorKind: KindFromError(err),
			Timestamp: e.now(),
		})
		return stats, err
	}

	log.Infof("render %s completed: format=%s streaming=%v sheets=%d tables=%d rows=%d bytes=%d",
		renderID, opts.Format, opts.Streaming, stats.Sheets, stats.Tables, stats.Rows, stats.Bytes)
	e.emit(ctx, RenderEvent{
		Name:      "render.completed",
		RenderID:  renderID,
		Format:    opts.Format,
		Streaming: opts.Streaming,
		Sheets:    stats.Sheets,
		Tables:    stats.Tables,
		Rows:      stats.Rows,
		Bytes:     stats.Bytes,
		Duration:  e.now().Sub(start),
		Timestamp: e.now(),
	})
	return stats, nil
}

// RenderFile renders into the file at path, inferring the format from
// the file extension when opts.Format is empty. A partially written file
// is removed on error.
func (e *Engine) RenderFile(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData, path string, opts RenderOptions) error {
	if opts.Format == "" {
		format, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		opts.Format = format
	}

	f, err := os.Create(path)
	if err != nil {
		return NewError(KindConfig, fmt.Sprintf("create output file %q", path), err)
	}

	if _, err := e.RenderTo(ctx, tpl, data, f, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return NewError(KindRender, fmt.Sprintf("close output file %q", path), err)
	}
	return nil
}

func (e *Engine) renderTo(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData, w io.Writer, opts RenderOptions, renderID string, start time.Time) (RenderStats, error) {
	var stats RenderStats

	if tpl == nil {
		return stats, NewError(KindValidation, "template is required", nil)
	}
	if err := tpl.Validate(); err != nil {
		return stats, err
	}
	if data == nil {
		data = NewSpreadsheetData()
	}
	if opts.Format == "" {
		return stats, NewError(KindConfig, "output format is required", nil)
	}

	adapter, ok := e.adapters().Resolve(opts.Format)
	if !ok {
		return stats, NewError(KindConfig, fmt.Sprintf("no adapter registered for format %q (registered: %v)", opts.Format, e.adapters().Formats()), nil)
	}

	e.logger().Debugf("render %s started: format=%s streaming=%v sheets=%d", renderID, opts.Format, opts.Streaming, len(tpl.Sheets))
	e.emit(ctx, RenderEvent{
		Name:      "render.started",
		RenderID:  renderID,
		Format:    opts.Format,
		Streaming: opts.Streaming,
		Sheets:    len(tpl.Sheets),
		Timestamp: start,
	})

	adapterOpts := AdapterOptions{Autofit: opts.autofit(), CSV: opts.CSV}

	if opts.Streaming {
		sa, ok := adapter.(StreamAdapter)
		if !ok {
			return stats, NewError(KindCapability, fmt.Sprintf("adapter for format %q does not support streaming", opts.Format), nil)
		}
		return e.renderStreaming(ctx, tpl, data, w, sa, adapterOpts)
	}
	return e.renderStandard(ctx, tpl, data, w, adapter, adapterOpts)
}

func (e *Engine) renderStandard(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData, w io.Writer, adapter Adapter, opts AdapterOptions) (RenderStats, error) {
	var stats RenderStats

	doc, err := bindSpreadsheet(ctx, tpl, data)
	if err != nil {
		return stats, wrapRender(err, "bind template data")
	}

	stats.Sheets = len(doc.Sheets)
	for _, sh := range doc.Sheets {
		stats.Tables += len(sh.Tables)
		for _, table := range sh.Tables {
			stats.Rows += int64(len(table.Rows))
		}
	}

	wb, err := adapter.Render(ctx, doc, opts)
	if err != nil {
		return stats, wrapRender(err, "render workbook")
	}

	n, err := adapter.WriteTo(wb, w)
	stats.Bytes = n
	if err != nil {
		return stats, wrapRender(err, "write workbook")
	}
	return stats, nil
}

func (e *Engine) renderStreaming(ctx context.Context, tpl *SpreadsheetTemplate, data *SpreadsheetData, w io.Writer, adapter StreamAdapter, opts AdapterOptions) (RenderStats, error) {
	var stats RenderStats

	cw := &countingWriter{w: w}
	stream, err := adapter.Stream(ctx, cw, opts)
	if err != nil {
		return stats, wrapRender(err, "open workbook stream")
	}

	closed := false
	defer func() {
		if !closed {
			stream.Close()
		}
	}()

	for _, sheetTpl := range tpl.Sheets {
		sheetData, _ := data.Sheet(sheetTpl.Name)
		if err := e.streamSheet(ctx, stream, sheetTpl, sheetData, &stats); err != nil {
			return stats, err
		}
		stats.Sheets++
	}

	closed = true
	if err := stream.Close(); err != nil {
		return stats, wrapRender(err, "close workbook stream")
	}
	stats.Bytes = cw.n
	return stats, nil
}

func (e *Engine) streamSheet(ctx context.Context, stream WorkbookStream, tpl *SheetTemplate, data *SheetData, stats *RenderStats) error {
	cfg := StreamSheet{
		Name:         tpl.Name,
		ColumnWidths: sheetColumnWidths(tpl),
		FreezePanes:  sheetFreezePanes(tpl),
	}

	rw, err := stream.OpenSheet(cfg)
	if err != nil {
		return wrapRender(err, fmt.Sprintf("open sheet %q", tpl.Name))
	}

	currentRow := 1
	for i, tableTpl := range tpl.Tables {
		if i > 0 {
			if err := rw.Break(); err != nil {
				return wrapRender(err, "write table break")
			}
			currentRow += tableGapRows
		}

		if title := titleCell(tableTpl); title != nil {
			if err := rw.WriteRow([]Cell{*title}); err != nil {
				return wrapRender(err, "write title row")
			}
			currentRow++
		}
		if err := rw.WriteRow(headerCells(tableTpl)); err != nil {
			return wrapRender(err, "write header row")
		}
		currentRow++

		provider, _ := data.Table(tableTpl.Name)
		n, err := forEachDataRow(ctx, tableTpl, provider, currentRow, rw.WriteRow)
		if err != nil {
			return wrapRender(err, fmt.Sprintf("stream table %q", tableTpl.Name))
		}
		currentRow += n
		stats.Rows += int64(n)
		stats.Tables++
	}

	if err := rw.Close(); err != nil {
		return wrapRender(err, fmt.Sprintf("close sheet %q", tpl.Name))
	}
	return nil
}

func (e *Engine) adapters() *AdapterRegistry {
	if e.Adapters == nil {
		e.Adapters = NewAdapterRegistry()
	}
	return e.Adapters
}

func (e *Engine) emit(ctx context.Context, evt RenderEvent) {
	if e.Metrics == nil {
		return
	}
	if err := e.Metrics.Emit(ctx, evt); err != nil {
		e.logger().Errorf("metrics emit failed for %s: %v", evt.Name, err)
	}
}

// wrapRender classifies an error for the render path, preserving kinds
// already assigned and mapping context errors to their own kinds.
func wrapRender(err error, msg string) error {
	var renderErr *Error
	if errors.As(err, &renderErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(KindTimeout, msg, err)
	}
	if errors.Is(err, context.Canceled) {
		return NewError(KindCanceled, msg, err)
	}
	return NewError(KindRender, msg, err)
}
