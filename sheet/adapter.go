package sheet

import (
	"context"
	"io"
)

// Workbook is an adapter-specific handle produced by Render.
type Workbook any

// AdapterOptions carries per-render hints into an adapter.
type AdapterOptions struct {
	Autofit bool
	CSV     CSVOptions
}

// Adapter translates the finished domain model into one output format.
// Adapters must be stateless: the same adapter value serves concurrent
// renders.
type Adapter interface {
	Render(ctx context.Context, doc *Spreadsheet, opts AdapterOptions) (Workbook, error)
	WriteTo(wb Workbook, w io.Writer) (int64, error)
}

// StreamSheet describes a sheet opened on a workbook stream.
type StreamSheet struct {
	Name         string
	ColumnWidths map[int]float64
	FreezePanes  *Position
}

// RowWriter writes one table region of a streamed sheet, one row at a
// time in strict order.
type RowWriter interface {
	WriteRow(cells []Cell) error
	// Break marks a table boundary within the sheet; the adapter applies
	// its own separation policy.
	Break() error
	Close() error
}

// WorkbookStream is the incremental write contract of streaming-capable
// adapters. Close must flush and release the handle and is safe to call
// after a failed write.
type WorkbookStream interface {
	OpenSheet(cfg StreamSheet) (RowWriter, error)
	Close() error
}

// StreamAdapter is implemented by adapters that support streaming mode.
type StreamAdapter interface {
	Adapter
	Stream(ctx context.Context, w io.Writer, opts AdapterOptions) (WorkbookStream, error)
}
