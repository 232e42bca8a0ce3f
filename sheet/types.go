package sheet

import (
	"context"
	"time"
)

// Format is the output format identifier.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// CSVOptions configures CSV output.
type CSVOptions struct {
	Delimiter rune
}

// RenderOptions configures a single render call.
type RenderOptions struct {
	Format    Format
	Streaming bool
	// Autofit column widths from content. Defaults to true in standard
	// mode; always off in streaming mode. Set AutofitSet when assigning
	// Autofit explicitly.
	Autofit    bool
	AutofitSet bool
	CSV        CSVOptions
}

func (o RenderOptions) autofit() bool {
	if o.Streaming {
		return false
	}
	if !o.AutofitSet {
		return true
	}
	return o.Autofit
}

// RenderStats captures counts for a completed render.
type RenderStats struct {
	Sheets int
	Tables int
	Rows   int64
	Bytes  int64
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// RenderEvent describes a render lifecycle observation.
type RenderEvent struct {
	Name      string
	RenderID  string
	Format    Format
	Streaming bool
	Sheets    int
	Tables    int
	Rows      int64
	Bytes     int64
	Duration  time.Duration
	ErrorKind ErrorKind
	Timestamp time.Time
}

// MetricsHook emits metrics-friendly lifecycle observations.
type MetricsHook interface {
	Emit(ctx context.Context, evt RenderEvent) error
}
