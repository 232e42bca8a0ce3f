package sheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "":
		return "", NewError(KindConfig, fmt.Sprintf("cannot infer output format: path %q has no extension", path), nil)
	default:
		return "", NewError(KindConfig, fmt.Sprintf("cannot infer output format from extension %q", ext), nil)
	}
}

// countingWriter tracks bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
