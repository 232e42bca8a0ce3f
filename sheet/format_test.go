package sheet

import (
	"errors"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"report.xlsx":      FormatXLSX,
		"report.XLSX":      FormatXLSX,
		"/tmp/out.csv":     FormatCSV,
		"dir.v2/table.csv": FormatCSV,
	}
	for path, want := range cases {
		got, err := FormatFromPath(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if got != want {
			t.Fatalf("%s: expected %s, got %s", path, want, got)
		}
	}
}

func TestFormatFromPath_Errors(t *testing.T) {
	for _, path := range []string{"report", "report.pdf", ""} {
		_, err := FormatFromPath(path)
		if err == nil {
			t.Fatalf("%q: expected error", path)
		}
		var renderErr *Error
		if !errors.As(err, &renderErr) || renderErr.Kind != KindConfig {
			t.Fatalf("%q: expected config error, got %v", path, err)
		}
	}
}
