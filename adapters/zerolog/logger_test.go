package sheetzerolog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-sheet/sheet"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(zerolog.New(&buf).Level(zerolog.DebugLevel))

	log.Debugf("debug %d", 1)
	log.Infof("info %s", "x")
	log.Errorf("error %v", "boom")

	out := buf.String()
	for _, want := range []string{`"level":"debug"`, "debug 1", `"level":"info"`, "info x", `"level":"error"`, "error boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %s", want, out)
		}
	}
}

func TestLogger_WiresIntoEngine(t *testing.T) {
	var buf bytes.Buffer

	engine := sheet.NewEngine()
	engine.Logger = New(zerolog.New(&buf).Level(zerolog.DebugLevel))

	tpl := &sheet.SpreadsheetTemplate{Sheets: []*sheet.SheetTemplate{{
		Name: "Data",
		Tables: []*sheet.TableTemplate{{
			Name:    "items",
			Columns: []sheet.ColumnDefinition{{Key: "name", Label: "Name"}},
		}},
	}}}

	if _, err := engine.Render(context.Background(), tpl, nil, sheet.RenderOptions{Format: sheet.FormatCSV}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "completed") {
		t.Fatalf("expected completion log, got %s", buf.String())
	}
}
