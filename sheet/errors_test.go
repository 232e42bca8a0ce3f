package sheet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewError(KindRender, "write workbook", cause)

	if err.Error() != "write workbook: boom" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected unwrap to reach the cause")
	}
}

func TestAsGoError_CategoryMapping(t *testing.T) {
	cases := []struct {
		kind     ErrorKind
		category errorslib.Category
		code     string
	}{
		{KindValidation, errorslib.CategoryValidation, "validation"},
		{KindConfig, errorslib.CategoryValidation, "config"},
		{KindCapability, errorslib.CategoryOperation, "capability"},
		{KindNotFound, errorslib.CategoryNotFound, "not_found"},
		{KindRender, errorslib.CategoryOperation, "render"},
		{KindTimeout, errorslib.CategoryOperation, "timeout"},
		{KindCanceled, errorslib.CategoryOperation, "canceled"},
		{KindInternal, errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(NewError(tc.kind, "msg", nil))
		if mapped.Category != tc.category {
			t.Fatalf("kind %s: expected category %s, got %s", tc.kind, tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("kind %s: expected text code %s, got %s", tc.kind, tc.code, mapped.TextCode)
		}
	}
}

func TestAsGoError_ContextErrors(t *testing.T) {
	if mapped := AsGoError(context.DeadlineExceeded); mapped.TextCode != "timeout" {
		t.Fatalf("expected timeout, got %s", mapped.TextCode)
	}
	if mapped := AsGoError(context.Canceled); mapped.TextCode != "canceled" {
		t.Fatalf("expected canceled, got %s", mapped.TextCode)
	}
	if mapped := AsGoError(nil); mapped != nil {
		t.Fatalf("expected nil mapping for nil error")
	}
}

func TestKindFromError(t *testing.T) {
	if kind := KindFromError(NewError(KindConfig, "msg", nil)); kind != KindConfig {
		t.Fatalf("expected config, got %s", kind)
	}
	if kind := KindFromError(fmt.Errorf("plain")); kind != KindInternal {
		t.Fatalf("expected internal, got %s", kind)
	}
	if kind := KindFromError(context.Canceled); kind != KindCanceled {
		t.Fatalf("expected canceled, got %s", kind)
	}
	if kind := KindFromError(nil); kind != "" {
		t.Fatalf("expected empty kind, got %s", kind)
	}
}
