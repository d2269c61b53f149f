package book2pdf

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestClassifyRenderError - Failure taxonomy
// ---------------------------------------------------------------------------

func TestClassifyRenderError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureNone},
		{"deadline", context.DeadlineExceeded, FailureTimeout},
		{"wrapped deadline", fmt.Errorf("page: %w", context.DeadlineExceeded), FailureTimeout},
		{"pdf export", ErrPDFExport, FailureUnrenderable},
		{"wrapped pdf export", fmt.Errorf("render: %w", ErrPDFExport), FailureUnrenderable},
		{"page load", ErrPageLoad, FailureTransport},
		{"page create", ErrPageCreate, FailureTransport},
		{"browser connect", ErrBrowserConnect, FailureTransport},
		{"unknown", errors.New("socket closed"), FailureTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyRenderError(tt.err); got != tt.want {
				t.Errorf("classifyRenderError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildPrintOptions - Settings translation
// ---------------------------------------------------------------------------

func TestBuildPrintOptions(t *testing.T) {
	t.Parallel()

	opts := buildPrintOptions(&PDFSettings{
		Scale:        1.5,
		MarginTop:    0.5,
		MarginRight:  0.25,
		MarginBottom: 1.0,
		MarginLeft:   0.75,
	})

	if *opts.Scale != 1.5 {
		t.Errorf("Scale = %v, want 1.5", *opts.Scale)
	}
	if *opts.MarginTop != 0.5 || *opts.MarginRight != 0.25 ||
		*opts.MarginBottom != 1.0 || *opts.MarginLeft != 0.75 {
		t.Errorf("margins = %v %v %v %v",
			*opts.MarginTop, *opts.MarginRight, *opts.MarginBottom, *opts.MarginLeft)
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground should be true")
	}
}

func TestBuildPrintOptionsNilUsesDefaults(t *testing.T) {
	t.Parallel()

	opts := buildPrintOptions(nil)
	if *opts.Scale != 0.75 {
		t.Errorf("Scale = %v, want default 0.75", *opts.Scale)
	}
	if *opts.MarginTop != 0 {
		t.Errorf("MarginTop = %v, want 0", *opts.MarginTop)
	}
}

// ---------------------------------------------------------------------------
// TestSleepCtx - Cancellation-aware sleep
// ---------------------------------------------------------------------------

func TestSleepCtxCompletes(t *testing.T) {
	t.Parallel()

	if err := sleepCtx(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepCtx() = %v, want nil", err)
	}
}

func TestSleepCtxCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleepCtx(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx() = %v, want context.Canceled", err)
	}
}
