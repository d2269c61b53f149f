package book2pdf

import (
	"fmt"
	"time"
)

// PageRef is a resolved, order-stamped identifier for one content page.
// URL is absolute and normalized (no fragment, no trailing slash).
// Index is assigned in navigation traversal order and is the sole sort
// key for merging; it survives as the file name prefix even when pages
// render out of order.
type PageRef struct {
	URL   string
	Title string
	Index int
	Depth int
}

// NavNode is one node of a site's navigation tree. Section headers may
// have no URL of their own; their children are still traversed.
type NavNode struct {
	Label    string
	URL      string
	Children []*NavNode
}

// FailureKind classifies a render failure.
type FailureKind int

const (
	// FailureNone means the render succeeded.
	FailureNone FailureKind = iota

	// FailureTimeout means an attempt exceeded the per-page timeout. Retryable.
	FailureTimeout

	// FailureTransport means a network or browser-process error. Retryable.
	FailureTransport

	// FailureUnrenderable means the page loaded but PDF export failed.
	// Not retryable; likely a content issue.
	FailureUnrenderable
)

// String returns the lowercase name of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTimeout:
		return "timeout"
	case FailureTransport:
		return "transport"
	case FailureUnrenderable:
		return "unrenderable"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Retryable reports whether another attempt may succeed.
func (k FailureKind) Retryable() bool {
	return k == FailureTimeout || k == FailureTransport
}

// RenderResult is the terminal record of one page's render lifecycle.
// Err is nil on success, in which case Path names the written PDF.
type RenderResult struct {
	Page     PageRef
	Path     string
	Err      error
	Kind     FailureKind
	Attempts int
}

// Scale and margin bounds for PDF export.
const (
	MinScale  = 0.1
	MaxScale  = 2.0
	MaxMargin = 3.0 // inches
)

// PDFSettings configures the Chrome print-to-PDF export.
// Margins are in inches.
type PDFSettings struct {
	Scale        float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
}

// DefaultPDFSettings returns the export settings used when none are given:
// 0.75 scale with zero margins, which keeps documentation layouts intact.
func DefaultPDFSettings() *PDFSettings {
	return &PDFSettings{Scale: 0.75}
}

// Validate checks that settings are within Chrome's accepted ranges.
// Returns nil if p is nil (nil means use defaults).
func (p *PDFSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Scale < MinScale || p.Scale > MaxScale {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidScale, p.Scale, MinScale, MaxScale)
	}
	for _, m := range []float64{p.MarginTop, p.MarginRight, p.MarginBottom, p.MarginLeft} {
		if m < 0 || m > MaxMargin {
			return fmt.Errorf("%w: %.2f (must be between 0 and %.2f inches)", ErrInvalidMargin, m, MaxMargin)
		}
	}
	return nil
}

// DownloadOptions controls a single download run.
type DownloadOptions struct {
	// OutDir is the output directory; per-page PDFs go to OutDir/pages.
	OutDir string

	// NoCombine skips the merge stage, leaving only the pages directory.
	NoCombine bool

	// PreservePages keeps per-page PDFs after a successful merge.
	PreservePages bool

	// NoCover skips the generated cover page.
	NoCover bool
}

// DownloadReport summarizes a download run. Results holds one entry per
// discovered page in Index order, plus the cover when one was rendered.
type DownloadReport struct {
	Results      []RenderResult
	Succeeded    int
	Failed       int
	CombinedPath string
}

// FailedPages returns the results of pages that exhausted their retries.
func (r *DownloadReport) FailedPages() []RenderResult {
	var failed []RenderResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout     time.Duration
	concurrency int
	maxRetries  int
	pdf         *PDFSettings
}

// Defaults used when no option overrides them.
const (
	defaultTimeout     = 30 * time.Second
	defaultConcurrency = 4
	defaultMaxRetries  = 2
)

// WithTimeout sets the per-page render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("book2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithConcurrency bounds the number of simultaneous browser tabs.
// Panics if n < 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic("book2pdf: WithConcurrency count must be positive")
	}
	return func(s *Service) {
		s.cfg.concurrency = n
	}
}

// WithMaxRetries sets how many times a retryable render failure is
// attempted again before it is recorded as permanent. Zero disables
// retries. Panics if n < 0.
func WithMaxRetries(n int) Option {
	if n < 0 {
		panic("book2pdf: WithMaxRetries count must not be negative")
	}
	return func(s *Service) {
		s.cfg.maxRetries = n
	}
}

// WithPDFSettings overrides the print-to-PDF export settings.
func WithPDFSettings(p *PDFSettings) Option {
	return func(s *Service) {
		s.cfg.pdf = p
	}
}

// WithExtractor replaces the navigation extraction strategy.
func WithExtractor(e Extractor) Option {
	return func(s *Service) {
		s.extractor = e
	}
}

// WithProgress registers a callback invoked once per finished page render,
// from worker goroutines. The callback must be safe for concurrent use.
func WithProgress(fn func(RenderResult)) Option {
	return func(s *Service) {
		s.onResult = fn
	}
}
