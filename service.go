package book2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-book2pdf/internal/fileutil"
	"github.com/alnah/go-book2pdf/internal/urlutil"
)

// DefaultOutDir is where a download run writes its output when the caller
// does not choose a directory.
const DefaultOutDir = "output_book2pdf"

// PagesDirName is the subdirectory of the output directory that holds the
// per-page PDFs.
const PagesDirName = "pages"

// Service converts a documentation website into per-page PDFs and a single
// combined document. Create one with New, use it for one or more runs, and
// Close it to release the browser.
type Service struct {
	cfg       serviceConfig
	fetcher   htmlFetcher
	renderer  pdfRenderer
	merger    pdfMerger
	extractor Extractor
	onResult  func(RenderResult)
}

// New creates a Service with the given options. The browser is launched
// lazily on first use, so New itself never fails; browser problems surface
// from Download or Discover as ErrBrowserConnect.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			timeout:     defaultTimeout,
			concurrency: defaultConcurrency,
			maxRetries:  defaultMaxRetries,
			pdf:         DefaultPDFSettings(),
		},
		extractor: SidebarExtractor{},
		merger:    pdfcpuMerger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.pdf.Validate(); err != nil {
		return nil, err
	}

	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}
	if s.fetcher == nil {
		if hf, ok := s.renderer.(htmlFetcher); ok {
			s.fetcher = hf
		}
	}
	return s, nil
}

// Internal options used by tests to swap out the browser and merge engine.

func withRenderer(r pdfRenderer) Option {
	return func(s *Service) { s.renderer = r }
}

func withFetcher(f htmlFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

func withMerger(m pdfMerger) Option {
	return func(s *Service) { s.merger = m }
}

// Download runs the full pipeline against rootURL: discover the navigation
// order, render every page to OutDir/pages, and combine the results into
// <host-slug>-combined.pdf in OutDir. Pages that fail all their attempts
// are recorded in the report but do not abort the run; the run fails only
// when no page rendered at all. After a successful combine the per-page
// files are removed unless opts.PreservePages is set.
func (s *Service) Download(ctx context.Context, rootURL string, opts DownloadOptions) (*DownloadReport, error) {
	if opts.OutDir == "" {
		opts.OutDir = DefaultOutDir
	}

	doc, base, err := s.loadRoot(ctx, rootURL)
	if err != nil {
		return nil, err
	}

	pages, err := s.discoverFromDoc(doc, base)
	if err != nil {
		return nil, err
	}

	pagesDir := filepath.Join(opts.OutDir, PagesDirName)
	if err := os.MkdirAll(pagesDir, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := &DownloadReport{}

	if !opts.NoCover {
		cover := RenderResult{
			Page:     PageRef{URL: rootURL, Title: "Cover", Index: coverPageIndex},
			Attempts: 1,
		}
		cover.Path, cover.Err = s.renderCover(ctx, doc, base, pagesDir)
		if cover.Err != nil {
			cover.Path = ""
			cover.Kind = classifyRenderError(cover.Err)
		}
		s.observe(cover)
		report.Results = append(report.Results, cover)
	}

	pageResults := s.renderAll(ctx, pages, pagesDir)
	report.Results = append(report.Results, pageResults...)

	for _, r := range report.Results {
		if r.Err == nil {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}

	if !anySucceeded(pageResults) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		return report, ErrNoPagesRendered
	}

	if opts.NoCombine {
		return report, nil
	}

	var inputs []string
	for _, r := range report.Results {
		if r.Err == nil {
			inputs = append(inputs, r.Path)
		}
	}

	combined := filepath.Join(opts.OutDir, urlutil.HostSlug(base)+"-combined.pdf")
	if err := s.Merge(ctx, inputs, combined); err != nil {
		return report, err
	}
	report.CombinedPath = combined

	if !opts.PreservePages {
		for _, path := range inputs {
			_ = os.Remove(path)
		}
		_ = fileutil.RemoveDirIfEmpty(pagesDir)
	}
	return report, nil
}

// anySucceeded reports whether at least one content page rendered.
// The cover does not count; a combined PDF of nothing but a cover would
// be an empty book.
func anySucceeded(results []RenderResult) bool {
	for _, r := range results {
		if r.Err == nil {
			return true
		}
	}
	return false
}

// Close shuts down the browser. Safe to call multiple times.
func (s *Service) Close() error {
	return s.renderer.Close()
}
