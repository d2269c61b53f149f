package main

import (
	"errors"
	"os"

	book2pdf "github.com/alnah/go-book2pdf"
	"github.com/alnah/go-book2pdf/internal/config"
	"github.com/alnah/go-book2pdf/internal/urlutil"
)

// Exit codes for the book2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Download/merge completed (partial page failures included)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or URL
	ExitIO      = 3 // File system or PDF input problems
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4). ErrRootUnreachable wraps browser-side
	// fetch failures, so it lands here too.
	if errors.Is(err, book2pdf.ErrBrowserConnect) ||
		errors.Is(err, book2pdf.ErrPageCreate) ||
		errors.Is(err, book2pdf.ErrPageLoad) ||
		errors.Is(err, book2pdf.ErrPDFExport) ||
		errors.Is(err, book2pdf.ErrRootUnreachable) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, book2pdf.ErrNoInputPDFs) ||
		errors.Is(err, book2pdf.ErrInvalidPDF) ||
		errors.Is(err, book2pdf.ErrMerge) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, urlutil.ErrEmptyURL) ||
		errors.Is(err, urlutil.ErrNotHTTP) ||
		errors.Is(err, urlutil.ErrParse) ||
		errors.Is(err, book2pdf.ErrInvalidScale) ||
		errors.Is(err, book2pdf.ErrInvalidMargin) ||
		errors.Is(err, ErrNoURL) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
