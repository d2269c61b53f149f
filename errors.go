package book2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Discovery errors. These abort the run before any rendering.
	ErrRootUnreachable    = errors.New("failed to load root page")
	ErrUnsupportedSite    = errors.New("not a supported documentation website (GitBook or Docusaurus)")
	ErrNavigationNotFound = errors.New("no navigation links found")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFExport      = errors.New("PDF export failed")

	// Render run errors.
	ErrNoPagesRendered = errors.New("no pages rendered successfully")

	// Merge errors. These are fatal to the merge step only.
	ErrNoInputPDFs = errors.New("no PDF files to merge")
	ErrInvalidPDF  = errors.New("not a valid PDF file")
	ErrMerge       = errors.New("PDF merge failed")

	// Settings validation errors.
	ErrInvalidScale  = errors.New("invalid scale")
	ErrInvalidMargin = errors.New("invalid margin")
)
