// Package book2pdf turns a published documentation website into an ordered
// collection of page PDFs and, optionally, a single combined PDF.
//
// # Quick Start
//
// Create a service, download a site, and close when done:
//
//	svc, err := book2pdf.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	report, err := svc.Download(ctx, "https://docs.example.com", book2pdf.DownloadOptions{
//	    OutDir: "output_book2pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pages rendered, combined PDF at %s\n", report.Succeeded, report.CombinedPath)
//
// # Pipeline
//
// A download run has three stages:
//
//  1. Discovery: the site's root page is loaded in headless Chrome, the
//     navigation sidebar is expanded and extracted, and the tree is
//     flattened into an ordered, deduplicated list of page refs.
//  2. Rendering: pages are rendered to PDF by a bounded pool of workers,
//     with per-page timeout, retry with exponential backoff, and one file
//     per page written as NNNN-title.pdf.
//  3. Merging: the per-page files are validated, sorted by their embedded
//     index, and concatenated into one document.
//
// The file naming convention is load-bearing: the zero-padded index prefix
// makes lexicographic directory order equal document order, so Merge can
// run standalone against any pages directory without a manifest.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := book2pdf.New(
//	    book2pdf.WithTimeout(time.Minute),
//	    book2pdf.WithConcurrency(4),
//	    book2pdf.WithMaxRetries(3),
//	)
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Set ROD_NO_SANDBOX=1 for containers and CI, and ROD_BROWSER_BIN to use a
// pre-installed Chrome binary.
package book2pdf
