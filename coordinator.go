package book2pdf

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-book2pdf/internal/fileutil"
)

// retryBaseDelay is the first backoff interval; it doubles per attempt.
const retryBaseDelay = 500 * time.Millisecond

// renderAll distributes pages across a bounded pool of workers. Each worker
// takes one page end-to-end (render, write file) before picking up the
// next, so at most cfg.concurrency browser tabs exist at once. Results are
// written into a slice indexed by job position: output order never depends
// on completion order. A canceled ctx stops dispatch; jobs already running
// finish or hit their own per-attempt timeout.
func (s *Service) renderAll(ctx context.Context, pages []PageRef, pagesDir string) []RenderResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := s.cfg.concurrency
	if concurrency > len(pages) {
		concurrency = len(pages)
	}

	results := make([]RenderResult, len(pages))
	jobs := make(chan int, len(pages))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{
						Page: pages[idx],
						Err:  err,
						Kind: FailureTimeout,
					}
					continue
				}
				results[idx] = s.renderPage(ctx, pages[idx], pagesDir)
				s.observe(results[idx])
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderPage runs one page's full render lifecycle: attempt, classify,
// back off and retry while the failure kind allows it, then persist the
// PDF under the order-encoding file name.
func (s *Service) renderPage(ctx context.Context, page PageRef, pagesDir string) RenderResult {
	result := RenderResult{Page: page}
	backoff := retryBaseDelay

	maxAttempts := s.cfg.maxRetries + 1
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result.Attempts = attempt

		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
		pdfBytes, err := s.renderer.RenderPDF(attemptCtx, page.URL, s.cfg.pdf)
		cancel()

		if err == nil {
			path := filepath.Join(pagesDir, PageFileName(page.Index, page.Title))
			if writeErr := os.WriteFile(path, pdfBytes, fileutil.FilePermissions); writeErr != nil {
				result.Err = writeErr
				result.Kind = FailureUnrenderable
				return result
			}
			result.Path = path
			result.Kind = FailureNone
			return result
		}

		result.Err = err
		result.Kind = classifyRenderError(err)

		// The run-level ctx going away must not be misread as a page
		// failure worth retrying.
		if ctx.Err() != nil {
			return result
		}
		if !result.Kind.Retryable() || attempt == maxAttempts {
			return result
		}

		if sleepErr := sleepCtx(ctx, backoff); sleepErr != nil {
			return result
		}
		backoff *= 2
	}

	return result
}

// observe reports one finished page to the progress callback, if any.
func (s *Service) observe(r RenderResult) {
	if s.onResult != nil {
		s.onResult(r)
	}
}
