package book2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pdfRenderer abstracts browser-based PDF export to enable testing without
// a browser. RenderPDF covers one attempt; retry policy lives in the
// coordinator.
type pdfRenderer interface {
	RenderPDF(ctx context.Context, pageURL string, settings *PDFSettings) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ pdfRenderer = (*rodRenderer)(nil)
	_ htmlFetcher = (*rodRenderer)(nil)
)

// settleDelay gives client-rendered sidebars time to hydrate and expand
// after the load event fires.
const settleDelay = 2 * time.Second

// expandSidebarJS clicks collapsed navigation categories so the full tree
// is present in the DOM before extraction. Covers old/new GitBook and
// Docusaurus markup.
const expandSidebarJS = `() => {
	const selectors = [
		'a[data-rnwrdesktop-fnigne="true"] > div[tabindex="0"]',
		'button[aria-expanded="false"]',
		'button[data-state="closed"]',
		'[role="button"][aria-expanded="false"]',
		'.menu__list-item--collapsed > .menu__link',
		'.menu__link--sublist[aria-expanded="false"]',
		'button.menu__link--sublist',
		'.theme-doc-sidebar-item-category button[aria-expanded="false"]',
		'.menu__caret',
	];
	for (const el of document.querySelectorAll(selectors.join(', '))) {
		el.click();
	}
}`

// preparePageJS expands collapsible content sections and strips
// interactive chrome (search boxes, page actions) that has no place in a
// printed document.
const preparePageJS = `() => {
	for (const el of document.querySelectorAll('div[aria-controls^="expandable-body-"]')) {
		el.click();
	}
	const removable = [
		'header + div[data-rnwrdesktop-hidden="true"]',
		'div[aria-label^="Search"]',
		'div[aria-label="Page actions"]',
	];
	for (const el of document.querySelectorAll(removable.join(', '))) {
		el.remove();
	}
}`

// rodRenderer implements pdfRenderer and htmlFetcher using go-rod.
// One browser serves all renders; each call opens its own page (tab), so
// concurrent calls are safe and bounded only by the caller's worker pool.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given per-page timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") != "" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = browser
	return browser, nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// openPage creates a tab for pageURL and waits for the load event.
// The caller must close the returned page.
func (r *rodRenderer) openPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	// Prefer the context deadline when one is set; fall back to the
	// renderer's own timeout.
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = page.Close()
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	return page, nil
}

// HTML loads pageURL, expands the navigation sidebar, waits for hydration,
// and returns the rendered document.
func (r *rodRenderer) HTML(ctx context.Context, pageURL string) (string, error) {
	page, err := r.openPage(ctx, pageURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = page.Close() }()

	// Expansion is best effort: a site without collapsible menus has
	// nothing to click.
	_, _ = page.Context(ctx).Eval(expandSidebarJS)

	if err := sleepCtx(ctx, settleDelay); err != nil {
		return "", err
	}

	content, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return content, nil
}

// RenderPDF loads pageURL and exports it as a PDF using the given settings.
func (r *rodRenderer) RenderPDF(ctx context.Context, pageURL string, settings *PDFSettings) ([]byte, error) {
	page, err := r.openPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = page.Close() }()

	_, _ = page.Context(ctx).Eval(preparePageJS)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(buildPrintOptions(settings))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFExport, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFExport, err)
	}
	return pdfBuf, nil
}

// buildPrintOptions constructs proto.PagePrintToPDF from settings.
func buildPrintOptions(settings *PDFSettings) *proto.PagePrintToPDF {
	if settings == nil {
		settings = DefaultPDFSettings()
	}
	return &proto.PagePrintToPDF{
		Scale:           floatPtr(settings.Scale),
		MarginTop:       floatPtr(settings.MarginTop),
		MarginRight:     floatPtr(settings.MarginRight),
		MarginBottom:    floatPtr(settings.MarginBottom),
		MarginLeft:      floatPtr(settings.MarginLeft),
		PrintBackground: true,
	}
}

// classifyRenderError maps a render attempt error onto the failure taxonomy.
func classifyRenderError(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ErrPDFExport):
		return FailureUnrenderable
	default:
		// Browser launch, tab creation, and navigation errors are all
		// transport-level and worth retrying.
		return FailureTransport
	}
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
