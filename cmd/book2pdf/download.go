package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	book2pdf "github.com/alnah/go-book2pdf"
	"github.com/alnah/go-book2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoURL              = errors.New("no URL specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// Auto worker sizing bounds. Each worker is a browser tab, so the ceiling
// is about memory, not CPU.
const (
	minAutoWorkers = 1
	maxAutoWorkers = 8
)

// downloadParams holds the fully resolved settings for one download run.
// Precedence: CLI flag, then config file, then library default.
type downloadParams struct {
	rootURL       string
	outDir        string
	timeout       time.Duration
	workers       int
	retries       int
	pdf           *book2pdf.PDFSettings
	noCombine     bool
	preservePages bool
	noCover       bool
}

// runDownloadCmd parses flags, wires the signal context, and maps the
// outcome to an exit code.
func runDownloadCmd(args []string, env *Environment) int {
	flags, positional, err := parseDownloadFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	configureLogger(flags.common, env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runDownload(ctx, positional, flags, env); err != nil {
		log.Error(err.Error())
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runDownload orchestrates a full download run.
func runDownload(ctx context.Context, positionalArgs []string, flags *downloadFlags, env *Environment) error {
	if len(positionalArgs) == 0 {
		return ErrNoURL
	}
	rootURL := positionalArgs[0]

	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	params, err := resolveDownloadParams(rootURL, flags, cfg)
	if err != nil {
		return err
	}

	progress := newProgress(flags.common, env)

	svc, err := env.NewService(
		book2pdf.WithTimeout(params.timeout),
		book2pdf.WithConcurrency(params.workers),
		book2pdf.WithMaxRetries(params.retries),
		book2pdf.WithPDFSettings(params.pdf),
		book2pdf.WithProgress(progress.observe),
	)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.Debug("closing browser", "err", closeErr)
		}
	}()

	log.Info("Discovering pages", "url", params.rootURL)
	progress.start()
	report, err := svc.Download(ctx, params.rootURL, book2pdf.DownloadOptions{
		OutDir:        params.outDir,
		NoCombine:     params.noCombine,
		PreservePages: params.preservePages,
		NoCover:       params.noCover,
	})
	progress.stop()
	if err != nil {
		return err
	}

	printReport(report, env)
	return nil
}

// resolveDownloadParams merges CLI flags over config values and applies
// library defaults for anything still unset.
func resolveDownloadParams(rootURL string, flags *downloadFlags, cfg *config.Config) (*downloadParams, error) {
	p := &downloadParams{
		rootURL:       rootURL,
		noCombine:     flags.noCombine,
		preservePages: flags.preservePages,
		noCover:       flags.noCover || cfg.Cover.Disabled,
	}

	p.outDir = flags.outDir
	if p.outDir == "" {
		p.outDir = cfg.Output.Dir
	}
	if p.outDir == "" {
		p.outDir = book2pdf.DefaultOutDir
	}

	var err error
	p.timeout, err = resolveTimeout(flags.timeout, cfg.Render.TimeoutSeconds)
	if err != nil {
		return nil, err
	}

	p.workers, err = resolveWorkers(flags.workers, cfg.Render.Workers)
	if err != nil {
		return nil, err
	}

	p.retries = 2
	if cfg.Render.Retries != nil {
		p.retries = *cfg.Render.Retries
	}
	if flags.retries != retriesUnset {
		if flags.retries < 0 || flags.retries > config.MaxRetriesAllowed {
			return nil, fmt.Errorf("%w: retries must be between 0 and %d, got %d",
				config.ErrInvalidValue, config.MaxRetriesAllowed, flags.retries)
		}
		p.retries = flags.retries
	}

	p.pdf = buildPDFSettings(cfg)
	if err := p.pdf.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveTimeout picks the per-page timeout: CLI duration string first,
// then config seconds, then 30s.
func resolveTimeout(flagTimeout string, cfgSeconds int) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q (use a positive duration like 30s or 2m)", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	if cfgSeconds > 0 {
		return time.Duration(cfgSeconds) * time.Second, nil
	}
	return 30 * time.Second, nil
}

// resolveWorkers picks the tab count: explicit CLI value first, then
// config, then half the available CPUs clamped to [1, 8].
func resolveWorkers(flagWorkers, cfgWorkers int) (int, error) {
	n := flagWorkers
	if n == 0 {
		n = cfgWorkers
	}
	if n < 0 || n > config.MaxWorkers {
		return 0, fmt.Errorf("%w: %d (must be between 0 and %d, 0 means auto)",
			ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	if n > 0 {
		return n, nil
	}

	auto := runtime.GOMAXPROCS(0) / 2
	if auto < minAutoWorkers {
		auto = minAutoWorkers
	}
	if auto > maxAutoWorkers {
		auto = maxAutoWorkers
	}
	return auto, nil
}

// buildPDFSettings converts config PDF values to export settings,
// deferring to library defaults when unset.
func buildPDFSettings(cfg *config.Config) *book2pdf.PDFSettings {
	settings := book2pdf.DefaultPDFSettings()
	if cfg.PDF.Scale > 0 {
		settings.Scale = cfg.PDF.Scale
	}
	settings.MarginTop = cfg.PDF.MarginTop
	settings.MarginRight = cfg.PDF.MarginRight
	settings.MarginBottom = cfg.PDF.MarginBottom
	settings.MarginLeft = cfg.PDF.MarginLeft
	return settings
}

// progressUI shows per-page progress: a spinner in the default mode, a
// log line per page in verbose mode, nothing in quiet mode.
type progressUI struct {
	spin    *spinner.Spinner
	verbose bool
	done    atomic.Int64
	failed  atomic.Int64
}

func newProgress(common commonFlags, env *Environment) *progressUI {
	p := &progressUI{verbose: common.verbose}
	if !common.quiet && !common.verbose {
		p.spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(env.Stderr))
		p.spin.Suffix = " rendering pages..."
	}
	return p
}

func (p *progressUI) start() {
	if p.spin != nil {
		p.spin.Start()
	}
}

func (p *progressUI) stop() {
	if p.spin != nil {
		p.spin.Stop()
	}
}

// observe is called from render workers; it must be concurrency-safe.
func (p *progressUI) observe(r book2pdf.RenderResult) {
	done := p.done.Add(1)
	failed := p.failed.Load()
	if r.Err != nil {
		failed = p.failed.Add(1)
	}

	if p.verbose {
		if r.Err != nil {
			log.Error("Page failed", "index", r.Page.Index, "url", r.Page.URL,
				"kind", r.Kind.String(), "attempts", r.Attempts, "err", r.Err)
		} else {
			log.Debug("Page rendered", "index", r.Page.Index, "title", r.Page.Title,
				"attempts", r.Attempts)
		}
		return
	}

	if p.spin != nil {
		p.spin.Suffix = fmt.Sprintf(" rendering pages... %d done, %d failed", done, failed)
	}
}

// printReport summarizes the run. Failed pages are warnings: a partial
// book is still a book, and the exit code stays zero.
func printReport(report *book2pdf.DownloadReport, env *Environment) {
	for _, r := range report.FailedPages() {
		log.Warn("Page not included", "index", r.Page.Index, "url", r.Page.URL,
			"kind", r.Kind.String(), "attempts", r.Attempts)
	}

	log.Info("Done", "succeeded", report.Succeeded, "failed", report.Failed)
	if report.CombinedPath != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", report.CombinedPath)
	}
}
