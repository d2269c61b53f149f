package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// retriesUnset detects whether --retries was explicitly set.
// Zero is meaningful (no retries), so the unset sentinel is negative.
const retriesUnset = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// downloadFlags holds all flags for the download command.
type downloadFlags struct {
	common        commonFlags
	outDir        string
	noCombine     bool
	preservePages bool
	noCover       bool
	timeout       string
	workers       int
	retries       int
}

// mergeFlags holds all flags for the merge command.
type mergeFlags struct {
	common commonFlags
	dir    string
	output string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log each page as it renders")
}

// parseDownloadFlags parses download command flags and returns positional args.
func parseDownloadFlags(args []string) (*downloadFlags, []string, error) {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	f := &downloadFlags{}

	fs.StringVarP(&f.outDir, "outDir", "o", "", "output directory")
	fs.BoolVar(&f.noCombine, "no-combine", false, "skip combining pages into one PDF")
	fs.BoolVarP(&f.preservePages, "preserve-pages", "p", false, "keep per-page PDFs after combining")
	fs.BoolVar(&f.noCover, "no-cover", false, "skip the generated cover page")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page render timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent browser tabs (0 = auto)")
	fs.IntVar(&f.retries, "retries", retriesUnset, "retries per retryable page failure")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printDownloadUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseMergeFlags parses merge command flags and returns positional args.
func parseMergeFlags(args []string) (*mergeFlags, []string, error) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	f := &mergeFlags{}

	fs.StringVarP(&f.dir, "dir", "d", "", "directory holding page PDFs")
	fs.StringVarP(&f.output, "output", "o", "", "combined PDF path")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printMergeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
