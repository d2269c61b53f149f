package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  download   Convert a documentation site to PDF")
	fmt.Fprintln(w, "  merge      Combine an existing pages directory into one PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'book2pdf help <command>' for details on a specific command.")
}

// printDownloadUsage prints usage for the download command.
func printDownloadUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2pdf download <url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every page of a documentation site to PDF, in navigation")
	fmt.Fprintln(w, "order, and combine them into a single document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  url    Root URL of the documentation site (GitBook or Docusaurus)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --outDir <dir>        Output directory (default: output_book2pdf)")
	fmt.Fprintln(w, "      --no-combine          Skip combining pages into one PDF")
	fmt.Fprintln(w, "  -p, --preserve-pages      Keep per-page PDFs after combining")
	fmt.Fprintln(w, "      --no-cover            Skip the generated cover page")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-page render timeout (default: 30s)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent browser tabs (0 = auto)")
	fmt.Fprintln(w, "      --retries <n>         Retries per retryable page failure (default: 2)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log each page as it renders")
}

// printMergeUsage prints usage for the merge command.
func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2pdf merge [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Combine page PDFs from a previous download into one document.")
	fmt.Fprintln(w, "Pages merge in file-name order (NNNN-title.pdf).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --dir <dir>           Pages directory (default: output_book2pdf/pages)")
	fmt.Fprintln(w, "  -o, --output <path>       Combined PDF path (default: merged.pdf)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log merge details")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "download":
		printDownloadUsage(env.Stdout)
	case "merge":
		printMergeUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: book2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: book2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
