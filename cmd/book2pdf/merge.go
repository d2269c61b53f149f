package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	book2pdf "github.com/alnah/go-book2pdf"
)

// defaultMergeOutput is the combined file name when --output is not given.
const defaultMergeOutput = "merged.pdf"

// runMergeCmd parses flags and maps the outcome to an exit code.
func runMergeCmd(args []string, env *Environment) int {
	flags, _, err := parseMergeFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	configureLogger(flags.common, env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runMerge(ctx, flags, env); err != nil {
		log.Error(err.Error())
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runMerge combines an existing pages directory into one PDF. Order comes
// entirely from file names, so a previous run with --preserve-pages (or
// --no-combine) is all the state this needs.
func runMerge(ctx context.Context, flags *mergeFlags, env *Environment) error {
	dir := flags.dir
	if dir == "" {
		dir = filepath.Join(book2pdf.DefaultOutDir, book2pdf.PagesDirName)
	}
	output := flags.output
	if output == "" {
		output = defaultMergeOutput
	}

	svc, err := env.NewService()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(); closeErr != nil {
			log.Debug("closing browser", "err", closeErr)
		}
	}()

	if err := svc.MergeDir(ctx, dir, output); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", output)
	return nil
}
