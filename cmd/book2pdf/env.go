package main

import (
	"context"
	"io"
	"os"
	"time"

	book2pdf "github.com/alnah/go-book2pdf"
)

// Downloader is the slice of the book2pdf service the CLI depends on.
type Downloader interface {
	Download(ctx context.Context, rootURL string, opts book2pdf.DownloadOptions) (*book2pdf.DownloadReport, error)
	MergeDir(ctx context.Context, dir, outputPath string) error
	Close() error
}

// Compile-time interface implementation check.
var _ Downloader = (*book2pdf.Service)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	NewService func(opts ...book2pdf.Option) (Downloader, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewService: func(opts ...book2pdf.Option) (Downloader, error) {
			return book2pdf.New(opts...)
		},
	}
}
