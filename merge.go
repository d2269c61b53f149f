package book2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	ledongpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfMerger abstracts PDF concatenation to allow testing without real PDFs.
// Inputs are ordered file paths; the implementation must preserve order.
type pdfMerger interface {
	Merge(ctx context.Context, inputs []string, outputPath string) error
}

// Compile-time interface check.
var _ pdfMerger = pdfcpuMerger{}

// pdfcpuMerger concatenates PDFs with pdfcpu. Every input is parsed
// before the engine runs; one corrupt file fails the whole merge rather
// than silently dropping pages.
type pdfcpuMerger struct{}

func (pdfcpuMerger) Merge(ctx context.Context, inputs []string, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, input := range inputs {
		if _, err := countPDFPages(input); err != nil {
			return err
		}
	}
	if err := api.MergeCreateFile(inputs, outputPath, false, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return nil
}

// CollectPages lists the page PDFs in dir following the NNNN-title.pdf
// convention, sorted lexicographically. Zero-padding makes that order
// identical to order-index order, so the directory listing is the run
// manifest: no other state is needed to merge.
func CollectPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading pages directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, _, ok := ParsePageFile(entry.Name()); ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// countPDFPages opens path as a PDF and returns its page count.
// Used to reject corrupt inputs before the merge engine runs.
func countPDFPages(path string) (int, error) {
	f, reader, err := ledongpdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("%w: %s: document has no pages", ErrInvalidPDF, filepath.Base(path))
	}
	return n, nil
}

// Merge concatenates the given page PDFs, in slice order, into outputPath.
func (s *Service) Merge(ctx context.Context, inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return ErrNoInputPDFs
	}
	return s.merger.Merge(ctx, inputs, outputPath)
}

// MergeDir merges every conventionally named page PDF in dir into
// outputPath, ordering purely by file name. This is the standalone merge
// path: no discovery state is consulted.
func (s *Service) MergeDir(ctx context.Context, dir, outputPath string) error {
	files, err := CollectPages(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no page PDFs in %s", ErrNoInputPDFs, dir)
	}
	return s.Merge(ctx, files, outputPath)
}
