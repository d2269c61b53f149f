package book2pdf

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/alnah/go-book2pdf/internal/slug"
)

// indexDigits is the fixed width of the zero-padded index prefix.
// Fixed-width padding makes lexicographic directory order equal document
// order, so the pages directory is its own run manifest.
const indexDigits = 4

// pageFilePattern matches page file names of the form NNNN-title.pdf.
var pageFilePattern = regexp.MustCompile(`^(\d{4})-([^/\\]+)\.pdf$`)

// PageFileName builds the file name for a rendered page:
// the zero-padded index, a hyphen, and the slugified title.
func PageFileName(index int, title string) string {
	return fmt.Sprintf("%0*d-%s.pdf", indexDigits, index, slug.Make(title))
}

// ParsePageFile extracts the order index and slug from a page file name.
// Returns ok=false for names outside the convention.
func ParsePageFile(name string) (index int, title string, ok bool) {
	m := pageFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return index, m[2], true
}
