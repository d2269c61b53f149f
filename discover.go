package book2pdf

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-book2pdf/internal/urlutil"
)

// firstPageIndex is where discovered pages start numbering.
// Index 0 is reserved for the generated cover page.
const firstPageIndex = 1

// htmlFetcher loads a URL in the browser and returns the rendered HTML
// after the navigation sidebar has been expanded.
type htmlFetcher interface {
	HTML(ctx context.Context, pageURL string) (string, error)
}

// Discover fetches the site's root page, extracts the navigation tree, and
// flattens it into an ordered, deduplicated list of page refs. Indexes are
// assigned in pre-order traversal; a URL seen twice keeps its first
// (shallowest) position, which also makes cyclic navigation graphs safe to
// traverse. Section headers without their own page are skipped but their
// children are still visited.
func (s *Service) Discover(ctx context.Context, rootURL string) ([]PageRef, error) {
	doc, base, err := s.loadRoot(ctx, rootURL)
	if err != nil {
		return nil, err
	}
	return s.discoverFromDoc(doc, base)
}

// loadRoot fetches rootURL through the browser, parses the rendered HTML,
// and verifies the site is a supported documentation generator.
func (s *Service) loadRoot(ctx context.Context, rootURL string) (*html.Node, *url.URL, error) {
	base, err := urlutil.Parse(rootURL)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.fetcher.HTML(ctx, rootURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRootUnreachable, err)
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRootUnreachable, err)
	}

	if !isSupportedSite(doc) {
		return nil, nil, ErrUnsupportedSite
	}
	return doc, base, nil
}

// discoverFromDoc runs extraction and flattening on an already-parsed root
// document. Download uses this to avoid fetching the root page twice.
func (s *Service) discoverFromDoc(doc *html.Node, base *url.URL) ([]PageRef, error) {
	tree, err := s.extractor.Extract(doc, base)
	if err != nil {
		return nil, err
	}

	pages := flattenNav(tree)
	if len(pages) == 0 {
		return nil, ErrNavigationNotFound
	}
	return pages, nil
}

// flattenNav walks the navigation tree in pre-order, emitting one PageRef
// per unique URL with strictly increasing, contiguous indexes. The tree is
// discarded after flattening; PageRefs are the only state later stages see.
func flattenNav(root *NavNode) []PageRef {
	visited := make(map[string]bool)
	var pages []PageRef
	index := firstPageIndex

	var walk func(n *NavNode, depth int)
	walk = func(n *NavNode, depth int) {
		if n.URL != "" && !visited[n.URL] {
			visited[n.URL] = true
			title := n.Label
			if title == "" {
				title = titleFromURL(n.URL)
			}
			pages = append(pages, PageRef{URL: n.URL, Title: title, Index: index, Depth: depth})
			index++
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}

	for _, c := range root.Children {
		walk(c, 0)
	}
	return pages
}

// titleFromURL derives a readable title from the last URL path segment,
// for pages whose navigation entry carried no text.
func titleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "index"
	}
	segment := path.Base(u.Path)
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	if segment == "" || segment == "." {
		return "index"
	}
	return strings.ReplaceAll(segment, "-", " ")
}
