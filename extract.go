package book2pdf

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-book2pdf/internal/urlutil"
)

// Extractor turns a parsed root document into a navigation tree.
// Documentation-site generators vary in markup, so extraction is a
// pluggable strategy; the default SidebarExtractor covers GitBook and
// Docusaurus style sidebars. Implementations must not retain doc.
type Extractor interface {
	Extract(doc *html.Node, base *url.URL) (*NavNode, error)
}

// SidebarExtractor extracts the navigation tree from the sidebar element,
// preferring the most specific container it can find and falling back to
// every same-host link in document order when no sidebar exists.
type SidebarExtractor struct{}

// Compile-time interface check.
var _ Extractor = SidebarExtractor{}

// Extract locates the sidebar container and builds a NavNode tree from its
// nested list structure. The returned root node carries no URL; its
// children are the top-level navigation entries.
func (SidebarExtractor) Extract(doc *html.Node, base *url.URL) (*NavNode, error) {
	root := &NavNode{}

	if container := findSidebarContainer(doc); container != nil {
		collectItems(container, root, base)
	}

	// No sidebar, or a sidebar with no usable links: fall back to every
	// eligible link in document order, as a flat tree.
	if countLinks(root) == 0 {
		root.Children = nil
		collectFlatLinks(doc, root, base)
	}

	if countLinks(root) == 0 {
		return nil, ErrNavigationNotFound
	}
	return root, nil
}

// Container preference, most specific first. Lower rank wins; ties go to
// the earlier element in document order.
func containerRank(n *html.Node) int {
	if n.Type != html.ElementNode {
		return -1
	}
	class := attrValue(n, "class")
	switch {
	case strings.Contains(class, "theme-doc-sidebar"):
		return 0
	case n.Data == "aside":
		return 1
	case strings.Contains(class, "sidebar"):
		return 2
	case strings.Contains(class, "menu"):
		return 3
	case n.Data == "nav":
		return 4
	}
	return -1
}

// findSidebarContainer returns the highest-priority navigation container.
func findSidebarContainer(doc *html.Node) *html.Node {
	var best *html.Node
	bestRank := int(^uint(0) >> 1)

	walkNodes(doc, func(n *html.Node) bool {
		if r := containerRank(n); r >= 0 && r < bestRank {
			best = n
			bestRank = r
		}
		return true
	})
	return best
}

// collectItems builds NavNodes from the <li> elements of a list container,
// descending through wrapper elements that are not list items themselves.
func collectItems(n *html.Node, parent *NavNode, base *url.URL) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == "li" {
			if node := buildItem(c, base); node != nil {
				parent.Children = append(parent.Children, node)
			}
			continue
		}
		collectItems(c, parent, base)
	}
}

// buildItem converts one <li> into a NavNode. The item's first anchor
// provides label and (when same-host) URL; nested lists become children.
// Items carrying neither text nor links are dropped.
func buildItem(li *html.Node, base *url.URL) *NavNode {
	node := &NavNode{}

	var scan func(n *html.Node)
	scan = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "ul", "ol":
				collectItems(c, node, base)
			case "a":
				if node.Label == "" {
					node.Label = collapseSpace(textContent(c))
				}
				if node.URL == "" {
					if href, ok := eligibleHref(c, base); ok {
						node.URL = href
					}
				}
			default:
				scan(c)
			}
		}
	}
	scan(li)

	if node.Label == "" {
		node.Label = firstOwnText(li)
	}
	if node.Label == "" && node.URL == "" && len(node.Children) == 0 {
		return nil
	}
	return node
}

// collectFlatLinks appends one child per eligible anchor in document order.
// Duplicate URLs are dropped here so the flat fallback mirrors what a
// deduplicated sidebar would produce.
func collectFlatLinks(doc *html.Node, root *NavNode, base *url.URL) {
	seen := make(map[string]bool)
	walkNodes(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := eligibleHref(n, base); ok && !seen[href] {
				seen[href] = true
				root.Children = append(root.Children, &NavNode{
					Label: collapseSpace(textContent(n)),
					URL:   href,
				})
			}
		}
		return true
	})
}

// eligibleHref resolves an anchor's href and reports whether it points at
// a content page: same host, no pure-fragment or scheme links, no asset
// paths. The returned URL is normalized.
func eligibleHref(a *html.Node, base *url.URL) (string, bool) {
	href := strings.TrimSpace(attrValue(a, "href"))
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return "", false
		}
	}

	u, err := urlutil.Resolve(base, href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !urlutil.SameHost(base, u) {
		return "", false
	}
	if strings.Contains(u.Path, "/assets/") {
		return "", false
	}
	return urlutil.Normalize(u), true
}

// countLinks returns the number of nodes with URLs in the tree.
func countLinks(n *NavNode) int {
	count := 0
	if n.URL != "" {
		count++
	}
	for _, c := range n.Children {
		count += countLinks(c)
	}
	return count
}

// ---------------------------------------------------------------------------
// Site detection
// ---------------------------------------------------------------------------

// isSupportedSite reports whether the document carries GitBook or
// Docusaurus markers. Matching any one marker is enough.
func isSupportedSite(doc *html.Node) bool {
	supported := false
	walkNodes(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		class := attrValue(n, "class")
		switch n.Data {
		case "body":
			if strings.Contains(class, "gitbook-root") || strings.Contains(class, "theme-") {
				supported = true
			}
		case "div":
			if attrValue(n, "id") == "__docusaurus" ||
				strings.Contains(class, "docusaurus") ||
				strings.Contains(class, "scroll-nojump") ||
				strings.Contains(class, "navbar__logo") {
				supported = true
			}
		case "nav":
			if attrValue(n, "role") == "navigation" || strings.Contains(class, "navbar") {
				supported = true
			}
		case "a":
			if strings.Contains(attrValue(n, "href"), "gitbook.io") {
				supported = true
			}
		case "script":
			if strings.Contains(attrValue(n, "src"), "docusaurus") {
				supported = true
			} else if n.FirstChild != nil && n.FirstChild.Type == html.TextNode &&
				strings.Contains(n.FirstChild.Data, "docusaurus") {
				supported = true
			}
		}
		return !supported
	})
	return supported
}

// ---------------------------------------------------------------------------
// HTML node helpers
// ---------------------------------------------------------------------------

// walkNodes visits nodes in pre-order; visit returning false stops descent.
func walkNodes(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	walkNodes(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// firstOwnText returns the first non-empty text directly under n,
// skipping nested lists (those belong to child items).
func firstOwnText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			continue
		}
		if c.Type == html.TextNode {
			if t := collapseSpace(c.Data); t != "" {
				return t
			}
			continue
		}
		if t := firstOwnText(c); t != "" {
			return t
		}
	}
	return ""
}

// collapseSpace trims and collapses runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
