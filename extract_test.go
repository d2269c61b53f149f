package book2pdf

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// Notes:
// - Fixtures are hand-written minimal documents, one per markup family
//   (Docusaurus sidebar, GitBook aside, plain pages without a sidebar).
// - The extractor is exercised through parsed nodes, never raw strings,
//   matching how discovery feeds it.

func parseDoc(t *testing.T, content string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing base URL: %v", err)
	}
	return u
}

const docusaurusFixture = `<!DOCTYPE html>
<html>
<body>
<div id="__docusaurus">
<nav class="navbar" role="navigation"><a href="/">Home</a></nav>
<aside class="theme-doc-sidebar-container">
  <ul class="menu__list">
    <li><a href="/docs/intro">Introduction</a></li>
    <li>
      <a href="/docs/guides">Guides</a>
      <ul>
        <li><a href="/docs/guides/install">Installation</a></li>
        <li><a href="/docs/guides/config">Configuration</a></li>
      </ul>
    </li>
    <li><a href="/docs/api">API Reference</a></li>
  </ul>
</aside>
</div>
</body>
</html>`

const gitbookFixture = `<!DOCTYPE html>
<html>
<body class="gitbook-root">
<aside>
  <ul>
    <li><a href="/welcome">Welcome</a></li>
    <li>Advanced
      <ul>
        <li><a href="/advanced/hooks">Hooks</a></li>
      </ul>
    </li>
  </ul>
</aside>
</body>
</html>`

// ---------------------------------------------------------------------------
// TestSidebarExtractor_Extract - Nested sidebar trees
// ---------------------------------------------------------------------------

func TestSidebarExtractorDocusaurus(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, docusaurusFixture)
	base := mustBase(t, "https://docs.example.com/")

	tree, err := SidebarExtractor{}.Extract(doc, base)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(tree.Children) != 3 {
		t.Fatalf("top-level children = %d, want 3", len(tree.Children))
	}

	intro := tree.Children[0]
	if intro.Label != "Introduction" || intro.URL != "https://docs.example.com/docs/intro" {
		t.Errorf("first item = %q %q", intro.Label, intro.URL)
	}

	guides := tree.Children[1]
	if guides.Label != "Guides" {
		t.Errorf("second item label = %q, want Guides", guides.Label)
	}
	if len(guides.Children) != 2 {
		t.Fatalf("Guides children = %d, want 2", len(guides.Children))
	}
	if guides.Children[0].URL != "https://docs.example.com/docs/guides/install" {
		t.Errorf("nested child URL = %q", guides.Children[0].URL)
	}
}

func TestSidebarExtractorSectionHeaderWithoutURL(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, gitbookFixture)
	base := mustBase(t, "https://docs.example.com/")

	tree, err := SidebarExtractor{}.Extract(doc, base)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(tree.Children) != 2 {
		t.Fatalf("top-level children = %d, want 2", len(tree.Children))
	}

	section := tree.Children[1]
	if section.URL != "" {
		t.Errorf("section URL = %q, want empty", section.URL)
	}
	if section.Label != "Advanced" {
		t.Errorf("section label = %q, want Advanced", section.Label)
	}
	if len(section.Children) != 1 || section.Children[0].URL != "https://docs.example.com/advanced/hooks" {
		t.Errorf("section children = %+v", section.Children)
	}
}

// ---------------------------------------------------------------------------
// TestSidebarExtractor_Fallback - Flat link collection
// ---------------------------------------------------------------------------

func TestSidebarExtractorFallbackToFlatLinks(t *testing.T) {
	t.Parallel()

	fixture := `<html><body class="gitbook-root">
	<main>
	  <a href="/one">One</a>
	  <a href="/two">Two</a>
	  <a href="/one">One again</a>
	  <a href="https://other-host.com/page">External</a>
	  <a href="/assets/logo.png">Logo</a>
	  <a href="#section">Anchor</a>
	  <a href="mailto:a@b.c">Mail</a>
	</main>
	</body></html>`

	doc := parseDoc(t, fixture)
	base := mustBase(t, "https://docs.example.com/")

	tree, err := SidebarExtractor{}.Extract(doc, base)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	var urls []string
	for _, c := range tree.Children {
		urls = append(urls, c.URL)
	}
	want := []string{"https://docs.example.com/one", "https://docs.example.com/two"}
	if len(urls) != len(want) {
		t.Fatalf("fallback URLs = %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("fallback URL[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestSidebarExtractorNoLinks(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<html><body><p>nothing here</p></body></html>`)
	base := mustBase(t, "https://docs.example.com/")

	_, err := SidebarExtractor{}.Extract(doc, base)
	if !errors.Is(err, ErrNavigationNotFound) {
		t.Errorf("Extract() error = %v, want ErrNavigationNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestEligibleHref - Link filtering
// ---------------------------------------------------------------------------

func TestEligibleHref(t *testing.T) {
	t.Parallel()
	base := mustBase(t, "https://docs.example.com/docs/intro")

	tests := []struct {
		name   string
		href   string
		want   string
		wantOK bool
	}{
		{"relative path", "/docs/api", "https://docs.example.com/docs/api", true},
		{"relative to page", "config", "https://docs.example.com/docs/config", true},
		{"fragment stripped", "/docs/api#usage", "https://docs.example.com/docs/api", true},
		{"query stripped", "/docs/api?ref=nav", "https://docs.example.com/docs/api", true},
		{"trailing slash trimmed", "/docs/api/", "https://docs.example.com/docs/api", true},
		{"pure fragment", "#top", "", false},
		{"javascript scheme", "javascript:void(0)", "", false},
		{"mailto", "mailto:x@y.z", "", false},
		{"cross host", "https://github.com/example/repo", "", false},
		{"asset path", "/assets/diagram.svg", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := &html.Node{
				Type: html.ElementNode,
				Data: "a",
				Attr: []html.Attribute{{Key: "href", Val: tt.href}},
			}
			got, ok := eligibleHref(a, base)
			if ok != tt.wantOK {
				t.Fatalf("eligibleHref(%q) ok = %v, want %v", tt.href, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("eligibleHref(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsSupportedSite - Generator detection
// ---------------------------------------------------------------------------

func TestIsSupportedSite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"docusaurus root div", `<html><body><div id="__docusaurus"></div></body></html>`, true},
		{"gitbook body class", `<html><body class="gitbook-root"></body></html>`, true},
		{"navbar nav", `<html><body><nav class="navbar"></nav></body></html>`, true},
		{"navigation role", `<html><body><nav role="navigation"></nav></body></html>`, true},
		{"docusaurus script", `<html><head><script src="/js/docusaurus.main.js"></script></head><body></body></html>`, true},
		{"gitbook link", `<html><body><a href="https://app.gitbook.io/x">powered by</a></body></html>`, true},
		{"plain page", `<html><body><h1>Hello</h1><a href="/x">x</a></body></html>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := parseDoc(t, tt.content)
			if got := isSupportedSite(doc); got != tt.want {
				t.Errorf("isSupportedSite() = %v, want %v", got, tt.want)
			}
		})
	}
}
