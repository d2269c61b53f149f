package book2pdf

import (
	"bytes"
	"context"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/alnah/go-book2pdf/internal/fileutil"
	"github.com/alnah/go-book2pdf/internal/urlutil"
)

// coverPageIndex reserves the first slot in the page sequence so the
// rendered cover always sorts before every discovered page.
const coverPageIndex = 0

// coverInfo is what the cover template needs from the site's root page.
type coverInfo struct {
	Title   string
	LogoURL string
	SiteURL string
	Date    string
}

var coverTemplate = template.Must(template.New("cover").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  html, body { margin: 0; padding: 0; height: 100%; }
  body {
    display: flex;
    flex-direction: column;
    align-items: center;
    justify-content: center;
    font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    background: linear-gradient(160deg, #1a1a2e 0%, #16213e 55%, #0f3460 100%);
    color: #eaeaea;
    text-align: center;
  }
  .logo { max-width: 180px; max-height: 180px; margin-bottom: 2.5em; }
  h1 { font-size: 2.6em; font-weight: 700; margin: 0 0 0.4em; }
  .subtitle { font-size: 1.2em; color: #a8b2c1; margin: 0 0 3em; }
  .source { font-size: 0.9em; color: #7a8599; }
  .date { font-size: 0.85em; color: #5c6678; margin-top: 0.8em; }
</style>
</head>
<body>
{{if .LogoURL}}<img class="logo" src="{{.LogoURL}}" alt="logo">{{end}}
<h1>{{.Title}}</h1>
<p class="subtitle">Documentation</p>
<p class="source">{{.SiteURL}}</p>
<p class="date">{{.Date}}</p>
</body>
</html>
`))

// extractCoverInfo pulls the site title and logo from the root document.
// Title preference: <title> text, then the first <h1>, then a generic
// fallback. The logo is the first <img> whose src, alt, or class mentions
// "logo", resolved against the site base so the file:// cover page can
// still load it.
func extractCoverInfo(doc *html.Node, base *url.URL) coverInfo {
	info := coverInfo{
		Title:   "Documentation",
		SiteURL: base.String(),
		Date:    time.Now().Format("January 2, 2006"),
	}

	var h1 string
	walkNodes(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "title":
			if info.Title == "Documentation" {
				if t := collapseSpace(textContent(n)); t != "" {
					info.Title = trimTitleSuffix(t)
				}
			}
		case "h1":
			if h1 == "" {
				h1 = collapseSpace(textContent(n))
			}
		case "img":
			if info.LogoURL != "" {
				return true
			}
			src := attrValue(n, "src")
			if src == "" {
				return true
			}
			hint := strings.ToLower(src + " " + attrValue(n, "alt") + " " + attrValue(n, "class"))
			if !strings.Contains(hint, "logo") {
				return true
			}
			if resolved, err := urlutil.Resolve(base, src); err == nil {
				info.LogoURL = resolved.String()
			}
		}
		return true
	})

	if info.Title == "Documentation" && h1 != "" {
		info.Title = h1
	}
	return info
}

// trimTitleSuffix drops the "| Site Name" tail that documentation generators
// append to page titles.
func trimTitleSuffix(title string) string {
	for _, sep := range []string{" | ", " – ", " - "} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return title
}

// renderCover builds an HTML cover page from the site's root document and
// renders it to 0000-cover.pdf in pagesDir. The HTML goes through a temp
// file so the browser can load it like any other page.
func (s *Service) renderCover(ctx context.Context, doc *html.Node, base *url.URL, pagesDir string) (string, error) {
	var buf bytes.Buffer
	if err := coverTemplate.Execute(&buf, extractCoverInfo(doc, base)); err != nil {
		return "", err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(buf.String(), "html")
	if err != nil {
		return "", err
	}
	defer cleanup()

	data, err := s.renderer.RenderPDF(ctx, "file://"+tmpPath, s.cfg.pdf)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(pagesDir, PageFileName(coverPageIndex, "cover"))
	if err := os.WriteFile(outPath, data, fileutil.FilePermissions); err != nil {
		return "", err
	}
	return outPath, nil
}
