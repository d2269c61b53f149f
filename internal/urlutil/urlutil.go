// Package urlutil provides URL normalization and resolution helpers.
package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Sentinel errors for URL operations.
var (
	ErrEmptyURL   = errors.New("URL cannot be empty")
	ErrNotHTTP    = errors.New("URL scheme must be http or https")
	ErrParse      = errors.New("failed to parse URL")
	ErrResolution = errors.New("failed to resolve URL reference")
)

// Parse parses an absolute http(s) URL and rejects anything else.
func Parse(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: got %q", ErrNotHTTP, u.Scheme)
	}
	return u, nil
}

// Resolve resolves href against base and returns the absolute result.
func Resolve(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolution, err)
	}
	return base.ResolveReference(ref), nil
}

// Normalize returns the canonical string form of u used for deduplication:
// fragment and query stripped, host lowercased, trailing slash removed
// (except for the bare root path).
func Normalize(u *url.URL) string {
	n := *u
	n.Fragment = ""
	n.RawQuery = ""
	n.Host = strings.ToLower(n.Host)
	if n.Path != "/" {
		n.Path = strings.TrimSuffix(n.Path, "/")
	}
	return n.String()
}

// SameHost reports whether u points at the same host as base.
func SameHost(base, u *url.URL) bool {
	return strings.EqualFold(base.Hostname(), u.Hostname())
}

// HostSlug converts a URL's host into a file-name-safe slug,
// e.g. "docs.example.com" -> "docs-example-com".
func HostSlug(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "site"
	}
	return strings.ReplaceAll(host, ".", "-")
}
