package urlutil

import (
	"errors"
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"https", "https://docs.example.com/intro", nil},
		{"http", "http://localhost:3000/", nil},
		{"empty", "", ErrEmptyURL},
		{"whitespace only", "   ", ErrEmptyURL},
		{"ftp scheme", "ftp://example.com/file", ErrNotHTTP},
		{"no scheme", "docs.example.com/intro", ErrNotHTTP},
		{"garbage", "http://[::1", ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := Parse(tt.raw)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Parse(%q) error = %v", tt.raw, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if u != nil {
				t.Errorf("Parse(%q) = %v, want nil on error", tt.raw, u)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"fragment stripped", "https://Docs.Example.com/intro#usage", "https://docs.example.com/intro"},
		{"query stripped", "https://docs.example.com/intro?ref=nav", "https://docs.example.com/intro"},
		{"trailing slash trimmed", "https://docs.example.com/intro/", "https://docs.example.com/intro"},
		{"root slash kept", "https://docs.example.com/", "https://docs.example.com/"},
		{"already canonical", "https://docs.example.com/a/b", "https://docs.example.com/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(mustParse(t, tt.raw)); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	base := mustParse(t, "https://docs.example.com/docs/intro")

	tests := []struct {
		href string
		want string
	}{
		{"/api", "https://docs.example.com/api"},
		{"setup", "https://docs.example.com/docs/setup"},
		{"../other", "https://docs.example.com/other"},
		{"https://docs.example.com/abs", "https://docs.example.com/abs"},
	}

	for _, tt := range tests {
		got, err := Resolve(base, tt.href)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.href, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestSameHost(t *testing.T) {
	t.Parallel()
	base := mustParse(t, "https://docs.example.com/")

	tests := []struct {
		raw  string
		want bool
	}{
		{"https://docs.example.com/page", true},
		{"http://DOCS.EXAMPLE.COM/page", true},
		{"https://docs.example.com:8443/page", true},
		{"https://example.com/page", false},
		{"https://other.com/", false},
	}

	for _, tt := range tests {
		if got := SameHost(base, mustParse(t, tt.raw)); got != tt.want {
			t.Errorf("SameHost(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestHostSlug(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want string
	}{
		{"https://docs.example.com/", "docs-example-com"},
		{"https://Example.COM/path", "example-com"},
		{"https://localhost:3000/", "localhost"},
	}

	for _, tt := range tests {
		if got := HostSlug(mustParse(t, tt.raw)); got != tt.want {
			t.Errorf("HostSlug(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
