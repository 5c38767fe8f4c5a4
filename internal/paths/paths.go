// Package paths provides canonical helpers for page paths and site URLs:
// - page paths as stored and looked up (e.g. "about/team")
// - site-relative URLs joined onto, or stripped from, the site base URL
package paths

import (
	"strings"
)

// PagePath normalizes a page path:
// - converts '\' to '/'
// - trims surrounding whitespace and slashes
// - collapses repeated '/'
//
// Examples:
// - "/about/team/" -> "about/team"
// - "about//team"  -> "about/team"
func PagePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return strings.Trim(p, "/")
}

// NormalizeBaseURL trims whitespace and trailing slashes from a site base URL.
func NormalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

// SiteURL resolves a site-relative path against the base URL.
//
// Examples (base "https://example.com/"):
// - "/"       -> "https://example.com/"
// - "/about"  -> "https://example.com/about"
// - "contact" -> "https://example.com/contact"
func SiteURL(base, rel string) string {
	return NormalizeBaseURL(base) + "/" + strings.TrimLeft(rel, "/")
}

// RelativeURL strips the base URL prefix from u. URLs outside the site are
// returned unchanged. The result of stripping always starts with '/'.
func RelativeURL(base, u string) string {
	base = NormalizeBaseURL(base)
	if base == "" || !strings.HasPrefix(u, base) {
		return u
	}
	rest := strings.TrimPrefix(u, base)
	switch {
	case rest == "":
		return "/"
	case strings.HasPrefix(rest, "/"):
		return rest
	case strings.HasPrefix(rest, "?"), strings.HasPrefix(rest, "#"):
		return "/" + rest
	default:
		// Prefix match inside a longer host, e.g. base example.com vs example.com.au.
		return u
	}
}
