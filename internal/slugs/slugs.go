// Package slugs provides canonical slugification helpers used across navport.
//
// There are two slugging strategies:
//   - Symbolic slugs: document-local keys derived from an item title when the
//     document does not name one. Only used to link children to parents.
//   - Name slugs: the stored slug of a menu or term record, built on gosimple/slug.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// Symbolic derives a symbolic item key from a title: lowercased, every run of
// non-alphanumerics collapsed to a single dash, no leading or trailing dash.
func Symbolic(title string) string {
	if s := dashed(goslug.Make(title)); s != "" {
		return s
	}
	return dashed(title)
}

// Name converts a menu or term name to the slug stored alongside it.
func Name(name string) string {
	name = strings.TrimSpace(name)
	slugged := goslug.Make(name)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}
	return slugged
}

// dashed is the fallback for input gosimple/slug reduces to nothing. It keeps
// letters and digits in any script.
func dashed(text string) string {
	var result strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && result.Len() > 0 {
				result.WriteRune('-')
				prevDash = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}
