// Package resolver turns a menu item description into a concrete target:
// a stored page, a taxonomy term, or a URL.
package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/paths"
	"github.com/aidanlsb/navport/internal/store"
)

// Lookup is the read side of the content store the resolver needs.
type Lookup interface {
	FindPageByPath(path string) (*store.Page, error)
	FindTermByName(taxonomy, name string) (*store.Term, error)
}

// Target is a resolved menu item target.
type Target struct {
	Type     string // store.TypePostType, store.TypeTaxonomy or store.TypeCustom
	Object   string // "page", the taxonomy name, or "custom"
	ObjectID int64
	URL      string
	Title    string
}

// Key identifies what the target points at. Two targets with the same key
// point at the same thing regardless of title.
func (t Target) Key() string {
	if t.Type == store.TypeCustom {
		return store.TypeCustom + ":" + t.URL
	}
	return fmt.Sprintf("%s:%s:%d", t.Type, t.Object, t.ObjectID)
}

// Spec converts the target to the store's writable item fields.
func (t Target) Spec(parentID int64) store.ItemSpec {
	return store.ItemSpec{
		ParentID: parentID,
		Title:    t.Title,
		Type:     t.Type,
		Object:   t.Object,
		ObjectID: t.ObjectID,
		URL:      t.URL,
	}
}

// KeyOf returns the Key of an already stored item.
func KeyOf(item store.MenuItem) string {
	return Target{Type: item.Type, Object: item.Object, ObjectID: item.ObjectID, URL: item.URL}.Key()
}

// Resolver resolves item targets against a content store.
type Resolver struct {
	lookup  Lookup
	baseURL string
}

// New creates a Resolver. Relative URLs are resolved against baseURL.
func New(lookup Lookup, baseURL string) *Resolver {
	return &Resolver{lookup: lookup, baseURL: paths.NormalizeBaseURL(baseURL)}
}

// Resolve finds the target of item. Target fields are tried in the order
// page, term, url; ok is false when none of them resolves.
func (r *Resolver) Resolve(item document.ItemDef) (Target, bool, error) {
	title := strings.TrimSpace(document.Deref(item.Title))

	if item.Page != nil {
		target, ok, err := r.ResolvePage(*item.Page, title)
		if err != nil || ok {
			return target, ok, err
		}
	}

	if item.Taxonomy != nil && item.Term != nil {
		term, err := r.lookup.FindTermByName(*item.Taxonomy, *item.Term)
		if err != nil {
			return Target{}, false, fmt.Errorf("look up term %s/%s: %w", *item.Taxonomy, *item.Term, err)
		}
		if term != nil {
			return Target{
				Type:     store.TypeTaxonomy,
				Object:   term.Taxonomy,
				ObjectID: term.ID,
				Title:    firstNonEmpty(title, term.Name),
			}, true, nil
		}
	}

	if item.URL != nil && strings.TrimSpace(*item.URL) != "" {
		raw := strings.TrimSpace(*item.URL)
		return Target{
			Type:   store.TypeCustom,
			Object: store.TypeCustom,
			URL:    r.URL(raw),
			Title:  firstNonEmpty(title, raw),
		}, true, nil
	}

	return Target{}, false, nil
}

// ResolvePage resolves a page path. title overrides the page's own title
// when non-empty.
func (r *Resolver) ResolvePage(path, title string) (Target, bool, error) {
	page, err := r.lookup.FindPageByPath(path)
	if err != nil {
		return Target{}, false, fmt.Errorf("look up page %s: %w", path, err)
	}
	if page == nil {
		return Target{}, false, nil
	}
	return Target{
		Type:     store.TypePostType,
		Object:   store.ObjectPage,
		ObjectID: page.ID,
		Title:    firstNonEmpty(strings.TrimSpace(title), page.Title, page.Path),
	}, true, nil
}

// URL returns the stored form of a document URL. Values starting with "http"
// are escaped and kept absolute; anything else is resolved against the site
// base URL.
func (r *Resolver) URL(raw string) string {
	if strings.HasPrefix(raw, "http") {
		return EscapeURL(raw)
	}
	return paths.SiteURL(r.baseURL, raw)
}

var unsafeURLChars = regexp.MustCompile(`[^a-zA-Z0-9\-~+_.?#=!&;,/:%@$|*'()\[\]\x{80}-\x{10FFFF}]`)

// EscapeURL makes a URL safe to store: spaces are percent-encoded and any
// other character outside the URL-safe set is dropped. Clean URLs are
// returned unchanged.
func EscapeURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.ReplaceAll(u, " ", "%20")
	return unsafeURLChars.ReplaceAllString(u, "")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
