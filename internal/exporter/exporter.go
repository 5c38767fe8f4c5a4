// Package exporter reads every menu out of the content store as a menu document.
package exporter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/paths"
	"github.com/aidanlsb/navport/internal/store"
)

// Mode controls how custom item URLs are written.
type Mode string

const (
	// ModeAbsolute writes URLs as stored.
	ModeAbsolute Mode = "absolute"
	// ModeRelative strips the site base URL from URLs that start with it.
	ModeRelative Mode = "relative"
)

// Modes lists the accepted Mode values.
var Modes = []string{string(ModeAbsolute), string(ModeRelative)}

// ParseMode validates a mode name. Empty selects ModeAbsolute.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAbsolute:
		return ModeAbsolute, nil
	case ModeRelative:
		return ModeRelative, nil
	}
	return "", fmt.Errorf("invalid export mode %q (expected one of %s)", s, strings.Join(Modes, ", "))
}

// Store is the read side of the content store an export needs.
type Store interface {
	LocationBindings() (map[string]int64, error)
	ListMenus() ([]store.Menu, error)
	ListMenuItems(menuID int64) ([]store.MenuItem, error)
	GetPage(id int64) (*store.Page, error)
	GetTerm(id int64, taxonomy string) (*store.Term, error)
}

// Exporter builds menu documents from a Store.
type Exporter struct {
	store   Store
	baseURL string
	logger  *log.Logger
}

// New creates an Exporter. A nil logger discards log output.
func New(s Store, baseURL string, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Exporter{store: s, baseURL: paths.NormalizeBaseURL(baseURL), logger: logger}
}

// Export returns every stored menu in store order. Any store read failure
// aborts the export.
func (e *Exporter) Export(mode Mode) (document.MenuSet, error) {
	bindings, err := e.store.LocationBindings()
	if err != nil {
		return nil, fmt.Errorf("load location bindings: %w", err)
	}
	locations := invert(bindings)

	menus, err := e.store.ListMenus()
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	set := make(document.MenuSet, 0, len(menus))
	for _, menu := range menus {
		def := document.MenuDef{
			Location: document.StringPtr(locations[menu.ID]),
			Name:     menu.Name,
			Slug:     document.StringPtr(menu.Slug),
			Items:    []document.ItemDef{},
		}

		items, err := e.store.ListMenuItems(menu.ID)
		if err != nil {
			return nil, fmt.Errorf("list items of menu %q: %w", menu.Name, err)
		}
		for _, item := range treeOrder(items) {
			def.Items = append(def.Items, document.ItemDef{
				Slug:  document.KeyPtr(strconv.FormatInt(item.ID, 10)),
				Title: document.StringPtr(item.Title),
			})
			if item.ParentID != 0 {
				def.Items[len(def.Items)-1].Parent = document.KeyPtr(strconv.FormatInt(item.ParentID, 10))
			}
			if err := e.target(&def.Items[len(def.Items)-1], item, mode); err != nil {
				return nil, err
			}
		}

		e.logger.Debug("exported menu", "menu", menu.Name, "items", len(def.Items))
		set = append(set, def)
	}
	return set, nil
}

// target fills in the target fields of out. Items whose type is unknown or
// whose object no longer exists get no target.
func (e *Exporter) target(out *document.ItemDef, item store.MenuItem, mode Mode) error {
	switch item.Type {
	case store.TypeCustom:
		u := item.URL
		if mode == ModeRelative {
			u = paths.RelativeURL(e.baseURL, u)
		}
		out.URL = document.StringPtr(u)

	case store.TypePostType:
		if item.Object != store.ObjectPage {
			e.logger.Warn("unsupported post type, omitting target", "item", item.ID, "object", item.Object)
			return nil
		}
		page, err := e.store.GetPage(item.ObjectID)
		if err != nil {
			return fmt.Errorf("load page %d: %w", item.ObjectID, err)
		}
		if page == nil {
			e.logger.Warn("page no longer exists, omitting target", "item", item.ID, "page", item.ObjectID)
			return nil
		}
		out.Page = document.StringPtr(page.Path)

	case store.TypeTaxonomy:
		term, err := e.store.GetTerm(item.ObjectID, item.Object)
		if err != nil {
			return fmt.Errorf("load term %d: %w", item.ObjectID, err)
		}
		if term == nil {
			e.logger.Warn("term no longer exists, omitting target", "item", item.ID, "taxonomy", item.Object, "term", item.ObjectID)
			return nil
		}
		out.Taxonomy = document.StringPtr(term.Taxonomy)
		out.Term = document.StringPtr(term.Name)

	default:
		e.logger.Warn("unknown item type, omitting target", "item", item.ID, "type", item.Type)
	}
	return nil
}

// treeOrder sorts items parent-first: a pre-order walk from the roots with
// siblings kept in position order. Stored positions alone can put a child
// ahead of its parent after an update reparents it, and a parent must precede
// its children for the document to import back as the same tree. Items not
// reachable from a root (a parent cycle) follow in stored order.
func treeOrder(items []store.MenuItem) []store.MenuItem {
	present := make(map[int64]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}
	children := make(map[int64][]store.MenuItem)
	for _, it := range items {
		parent := it.ParentID
		if !present[parent] {
			parent = 0
		}
		children[parent] = append(children[parent], it)
	}

	out := make([]store.MenuItem, 0, len(items))
	seen := make(map[int64]bool, len(items))
	var walk func(parent int64)
	walk = func(parent int64) {
		for _, it := range children[parent] {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			out = append(out, it)
			walk(it.ID)
		}
	}
	walk(0)
	for _, it := range items {
		if !seen[it.ID] {
			seen[it.ID] = true
			out = append(out, it)
			walk(it.ID)
		}
	}
	return out
}

// invert maps menu ids back to a theme location. When several locations share
// a menu the alphabetically first wins so output is stable.
func invert(bindings map[string]int64) map[int64]string {
	out := make(map[int64]string, len(bindings))
	for loc, id := range bindings {
		if cur, ok := out[id]; !ok || loc < cur {
			out[id] = loc
		}
	}
	return out
}
