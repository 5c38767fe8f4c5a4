// Package importer reconciles a menu document with the content store.
//
// Each menu in the document goes through three steps: locate or create the
// target menu, process its items in document order, done. Items name their
// parents by symbolic slug; the slug -> stored id map is built as items are
// committed, so a parent must appear before its children. A parent that has
// not been seen yet places the child at the root instead of failing.
//
// Failures are contained: a menu that cannot be created, an item whose target
// cannot be resolved, or an item the store rejects is recorded in the Result
// and logged, and the run continues. Only reading or parsing the document is
// fatal (see InputError).
package importer

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/resolver"
	"github.com/aidanlsb/navport/internal/slugs"
	"github.com/aidanlsb/navport/internal/store"
)

// Store is the part of the content store an import reads and writes.
type Store interface {
	resolver.Lookup
	LocationBindings() (map[string]int64, error)
	FindMenuByName(name string) (*store.Menu, error)
	CreateMenu(name string) (*store.Menu, error)
	ListMenuItems(menuID int64) ([]store.MenuItem, error)
	SaveMenuItem(menuID, itemID int64, spec store.ItemSpec) (int64, error)
	AssignItemToMenu(itemID, menuID int64) error
}

// Importer imports menu documents into a Store.
type Importer struct {
	store    Store
	resolver *resolver.Resolver
	opts     Options
	logger   *log.Logger

	// Default page target, looked up on first use.
	fallbackLoaded bool
	fallback       resolver.Target
	fallbackOK     bool
}

// New creates an Importer. A nil logger discards log output.
func New(s Store, opts Options, logger *log.Logger) *Importer {
	if opts.Mode == "" {
		opts.Mode = ModeAppend
	}
	if opts.Missing == "" {
		opts.Missing = MissingSkip
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Importer{
		store:    s,
		resolver: resolver.New(s, opts.BaseURL),
		opts:     opts,
		logger:   logger,
	}
}

// ImportFile reads, parses, and imports a document. Read and parse failures
// are returned as *InputError before anything is written.
func (im *Importer) ImportFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	set, err := document.Parse(data, document.FormatFromPath(path))
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	im.logger.Debug("parsed document", "file", path, "menus", len(set))
	return im.Import(set)
}

// Import imports an already parsed document.
func (im *Importer) Import(set document.MenuSet) (*Result, error) {
	bindings, err := im.store.LocationBindings()
	if err != nil {
		return nil, fmt.Errorf("load location bindings: %w", err)
	}

	result := &Result{DryRun: im.opts.DryRun, Menus: make([]MenuResult, 0, len(set))}
	for _, def := range set {
		result.Menus = append(result.Menus, im.importMenu(def, bindings))
	}
	return result, nil
}

// menuState is the per-menu bookkeeping discarded once the menu is done.
type menuState struct {
	menuID   int64
	existing []store.MenuItem
	consumed map[int64]bool
	assigned map[string]int64 // symbolic slug -> stored item id
	held     map[string]bool  // slugs whose descendants are skipped (ModeSkip)
	nextFake int64            // placeholder ids for dry runs
}

func (im *Importer) importMenu(def document.MenuDef, bindings map[string]int64) MenuResult {
	res := MenuResult{Name: def.Name, Location: document.Deref(def.Location), Items: []ItemResult{}}
	logger := im.logger.With("menu", def.Label())

	if !im.locateMenu(def, bindings, &res) {
		if res.Action == MenuError {
			logger.Error("menu unavailable", "reason", res.Reason)
		} else {
			logger.Warn("skipping menu", "reason", res.Reason)
		}
		return res
	}
	logger.Debug("menu located", "id", res.MenuID, "action", res.Action)

	st := &menuState{
		menuID:   res.MenuID,
		consumed: make(map[int64]bool),
		assigned: make(map[string]int64),
		held:     make(map[string]bool),
	}
	if res.MenuID != 0 {
		existing, err := im.store.ListMenuItems(res.MenuID)
		if err != nil {
			res.Action = MenuError
			res.Reason = fmt.Sprintf("failed to list existing items: %v", err)
			logger.Error("menu unavailable", "reason", res.Reason)
			return res
		}
		st.existing = existing
	}

	for i, item := range def.Items {
		ir := im.importItem(st, i, item)
		switch ir.Action {
		case ItemSkipped:
			logger.Warn("skipping item", "index", i, "slug", ir.Slug, "reason", ir.Reason)
		case ItemError:
			logger.Error("item failed", "index", i, "slug", ir.Slug, "reason", ir.Reason)
		default:
			logger.Debug("item", "index", i, "slug", ir.Slug, "id", ir.ID, "parent", ir.ParentID, "action", ir.Action)
		}
		res.Items = append(res.Items, ir)
	}

	return res
}

// locateMenu binds res to a menu id. It returns false when the menu is skipped.
func (im *Importer) locateMenu(def document.MenuDef, bindings map[string]int64, res *MenuResult) bool {
	if def.HasLocation() {
		if id, ok := bindings[*def.Location]; ok {
			res.MenuID = id
			res.Action = MenuBound
			return true
		}
	}

	if def.Name == "" {
		res.Action = MenuSkipped
		if def.HasLocation() {
			res.Reason = fmt.Sprintf("location %q is not bound to a menu and no name was given", *def.Location)
		} else {
			res.Reason = "no location or name given"
		}
		return false
	}

	menu, err := im.store.FindMenuByName(def.Name)
	if err != nil {
		res.Action = MenuError
		res.Reason = fmt.Sprintf("failed to look up menu: %v", err)
		return false
	}
	if menu != nil {
		res.MenuID = menu.ID
		res.Action = MenuFound
		return true
	}

	if im.opts.DryRun {
		res.Action = MenuCreate
		return true
	}

	menu, err = im.store.CreateMenu(def.Name)
	if err != nil {
		res.Action = MenuError
		res.Reason = fmt.Sprintf("failed to create menu: %v", err)
		return false
	}
	res.MenuID = menu.ID
	res.Action = MenuCreated
	return true
}

func (im *Importer) importItem(st *menuState, index int, item document.ItemDef) ItemResult {
	ir := ItemResult{Index: index, Slug: item.Slug.String()}

	target, ok, err := im.resolver.Resolve(item)
	if err != nil {
		ir.Action = ItemError
		ir.Reason = err.Error()
		return ir
	}
	if !ok {
		var reason string
		target, ok, reason, err = im.resolveMissing(item)
		if err != nil {
			ir.Action = ItemError
			ir.Reason = err.Error()
			return ir
		}
		if !ok {
			ir.Action = ItemSkipped
			ir.Reason = reason
			return ir
		}
	}
	ir.Title = target.Title

	slug := ir.Slug
	if slug == "" {
		slug = slugs.Symbolic(target.Title)
		ir.Slug = slug
	}

	var parentID int64
	if parent := item.Parent.String(); parent != "" {
		if st.held[parent] {
			st.hold(slug)
			ir.Action = ItemSkipped
			ir.Reason = fmt.Sprintf("parent %q matched an existing item (mode skip)", parent)
			return ir
		}
		// Unknown or forward references fall back to the root level.
		parentID = st.assigned[parent]
	}

	var itemID int64
	if match := st.match(slug, target); match != nil {
		st.consumed[match.ID] = true
		switch im.opts.Mode {
		case ModeSkip:
			st.hold(slug)
			ir.ID = match.ID
			ir.Action = ItemSkipped
			ir.Reason = fmt.Sprintf("matches existing item %d (mode skip)", match.ID)
			return ir
		case ModeAppend:
			st.record(slug, match.ID)
			ir.ID = match.ID
			ir.ParentID = match.ParentID
			ir.Action = ItemUnchanged
			return ir
		case ModeUpdate:
			itemID = match.ID
		}
	}

	if im.opts.DryRun {
		ir.Action = ItemUpdate
		if itemID == 0 {
			ir.Action = ItemCreate
			itemID = st.placeholder()
		}
		ir.ID = itemID
		ir.ParentID = parentID
		st.record(slug, itemID)
		return ir
	}

	id, err := im.store.SaveMenuItem(st.menuID, itemID, target.Spec(parentID))
	if err != nil {
		ir.Action = ItemError
		ir.Reason = fmt.Sprintf("failed to save item: %v", err)
		return ir
	}
	st.record(slug, id)
	ir.ID = id
	ir.ParentID = parentID
	ir.Action = ItemCreated
	if itemID != 0 {
		ir.Action = ItemUpdated
	}

	if err := im.store.AssignItemToMenu(id, st.menuID); err != nil {
		ir.Action = ItemError
		ir.Reason = fmt.Sprintf("saved as %d but not grouped into its menu: %v", id, err)
	}
	return ir
}

// resolveMissing applies the missing-target policy to an unresolved item.
func (im *Importer) resolveMissing(item document.ItemDef) (resolver.Target, bool, string, error) {
	switch im.opts.Missing {
	case MissingCreate:
		im.logger.Warn("creating missing targets is not supported; skipping item")
		return resolver.Target{}, false, "target not found (creating targets is not supported)", nil
	case MissingDefault:
		target, ok, err := im.defaultTarget()
		if err != nil {
			return resolver.Target{}, false, "", err
		}
		if !ok {
			return resolver.Target{}, false, fmt.Sprintf("target not found and default page %q does not exist", im.opts.DefaultPage), nil
		}
		if title := document.Deref(item.Title); title != "" {
			target.Title = title
		}
		return target, true, "", nil
	default:
		return resolver.Target{}, false, "target not found", nil
	}
}

func (im *Importer) defaultTarget() (resolver.Target, bool, error) {
	if im.fallbackLoaded {
		return im.fallback, im.fallbackOK, nil
	}
	if im.opts.DefaultPage == "" {
		im.fallbackLoaded = true
		return resolver.Target{}, false, nil
	}
	target, ok, err := im.resolver.ResolvePage(im.opts.DefaultPage, "")
	if err != nil {
		return resolver.Target{}, false, err
	}
	im.fallback, im.fallbackOK, im.fallbackLoaded = target, ok, true
	return target, ok, nil
}

// match finds an unconsumed existing item that the document item refers to,
// either by slug (exports use item ids as slugs) or by target.
func (st *menuState) match(slug string, target resolver.Target) *store.MenuItem {
	if slug != "" {
		for i := range st.existing {
			it := &st.existing[i]
			if !st.consumed[it.ID] && strconv.FormatInt(it.ID, 10) == slug {
				return it
			}
		}
	}
	key := target.Key()
	for i := range st.existing {
		it := &st.existing[i]
		if !st.consumed[it.ID] && resolver.KeyOf(*it) == key {
			return it
		}
	}
	return nil
}

func (st *menuState) record(slug string, id int64) {
	if slug != "" {
		st.assigned[slug] = id
	}
}

func (st *menuState) hold(slug string) {
	if slug != "" {
		st.held[slug] = true
	}
}

// placeholder returns a negative id standing in for an item a dry run would create.
func (st *menuState) placeholder() int64 {
	st.nextFake--
	return st.nextFake
}
