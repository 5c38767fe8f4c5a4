package importer

import (
	"fmt"
	"strings"
)

// Menu actions.
const (
	MenuBound   = "bound"   // found through its theme location
	MenuFound   = "found"   // found by name
	MenuCreated = "created" // created by name
	MenuCreate  = "create"  // would be created (dry run)
	MenuSkipped = "skipped"
	MenuError   = "error"
)

// Item actions.
const (
	ItemCreated   = "created"
	ItemUpdated   = "updated"
	ItemUnchanged = "unchanged" // matched an existing item that was left as is
	ItemCreate    = "create"    // would be created (dry run)
	ItemUpdate    = "update"    // would be updated (dry run)
	ItemSkipped   = "skipped"
	ItemError     = "error"
)

// ItemResult is the outcome for one document item.
type ItemResult struct {
	Index    int    `json:"index"`
	Slug     string `json:"slug,omitempty"`
	Title    string `json:"title,omitempty"`
	ID       int64  `json:"id,omitempty"`
	ParentID int64  `json:"parent_id,omitempty"`
	Action   string `json:"action"`
	Reason   string `json:"reason,omitempty"`
}

// MenuResult is the outcome for one document menu.
type MenuResult struct {
	Name     string       `json:"name,omitempty"`
	Location string       `json:"location,omitempty"`
	MenuID   int64        `json:"menu_id,omitempty"`
	Action   string       `json:"action"`
	Reason   string       `json:"reason,omitempty"`
	Items    []ItemResult `json:"items"`
}

// Result is the outcome of an import run.
type Result struct {
	RunID  string       `json:"run_id,omitempty"`
	DryRun bool         `json:"dry_run,omitempty"`
	Menus  []MenuResult `json:"menus"`
}

// Counts tallies item outcomes across all menus.
type Counts struct {
	Menus        int `json:"menus"`
	MenusSkipped int `json:"menus_skipped"`
	Created      int `json:"created"`
	Updated      int `json:"updated"`
	Unchanged    int `json:"unchanged"`
	Skipped      int `json:"skipped"`
	Errors       int `json:"errors"`
}

// Counts tallies the result. Dry-run actions count as the action they preview.
func (r *Result) Counts() Counts {
	var c Counts
	for _, m := range r.Menus {
		switch m.Action {
		case MenuSkipped, MenuError:
			c.MenusSkipped++
		default:
			c.Menus++
		}
		for _, it := range m.Items {
			switch it.Action {
			case ItemCreated, ItemCreate:
				c.Created++
			case ItemUpdated, ItemUpdate:
				c.Updated++
			case ItemUnchanged:
				c.Unchanged++
			case ItemSkipped:
				c.Skipped++
			case ItemError:
				c.Errors++
			}
		}
	}
	return c
}

// Summary renders the counts as one line, e.g. "1 menu, 2 created, 1 skipped".
func (c Counts) Summary() string {
	parts := []string{plural(c.Menus, "menu", "menus")}
	if c.MenusSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d menus skipped", c.MenusSkipped))
	}
	for _, p := range []struct {
		n     int
		label string
	}{
		{c.Created, "created"},
		{c.Updated, "updated"},
		{c.Unchanged, "unchanged"},
		{c.Skipped, "skipped"},
		{c.Errors, "errors"},
	} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.label))
		}
	}
	return strings.Join(parts, ", ")
}

func plural(n int, singular, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, many)
}
