package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/paths"
	"github.com/aidanlsb/navport/internal/store"
	"github.com/aidanlsb/navport/internal/ui"
)

var menuShowHTML bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Inspect and create menus",
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List menus",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		menus, err := site.DB.ListMenus()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		bindings, err := site.DB.LocationBindings()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		locations := menuLocations(bindings)

		type row struct {
			ID        int64    `json:"id"`
			Name      string   `json:"name"`
			Slug      string   `json:"slug"`
			Locations []string `json:"locations"`
			Items     int      `json:"items"`
		}
		rows := make([]row, 0, len(menus))
		for _, m := range menus {
			items, err := site.DB.ListMenuItems(m.ID)
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			locs := locations[m.ID]
			if locs == nil {
				locs = []string{}
			}
			rows = append(rows, row{ID: m.ID, Name: m.Name, Slug: m.Slug, Locations: locs, Items: len(items)})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"menus": rows}, &Meta{Count: len(rows)})
			return nil
		}

		if len(rows) == 0 {
			fmt.Println(ui.Hint("No menus. Import a document with 'navport import <file>'."))
			return nil
		}
		t := ui.NewTable("ID", "NAME", "SLUG", "LOCATION", "ITEMS").
			StyleColumn(0, ui.Muted).
			StyleColumn(3, ui.Accent)
		for _, r := range rows {
			t.AddRow(fmt.Sprintf("%d", r.ID), r.Name, r.Slug, strings.Join(r.Locations, ", "), fmt.Sprintf("%d", r.Items))
		}
		fmt.Println(t.String())
		return nil
	},
}

var menuCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty menu",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		menu, err := site.DB.CreateMenu(args[0])
		if errors.Is(err, store.ErrMenuExists) {
			return handleError(ErrMenuExists, err, "Use 'navport menu list' to see menus")
		}
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"id": menu.ID, "name": menu.Name, "slug": menu.Slug}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created menu %s %s", ui.Bold.Render(menu.Name), ui.Hint(fmt.Sprintf("#%d", menu.ID))))
		return nil
	},
}

var menuShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a menu's item tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		menu, err := site.DB.FindMenuByName(args[0])
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		if menu == nil {
			return handleErrorMsg(ErrMenuNotFound, fmt.Sprintf("menu not found: %s", args[0]), "Use 'navport menu list' to see menus")
		}
		items, err := site.DB.ListMenuItems(menu.ID)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		describe := func(it store.MenuItem) string {
			return describeTarget(site.DB, it)
		}

		if isJSONOutput() {
			out := make([]map[string]interface{}, 0, len(items))
			for _, it := range items {
				out = append(out, map[string]interface{}{
					"id":       it.ID,
					"parent":   it.ParentID,
					"position": it.Position,
					"title":    it.Title,
					"type":     it.Type,
					"target":   describe(it),
				})
			}
			outputSuccess(map[string]interface{}{
				"id":    menu.ID,
				"name":  menu.Name,
				"items": out,
			}, &Meta{Count: len(items)})
			return nil
		}

		if menuShowHTML {
			href := func(it store.MenuItem) string { return itemHref(site.DB, site.Config.BaseURL, it) }
			html, err := ui.RenderHTML(menuTree(items, linkLine(href)))
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			fmt.Fprint(stdout, "<nav>\n"+html+"</nav>\n")
			return nil
		}

		md := "# " + menu.Name + "\n\n" + menuTree(items, summaryLine(describe))
		if len(items) == 0 {
			md += "_No items._\n"
		}

		if ui.IsTerminal(os.Stdout) {
			rendered, err := ui.RenderMarkdown(md, ui.TermWidth(os.Stdout))
			if err == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		fmt.Print(md)
		return nil
	},
}

// menuLocations inverts location bindings into menu id -> locations.
func menuLocations(bindings map[string]int64) map[int64][]string {
	out := make(map[int64][]string)
	for _, loc := range sortedKeys(bindings) {
		id := bindings[loc]
		out[id] = append(out[id], loc)
	}
	return out
}

// menuTree renders items as a nested markdown list, one line per item. Items
// whose parent is not in the list are shown at the top level.
func menuTree(items []store.MenuItem, line func(store.MenuItem) string) string {
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

	var sb strings.Builder
	var walk func(parent int64, depth int)
	walk = func(parent int64, depth int) {
		for _, it := range children[parent] {
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString("- " + line(it) + "\n")
			walk(it.ID, depth+1)
		}
	}
	walk(0, 0)
	return sb.String()
}

func itemTitle(it store.MenuItem) string {
	if it.Title == "" {
		return "(untitled)"
	}
	return it.Title
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`, "`", "\\`", `<`, `\<`)

// summaryLine is the `menu show` line: bold title and target label.
func summaryLine(describe func(store.MenuItem) string) func(store.MenuItem) string {
	return func(it store.MenuItem) string {
		out := "**" + markdownEscaper.Replace(itemTitle(it)) + "**"
		if d := describe(it); d != "" {
			out += " " + codeSpan(d)
		}
		return out
	}
}

// codeSpan wraps s in a markdown code span whose backtick fence is longer
// than any backtick run inside s.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// linkLine is the `menu show --html` line: the title linked to its URL.
func linkLine(href func(store.MenuItem) string) func(store.MenuItem) string {
	return func(it store.MenuItem) string {
		title := markdownEscaper.Replace(itemTitle(it))
		if h := href(it); h != "" {
			return "[" + title + "](<" + h + ">)"
		}
		return title
	}
}

// itemHref returns the public URL of an item, or "" when its target is gone.
func itemHref(db *store.Database, baseURL string, it store.MenuItem) string {
	switch it.Type {
	case store.TypeCustom:
		return it.URL
	case store.TypePostType:
		if p, err := db.GetPage(it.ObjectID); err == nil && p != nil {
			return paths.SiteURL(baseURL, p.Path)
		}
	case store.TypeTaxonomy:
		if t, err := db.GetTerm(it.ObjectID, it.Object); err == nil && t != nil {
			return paths.SiteURL(baseURL, it.Object+"/"+t.Slug)
		}
	}
	return ""
}

// describeTarget returns a short label for what an item points at.
func describeTarget(db *store.Database, it store.MenuItem) string {
	switch it.Type {
	case store.TypeCustom:
		return it.URL
	case store.TypePostType:
		p, err := db.GetPage(it.ObjectID)
		if err != nil || p == nil {
			return fmt.Sprintf("%s #%d (missing)", it.Object, it.ObjectID)
		}
		return "page:" + p.Path
	case store.TypeTaxonomy:
		t, err := db.GetTerm(it.ObjectID, it.Object)
		if err != nil || t == nil {
			return fmt.Sprintf("%s #%d (missing)", it.Object, it.ObjectID)
		}
		return it.Object + ":" + t.Name
	default:
		return it.Type
	}
}

func init() {
	menuShowCmd.Flags().BoolVar(&menuShowHTML, "html", false, "Print the menu as an HTML <nav> list")
	menuCmd.AddCommand(menuListCmd)
	menuCmd.AddCommand(menuCreateCmd)
	menuCmd.AddCommand(menuShowCmd)
	rootCmd.AddCommand(menuCmd)
}
