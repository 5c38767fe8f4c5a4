package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/aidanlsb/navport/internal/store"
	"github.com/aidanlsb/navport/internal/ui"
)

func TestMenuTree(t *testing.T) {
	items := []store.MenuItem{
		{ID: 1, Title: "Home", Type: store.TypeCustom, URL: "/"},
		{ID: 2, Title: "About", Type: store.TypeCustom, URL: "/about"},
		{ID: 3, ParentID: 2, Title: "Team", Type: store.TypeCustom, URL: "/about/team"},
		{ID: 4, ParentID: 3, Type: store.TypeCustom, URL: "/about/team/jobs"},
		{ID: 5, ParentID: 99, Title: "Orphan", Type: store.TypeCustom, URL: "/orphan"},
	}
	describe := func(it store.MenuItem) string { return it.URL }

	got := menuTree(items, summaryLine(describe))
	want := "- **Home** `/`\n" +
		"- **About** `/about`\n" +
		"  - **Team** `/about/team`\n" +
		"    - **(untitled)** `/about/team/jobs`\n" +
		"- **Orphan** `/orphan`\n"
	if got != want {
		t.Errorf("menuTree() =\n%s\nwant\n%s", got, want)
	}

	if got := menuTree(nil, summaryLine(describe)); got != "" {
		t.Errorf("empty menu rendered %q", got)
	}
}

func TestCodeSpan(t *testing.T) {
	tests := map[string]string{
		"/about":          "`/about`",
		"https://x.org/`": "`` https://x.org/` ``",
		"a``b`c":          "```a``b`c```",
		"":                "``",
	}
	for in, want := range tests {
		if got := codeSpan(in); got != want {
			t.Errorf("codeSpan(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSummaryLineKeepsBacktickURLInOneSpan(t *testing.T) {
	describe := func(it store.MenuItem) string { return it.URL }
	line := summaryLine(describe)(store.MenuItem{Title: "Odd", URL: "https://x.org/a`b"})

	html, err := ui.RenderHTML(line)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<code>https://x.org/a`b</code>") {
		t.Errorf("line %q rendered as %s", line, html)
	}
}

func TestLinkLine(t *testing.T) {
	href := func(it store.MenuItem) string { return it.URL }
	line := linkLine(href)

	tests := []struct {
		name string
		item store.MenuItem
		want string
	}{
		{"linked", store.MenuItem{Title: "Home", URL: "https://example.com/"}, "[Home](<https://example.com/>)"},
		{"no target", store.MenuItem{Title: "Gone"}, "Gone"},
		{"escaped", store.MenuItem{Title: "[Beta] *new*", URL: "/beta"}, `[\[Beta\] \*new\*](</beta>)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := line(tt.item); got != tt.want {
				t.Errorf("linkLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMenuLocations(t *testing.T) {
	got := menuLocations(map[string]int64{"primary": 1, "footer": 2, "mobile": 1})
	want := map[int64][]string{1: {"mobile", "primary"}, 2: {"footer"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("menuLocations() = %v, want %v", got, want)
	}
}

func TestItemHref(t *testing.T) {
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	page, _ := db.AddPage("about/team", "Team")
	term, _ := db.AddTerm("category", "Release Notes")

	base := "https://example.com/"
	if got := itemHref(db, base, store.MenuItem{Type: store.TypePostType, Object: store.ObjectPage, ObjectID: page.ID}); got != "https://example.com/about/team" {
		t.Errorf("page href = %q", got)
	}
	if got := itemHref(db, base, store.MenuItem{Type: store.TypeTaxonomy, Object: "category", ObjectID: term.ID}); got != "https://example.com/category/release-notes" {
		t.Errorf("term href = %q", got)
	}
	if got := itemHref(db, base, store.MenuItem{Type: store.TypePostType, Object: store.ObjectPage, ObjectID: 404}); got != "" {
		t.Errorf("vanished page href = %q, want empty", got)
	}
}

func TestDescribeTarget(t *testing.T) {
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	page, err := db.AddPage("about/team", "Team")
	if err != nil {
		t.Fatal(err)
	}
	term, err := db.AddTerm("category", "News")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		item store.MenuItem
		want string
	}{
		{"custom", store.MenuItem{Type: store.TypeCustom, URL: "https://example.com/"}, "https://example.com/"},
		{"page", store.MenuItem{Type: store.TypePostType, Object: store.ObjectPage, ObjectID: page.ID}, "page:about/team"},
		{"term", store.MenuItem{Type: store.TypeTaxonomy, Object: "category", ObjectID: term.ID}, "category:News"},
		{"vanished page", store.MenuItem{Type: store.TypePostType, Object: store.ObjectPage, ObjectID: 404}, "page #404 (missing)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeTarget(db, tt.item); got != tt.want {
				t.Errorf("describeTarget() = %q, want %q", got, tt.want)
			}
		})
	}
}
