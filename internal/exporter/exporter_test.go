package exporter

import (
	"strconv"
	"testing"

	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/importer"
	"github.com/aidanlsb/navport/internal/store"
)

const baseURL = "https://example.com"

func openTestDB(t *testing.T) *store.Database {
	t.Helper()
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seed builds a Main menu bound to "primary" plus an unbound Footer.
func seed(t *testing.T, db *store.Database) (main *store.Menu, ids []int64) {
	t.Helper()
	page, err := db.AddPage("about/team", "Our Team")
	if err != nil {
		t.Fatal(err)
	}
	term, err := db.AddTerm("category", "News")
	if err != nil {
		t.Fatal(err)
	}
	main, err = db.CreateMenu("Main Menu")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateMenu("Footer"); err != nil {
		t.Fatal(err)
	}
	if err := db.BindLocation("primary", main.ID); err != nil {
		t.Fatal(err)
	}

	add := func(spec store.ItemSpec) int64 {
		t.Helper()
		id, err := db.SaveMenuItem(main.ID, 0, spec)
		if err != nil {
			t.Fatal(err)
		}
		if err := db.AssignItemToMenu(id, main.ID); err != nil {
			t.Fatal(err)
		}
		return id
	}
	home := add(store.ItemSpec{Title: "Home", Type: store.TypeCustom, URL: baseURL + "/"})
	team := add(store.ItemSpec{ParentID: home, Title: "Team", Type: store.TypePostType, Object: store.ObjectPage, ObjectID: page.ID})
	news := add(store.ItemSpec{ParentID: home, Title: "News", Type: store.TypeTaxonomy, Object: "category", ObjectID: term.ID})
	ext := add(store.ItemSpec{Title: "Elsewhere", Type: store.TypeCustom, URL: "https://other.org/x"})
	return main, []int64{home, team, news, ext}
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func TestExport(t *testing.T) {
	db := openTestDB(t)
	_, ids := seed(t, db)

	set, err := New(db, baseURL, nil).Export(ModeAbsolute)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 menus, got %d", len(set))
	}

	footer, main := set[0], set[1]
	if footer.Name != "Footer" || footer.Location != nil || len(footer.Items) != 0 || footer.Items == nil {
		t.Errorf("unexpected footer: %+v", footer)
	}
	if main.Name != "Main Menu" || document.Deref(main.Location) != "primary" || document.Deref(main.Slug) != "main-menu" {
		t.Errorf("unexpected main menu header: %+v", main)
	}
	if len(main.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(main.Items))
	}

	home, team, news, ext := main.Items[0], main.Items[1], main.Items[2], main.Items[3]
	if home.Slug.String() != id(ids[0]) || home.Parent != nil || document.Deref(home.URL) != baseURL+"/" {
		t.Errorf("unexpected home item: %+v", home)
	}
	if team.Parent.String() != id(ids[0]) || document.Deref(team.Page) != "about/team" || team.URL != nil {
		t.Errorf("unexpected team item: %+v", team)
	}
	if document.Deref(news.Taxonomy) != "category" || document.Deref(news.Term) != "News" {
		t.Errorf("unexpected news item: %+v", news)
	}
	if document.Deref(ext.URL) != "https://other.org/x" {
		t.Errorf("unexpected external item: %+v", ext)
	}
}

func TestExportRelative(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	set, err := New(db, baseURL+"/", nil).Export(ModeRelative)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	items := set[1].Items
	if got := document.Deref(items[0].URL); got != "/" {
		t.Errorf("site url = %q, want /", got)
	}
	if got := document.Deref(items[3].URL); got != "https://other.org/x" {
		t.Errorf("external url = %q, want it unchanged", got)
	}
}

func TestExportOmitsVanishedTargets(t *testing.T) {
	db := openTestDB(t)
	menu, err := db.CreateMenu("Main")
	if err != nil {
		t.Fatal(err)
	}
	for _, spec := range []store.ItemSpec{
		{Title: "Gone page", Type: store.TypePostType, Object: store.ObjectPage, ObjectID: 404},
		{Title: "Gone term", Type: store.TypeTaxonomy, Object: "category", ObjectID: 404},
		{Title: "Odd", Type: "post_type_archive", Object: "event"},
	} {
		itemID, err := db.SaveMenuItem(menu.ID, 0, spec)
		if err != nil {
			t.Fatal(err)
		}
		if err := db.AssignItemToMenu(itemID, menu.ID); err != nil {
			t.Fatal(err)
		}
	}

	set, err := New(db, baseURL, nil).Export(ModeAbsolute)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	for _, item := range set[0].Items {
		if item.Page != nil || item.Term != nil || item.Taxonomy != nil || item.URL != nil {
			t.Errorf("expected no target fields, got %+v", item)
		}
		if item.Title == nil || item.Slug == nil {
			t.Errorf("slug and title should still be written: %+v", item)
		}
	}
}

type shape struct {
	title, target, parent string
}

func shapeOf(t *testing.T, db *store.Database, name string) []shape {
	t.Helper()
	menu, err := db.FindMenuByName(name)
	if err != nil || menu == nil {
		t.Fatalf("menu %q not found: %v", name, err)
	}
	items, err := db.ListMenuItems(menu.ID)
	if err != nil {
		t.Fatal(err)
	}
	titles := map[int64]string{}
	for _, it := range items {
		titles[it.ID] = it.Title
	}
	out := make([]shape, 0, len(items))
	for _, it := range items {
		target := it.URL
		switch it.Type {
		case store.TypePostType:
			page, _ := db.GetPage(it.ObjectID)
			target = "page:" + page.Path
		case store.TypeTaxonomy:
			term, _ := db.GetTerm(it.ObjectID, it.Object)
			target = "term:" + term.Taxonomy + "/" + term.Name
		}
		out = append(out, shape{title: it.Title, target: target, parent: titles[it.ParentID]})
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeAbsolute, ModeRelative} {
		t.Run(string(mode), func(t *testing.T) {
			src := openTestDB(t)
			seed(t, src)

			set, err := New(src, baseURL, nil).Export(mode)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			data, err := document.Serialize(set, document.FormatYAML)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			parsed, err := document.Parse(data, document.FormatYAML)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			dst := openTestDB(t)
			if _, err := dst.AddPage("about/team", "Our Team"); err != nil {
				t.Fatal(err)
			}
			if _, err := dst.AddTerm("category", "News"); err != nil {
				t.Fatal(err)
			}
			res, err := importer.New(dst, importer.Options{BaseURL: baseURL}, nil).Import(parsed)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if c := res.Counts(); c.Created != 4 || c.Skipped != 0 || c.Errors != 0 {
				t.Fatalf("unexpected counts: %+v", c)
			}

			want, got := shapeOf(t, src, "Main Menu"), shapeOf(t, dst, "Main Menu")
			if len(got) != len(want) {
				t.Fatalf("got %d items, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestRoundTripIntoSameStoreIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	set, err := New(db, baseURL, nil).Export(ModeAbsolute)
	if err != nil {
		t.Fatal(err)
	}
	for _, mode := range []importer.Mode{importer.ModeAppend, importer.ModeUpdate} {
		res, err := importer.New(db, importer.Options{Mode: mode, BaseURL: baseURL}, nil).Import(set)
		if err != nil {
			t.Fatalf("Import(%s) error = %v", mode, err)
		}
		if c := res.Counts(); c.Created != 0 {
			t.Errorf("mode %s created %d items, want 0", mode, c.Created)
		}
	}
	if stats, _ := db.Stats(); stats.MenuItemCount != 4 {
		t.Errorf("expected 4 stored items, got %d", stats.MenuItemCount)
	}
}

func TestTreeOrder(t *testing.T) {
	items := []store.MenuItem{
		{ID: 1, ParentID: 2},
		{ID: 2},
		{ID: 3, ParentID: 1},
		{ID: 4},
		{ID: 5, ParentID: 99},
		{ID: 6, ParentID: 7},
		{ID: 7, ParentID: 6},
	}
	var got []int64
	for _, it := range treeOrder(items) {
		got = append(got, it.ID)
	}
	want := []int64{2, 1, 3, 4, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("treeOrder = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("treeOrder = %v, want %v", got, want)
		}
	}
}

func mustParse(t *testing.T, doc string) document.MenuSet {
	t.Helper()
	set, err := document.Parse([]byte(doc), document.FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return set
}

func TestRoundTripAfterReparentingUpdate(t *testing.T) {
	src := openTestDB(t)
	first := mustParse(t, `{"name":"Main","items":[
		{"slug":"a","title":"A","url":"/a"},
		{"slug":"b","title":"B","url":"/b"}]}`)
	if _, err := importer.New(src, importer.Options{BaseURL: baseURL}, nil).Import(first); err != nil {
		t.Fatal(err)
	}
	reparent := mustParse(t, `{"name":"Main","items":[
		{"slug":"b","title":"B","url":"/b"},
		{"slug":"a","parent":"b","title":"A","url":"/a"}]}`)
	res, err := importer.New(src, importer.Options{Mode: importer.ModeUpdate, BaseURL: baseURL}, nil).Import(reparent)
	if err != nil {
		t.Fatal(err)
	}
	if c := res.Counts(); c.Created != 0 || c.Updated != 2 {
		t.Fatalf("update counts = %+v, want 2 updated", c)
	}

	set, err := New(src, baseURL, nil).Export(ModeAbsolute)
	if err != nil {
		t.Fatal(err)
	}
	items := set[0].Items
	if len(items) != 2 || items[0].Title == nil || *items[0].Title != "B" {
		t.Fatalf("parent should be exported first, got %+v", items)
	}

	data, err := document.Serialize(set, document.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	dst := openTestDB(t)
	if _, err := importer.New(dst, importer.Options{BaseURL: baseURL}, nil).Import(mustParse(t, string(data))); err != nil {
		t.Fatal(err)
	}

	parents := func(db *store.Database) map[string]string {
		out := map[string]string{}
		for _, s := range shapeOf(t, db, "Main") {
			out[s.title] = s.parent
		}
		return out
	}
	want, got := parents(src), parents(dst)
	if want["A"] != "B" || want["B"] != "" {
		t.Fatalf("source tree = %v", want)
	}
	if len(got) != 2 || got["A"] != "B" || got["B"] != "" {
		t.Errorf("re-imported tree = %v, want %v", got, want)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeAbsolute {
		t.Errorf("ParseMode(\"\") = %q, %v", m, err)
	}
	if m, err := ParseMode("relative"); err != nil || m != ModeRelative {
		t.Errorf("ParseMode(relative) = %q, %v", m, err)
	}
	if _, err := ParseMode("both"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
