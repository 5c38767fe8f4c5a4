package resolver

import (
	"errors"
	"testing"

	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/store"
)

func seededStore(t *testing.T) (*store.Database, *store.Page, *store.Term) {
	t.Helper()
	db, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	page, err := db.AddPage("about/team", "Our Team")
	if err != nil {
		t.Fatal(err)
	}
	term, err := db.AddTerm("category", "News")
	if err != nil {
		t.Fatal(err)
	}
	return db, page, term
}

func TestResolver(t *testing.T) {
	db, page, term := seededStore(t)
	r := New(db, "https://example.com/")

	t.Run("page uses stored title", func(t *testing.T) {
		target, ok, err := r.Resolve(document.ItemDef{Page: document.StringPtr("about/team")})
		if err != nil || !ok {
			t.Fatalf("Resolve() = %v, %v", ok, err)
		}
		want := Target{Type: store.TypePostType, Object: store.ObjectPage, ObjectID: page.ID, Title: "Our Team"}
		if target != want {
			t.Errorf("got %+v, want %+v", target, want)
		}
	})

	t.Run("explicit title wins", func(t *testing.T) {
		target, ok, _ := r.Resolve(document.ItemDef{Page: document.StringPtr("/about/team/"), Title: document.StringPtr("Team")})
		if !ok || target.Title != "Team" {
			t.Errorf("got %+v, ok=%v", target, ok)
		}
	})

	t.Run("term", func(t *testing.T) {
		target, ok, err := r.Resolve(document.ItemDef{Taxonomy: document.StringPtr("category"), Term: document.StringPtr("News")})
		if err != nil || !ok {
			t.Fatalf("Resolve() = %v, %v", ok, err)
		}
		want := Target{Type: store.TypeTaxonomy, Object: "category", ObjectID: term.ID, Title: "News"}
		if target != want {
			t.Errorf("got %+v, want %+v", target, want)
		}
	})

	t.Run("term needs taxonomy", func(t *testing.T) {
		_, ok, err := r.Resolve(document.ItemDef{Term: document.StringPtr("News")})
		if err != nil || ok {
			t.Errorf("expected unresolved, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("absolute url kept", func(t *testing.T) {
		target, ok, _ := r.Resolve(document.ItemDef{URL: document.StringPtr("https://other.org/path?q=1#top")})
		if !ok {
			t.Fatal("expected resolved")
		}
		if target.URL != "https://other.org/path?q=1#top" || target.Type != store.TypeCustom {
			t.Errorf("got %+v", target)
		}
		if target.Title != "https://other.org/path?q=1#top" {
			t.Errorf("title should fall back to the url, got %q", target.Title)
		}
	})

	t.Run("relative url joined to base", func(t *testing.T) {
		target, ok, _ := r.Resolve(document.ItemDef{URL: document.StringPtr("/sub"), Title: document.StringPtr("Sub")})
		if !ok || target.URL != "https://example.com/sub" || target.Title != "Sub" {
			t.Errorf("got %+v", target)
		}
		target, _, _ = r.Resolve(document.ItemDef{URL: document.StringPtr("contact")})
		if target.URL != "https://example.com/contact" || target.Title != "contact" {
			t.Errorf("got %+v", target)
		}
	})

	t.Run("missing page falls through to url", func(t *testing.T) {
		target, ok, _ := r.Resolve(document.ItemDef{Page: document.StringPtr("gone"), URL: document.StringPtr("/gone")})
		if !ok || target.Type != store.TypeCustom || target.URL != "https://example.com/gone" {
			t.Errorf("got %+v, ok=%v", target, ok)
		}
	})

	t.Run("nothing resolves", func(t *testing.T) {
		for _, item := range []document.ItemDef{
			{},
			{Title: document.StringPtr("Only a title")},
			{Page: document.StringPtr("gone")},
			{Taxonomy: document.StringPtr("category"), Term: document.StringPtr("Sports")},
			{URL: document.StringPtr("  ")},
		} {
			_, ok, err := r.Resolve(item)
			if err != nil || ok {
				t.Errorf("Resolve(%+v) = ok %v, err %v; want unresolved", item, ok, err)
			}
		}
	})
}

type failingLookup struct{}

func (failingLookup) FindPageByPath(string) (*store.Page, error) {
	return nil, errors.New("disk on fire")
}

func (failingLookup) FindTermByName(string, string) (*store.Term, error) {
	return nil, errors.New("disk on fire")
}

func TestResolverPropagatesStoreErrors(t *testing.T) {
	r := New(failingLookup{}, "https://example.com")
	if _, _, err := r.Resolve(document.ItemDef{Page: document.StringPtr("home")}); err == nil {
		t.Error("expected page lookup error")
	}
	if _, _, err := r.Resolve(document.ItemDef{Taxonomy: document.StringPtr("c"), Term: document.StringPtr("t")}); err == nil {
		t.Error("expected term lookup error")
	}
}

func TestEscapeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://example.com/fully/qualified/", "http://example.com/fully/qualified/"},
		{"https://example.com/a b", "https://example.com/a%20b"},
		{"https://example.com/<script>", "https://example.com/script"},
		{"  https://example.com/x  ", "https://example.com/x"},
		{"https://example.com/über", "https://example.com/über"},
	}

	for _, tt := range tests {
		if got := EscapeURL(tt.in); got != tt.want {
			t.Errorf("EscapeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKey(t *testing.T) {
	page := Target{Type: store.TypePostType, Object: store.ObjectPage, ObjectID: 3, Title: "A"}
	retitled := page
	retitled.Title = "B"
	if page.Key() != retitled.Key() {
		t.Error("keys must ignore titles")
	}

	stored := store.MenuItem{Type: store.TypeCustom, Object: store.TypeCustom, URL: "https://example.com/"}
	custom := Target{Type: store.TypeCustom, Object: store.TypeCustom, URL: "https://example.com/", Title: "Home"}
	if KeyOf(stored) != custom.Key() {
		t.Errorf("KeyOf(%+v) = %q, want %q", stored, KeyOf(stored), custom.Key())
	}
}
