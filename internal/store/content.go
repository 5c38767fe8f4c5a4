package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aidanlsb/navport/internal/paths"
	"github.com/aidanlsb/navport/internal/slugs"
)

// Page is a stored page.
type Page struct {
	ID    int64
	Path  string
	Title string
}

// Term is a stored taxonomy term.
type Term struct {
	ID       int64
	Taxonomy string
	Name     string
	Slug     string
}

// AddPage stores a page at path. The path is normalized first.
func (d *Database) AddPage(path, title string) (*Page, error) {
	path = paths.PagePath(path)
	if path == "" {
		return nil, fmt.Errorf("page path is required")
	}
	if strings.TrimSpace(title) == "" {
		title = path
	}

	res, err := d.db.Exec(`INSERT INTO pages (path, title) VALUES (?, ?)`, path, title)
	if err != nil {
		return nil, fmt.Errorf("insert page %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Page{ID: id, Path: path, Title: title}, nil
}

// FindPageByPath returns the page at path, or nil if there is none.
func (d *Database) FindPageByPath(path string) (*Page, error) {
	path = paths.PagePath(path)
	if path == "" {
		return nil, nil
	}
	return d.scanPage(d.db.QueryRow(`SELECT id, path, title FROM pages WHERE path = ?`, path))
}

// GetPage returns the page with the given id, or nil if there is none.
func (d *Database) GetPage(id int64) (*Page, error) {
	return d.scanPage(d.db.QueryRow(`SELECT id, path, title FROM pages WHERE id = ?`, id))
}

// ListPages returns all pages ordered by path.
func (d *Database) ListPages() ([]Page, error) {
	rows, err := d.db.Query(`SELECT id, path, title FROM pages ORDER BY path`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (Page, error) {
		var p Page
		err := rows.Scan(&p.ID, &p.Path, &p.Title)
		return p, err
	})
}

func (d *Database) scanPage(row *sql.Row) (*Page, error) {
	var p Page
	err := row.Scan(&p.ID, &p.Path, &p.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddTerm stores a term in taxonomy.
func (d *Database) AddTerm(taxonomy, name string) (*Term, error) {
	taxonomy = strings.TrimSpace(taxonomy)
	name = strings.TrimSpace(name)
	if taxonomy == "" || name == "" {
		return nil, fmt.Errorf("taxonomy and term name are required")
	}

	slug := slugs.Name(name)
	res, err := d.db.Exec(`INSERT INTO terms (taxonomy, name, slug) VALUES (?, ?, ?)`, taxonomy, name, slug)
	if err != nil {
		return nil, fmt.Errorf("insert term %s/%s: %w", taxonomy, name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Term{ID: id, Taxonomy: taxonomy, Name: name, Slug: slug}, nil
}

// FindTermByName returns the term whose name matches exactly within taxonomy,
// or nil if there is none.
func (d *Database) FindTermByName(taxonomy, name string) (*Term, error) {
	return d.scanTerm(d.db.QueryRow(
		`SELECT id, taxonomy, name, slug FROM terms WHERE taxonomy = ? AND name = ?`,
		taxonomy, name,
	))
}

// GetTerm returns the term with the given id in taxonomy, or nil if there is none.
func (d *Database) GetTerm(id int64, taxonomy string) (*Term, error) {
	return d.scanTerm(d.db.QueryRow(
		`SELECT id, taxonomy, name, slug FROM terms WHERE id = ? AND taxonomy = ?`,
		id, taxonomy,
	))
}

func (d *Database) scanTerm(row *sql.Row) (*Term, error) {
	var t Term
	err := row.Scan(&t.ID, &t.Taxonomy, &t.Name, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
