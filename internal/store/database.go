// Package store is the site's content store: pages, taxonomy terms, menus,
// theme locations and menu items, kept in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Database is the SQLite database handle.
type Database struct {
	db *sql.DB
}

var (
	// ErrItemNotFound indicates an update targeted a menu item id that does not exist.
	ErrItemNotFound = errors.New("menu item not found")
	// ErrMenuExists indicates a menu with the same name is already stored.
	ErrMenuExists = errors.New("menu already exists")
	// ErrMenuNotFound indicates a menu id or name is not in the store.
	ErrMenuNotFound = errors.New("menu not found")
)

// DirName is the per-site directory holding the database and audit log.
const DirName = ".navport"

// CurrentDBVersion is the current database schema version.
const CurrentDBVersion = 1

// Open opens or creates the site database under sitePath.
func Open(sitePath string) (*Database, error) {
	dbDir := filepath.Join(sitePath, DirName)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", DirName, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "site.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// foreign_keys is a per-connection pragma.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- Hierarchical pages, addressed by their full path ("about/team")
		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS terms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			taxonomy TEXT NOT NULL,
			name TEXT NOT NULL,
			slug TEXT NOT NULL,
			UNIQUE (taxonomy, name)
		);

		CREATE TABLE IF NOT EXISTS menus (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL
		);

		-- Theme location -> menu binding; one menu per location
		CREATE TABLE IF NOT EXISTS locations (
			location TEXT PRIMARY KEY,
			menu_id INTEGER NOT NULL REFERENCES menus(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			menu_id INTEGER NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			parent_id INTEGER,           -- NULL for root-level items
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,          -- custom, post_type, taxonomy
			object TEXT NOT NULL,        -- page, a taxonomy name, or custom
			object_id INTEGER,
			url TEXT NOT NULL DEFAULT ''
		);

		-- Items only show up in a menu once grouped into it
		CREATE TABLE IF NOT EXISTS menu_item_menus (
			item_id INTEGER NOT NULL REFERENCES menu_items(id) ON DELETE CASCADE,
			menu_id INTEGER NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			PRIMARY KEY (item_id, menu_id)
		);

		CREATE INDEX IF NOT EXISTS idx_terms_taxonomy ON terms(taxonomy);
		CREATE INDEX IF NOT EXISTS idx_menu_items_menu ON menu_items(menu_id, position);
		CREATE INDEX IF NOT EXISTS idx_menu_item_menus_menu ON menu_item_menus(menu_id);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}

	return nil
}

// Stats holds row counts for the site.
type Stats struct {
	PageCount     int
	TermCount     int
	MenuCount     int
	MenuItemCount int
}

// Stats returns row counts for each content table.
func (d *Database) Stats() (*Stats, error) {
	stats := &Stats{}
	counts := []struct {
		table string
		dst   *int
	}{
		{"pages", &stats.PageCount},
		{"terms", &stats.TermCount},
		{"menus", &stats.MenuCount},
		{"menu_items", &stats.MenuItemCount},
	}
	for _, c := range counts {
		if err := d.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return stats, nil
}
