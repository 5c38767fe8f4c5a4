package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aidanlsb/navport/internal/slugs"
)

// Menu item types.
const (
	TypeCustom   = "custom"
	TypePostType = "post_type"
	TypeTaxonomy = "taxonomy"
)

// ObjectPage is the object of post_type items that point at pages.
const ObjectPage = "page"

// Menu is a stored navigation menu.
type Menu struct {
	ID   int64
	Name string
	Slug string
}

// MenuItem is a stored menu entry.
type MenuItem struct {
	ID       int64
	MenuID   int64
	ParentID int64 // 0 for root-level items
	Position int
	Title    string
	Type     string
	Object   string
	ObjectID int64
	URL      string
}

// ItemSpec holds the writable fields of a menu item.
type ItemSpec struct {
	ParentID int64
	Title    string
	Type     string
	Object   string
	ObjectID int64
	URL      string
}

// LocationBindings returns the theme location -> menu id table.
func (d *Database) LocationBindings() (map[string]int64, error) {
	rows, err := d.db.Query(`SELECT location, menu_id FROM locations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bindings := make(map[string]int64)
	for rows.Next() {
		var loc string
		var menuID int64
		if err := rows.Scan(&loc, &menuID); err != nil {
			return nil, err
		}
		bindings[loc] = menuID
	}
	return bindings, rows.Err()
}

// BindLocation points a theme location at a menu, replacing any previous binding.
func (d *Database) BindLocation(location string, menuID int64) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("location is required")
	}
	menu, err := d.GetMenu(menuID)
	if err != nil {
		return err
	}
	if menu == nil {
		return fmt.Errorf("menu %d: %w", menuID, ErrMenuNotFound)
	}
	_, err = d.db.Exec(`INSERT OR REPLACE INTO locations (location, menu_id) VALUES (?, ?)`, location, menuID)
	return err
}

// FindMenuByName returns the menu with the given name, or nil if there is none.
func (d *Database) FindMenuByName(name string) (*Menu, error) {
	return d.scanMenu(d.db.QueryRow(`SELECT id, name, slug FROM menus WHERE name = ?`, name))
}

// GetMenu returns the menu with the given id, or nil if there is none.
func (d *Database) GetMenu(id int64) (*Menu, error) {
	return d.scanMenu(d.db.QueryRow(`SELECT id, name, slug FROM menus WHERE id = ?`, id))
}

func (d *Database) scanMenu(row *sql.Row) (*Menu, error) {
	var m Menu
	err := row.Scan(&m.ID, &m.Name, &m.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMenu stores a new, empty menu.
func (d *Database) CreateMenu(name string) (*Menu, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("menu name is required")
	}

	existing, err := d.FindMenuByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrMenuExists)
	}

	slug := slugs.Name(name)
	res, err := d.db.Exec(`INSERT INTO menus (name, slug) VALUES (?, ?)`, name, slug)
	if err != nil {
		return nil, fmt.Errorf("insert menu %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Menu{ID: id, Name: name, Slug: slug}, nil
}

// ListMenus returns all menus ordered by name.
func (d *Database) ListMenus() ([]Menu, error) {
	rows, err := d.db.Query(`SELECT id, name, slug FROM menus ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(rows *sql.Rows) (Menu, error) {
		var m Menu
		err := rows.Scan(&m.ID, &m.Name, &m.Slug)
		return m, err
	})
}

// ListMenuItems returns the items grouped into a menu in display order.
// Items saved under the menu but never assigned to it are not returned.
func (d *Database) ListMenuItems(menuID int64) ([]MenuItem, error) {
	rows, err := d.db.Query(`
		SELECT i.id, i.menu_id, i.parent_id, i.position, i.title, i.type, i.object, i.object_id, i.url
		FROM menu_items i
		JOIN menu_item_menus g ON g.item_id = i.id
		WHERE g.menu_id = ?
		ORDER BY i.position, i.id
	`, menuID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMenuItem)
}

func scanMenuItem(rows *sql.Rows) (MenuItem, error) {
	var item MenuItem
	var parentID, objectID sql.NullInt64
	err := rows.Scan(&item.ID, &item.MenuID, &parentID, &item.Position, &item.Title,
		&item.Type, &item.Object, &objectID, &item.URL)
	item.ParentID = parentID.Int64
	item.ObjectID = objectID.Int64
	return item, err
}

// SaveMenuItem creates a menu item when itemID is 0, or overwrites the item
// in place otherwise. New items are appended after the menu's last position.
func (d *Database) SaveMenuItem(menuID, itemID int64, spec ItemSpec) (int64, error) {
	if spec.Type == "" {
		spec.Type = TypeCustom
	}
	if spec.Object == "" {
		spec.Object = spec.Type
	}

	if itemID == 0 {
		res, err := d.db.Exec(`
			INSERT INTO menu_items (menu_id, parent_id, position, title, type, object, object_id, url)
			VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM menu_items WHERE menu_id = ?), ?, ?, ?, ?, ?)
		`, menuID, optionalID(spec.ParentID), menuID, spec.Title, spec.Type, spec.Object,
			optionalID(spec.ObjectID), spec.URL)
		if err != nil {
			return 0, fmt.Errorf("insert menu item: %w", err)
		}
		return res.LastInsertId()
	}

	res, err := d.db.Exec(`
		UPDATE menu_items
		SET parent_id = ?, title = ?, type = ?, object = ?, object_id = ?, url = ?
		WHERE id = ? AND menu_id = ?
	`, optionalID(spec.ParentID), spec.Title, spec.Type, spec.Object,
		optionalID(spec.ObjectID), spec.URL, itemID, menuID)
	if err != nil {
		return 0, fmt.Errorf("update menu item %d: %w", itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("menu item %d in menu %d: %w", itemID, menuID, ErrItemNotFound)
	}
	return itemID, nil
}

// AssignItemToMenu makes menuID the only menu the item is grouped into.
func (d *Database) AssignItemToMenu(itemID, menuID int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM menu_item_menus WHERE item_id = ?`, itemID); err != nil {
		return fmt.Errorf("clear menu grouping for item %d: %w", itemID, err)
	}
	if _, err := tx.Exec(`INSERT INTO menu_item_menus (item_id, menu_id) VALUES (?, ?)`, itemID, menuID); err != nil {
		return fmt.Errorf("group item %d into menu %d: %w", itemID, menuID, err)
	}
	return tx.Commit()
}
