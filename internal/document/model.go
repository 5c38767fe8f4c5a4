// Package document defines the menu document model and converts it to and
// from its JSON and YAML encodings.
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MenuSet is the ordered list of menus in one document.
type MenuSet []MenuDef

// MenuDef describes one menu and its items.
type MenuDef struct {
	// Location is the theme location the menu should be found by.
	Location *string `json:"location,omitempty" yaml:"location,omitempty"`

	// Name is used to find or create the menu when Location does not resolve.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	Slug *string `json:"slug,omitempty" yaml:"slug,omitempty"`

	// Items is always encoded, even when empty.
	Items []ItemDef `json:"items" yaml:"items"`
}

// ItemDef describes one menu item. At most one target is expected; when more
// are present they are tried in the order page, term, url.
type ItemDef struct {
	// Slug is the symbolic key children use to name this item as their parent.
	Slug *Key `json:"slug,omitempty" yaml:"slug,omitempty"`

	// Parent names the Slug of an item listed earlier in the same menu.
	Parent *Key `json:"parent,omitempty" yaml:"parent,omitempty"`

	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	Page     *string `json:"page,omitempty" yaml:"page,omitempty"`
	Taxonomy *string `json:"taxonomy,omitempty" yaml:"taxonomy,omitempty"`
	Term     *string `json:"term,omitempty" yaml:"term,omitempty"`
	URL      *string `json:"url,omitempty" yaml:"url,omitempty"`
}

// HasLocation reports whether a non-empty location was given.
func (m MenuDef) HasLocation() bool {
	return m.Location != nil && *m.Location != ""
}

// Label identifies the menu in logs and results.
func (m MenuDef) Label() string {
	switch {
	case m.Name != "":
		return m.Name
	case m.HasLocation():
		return "@" + *m.Location
	default:
		return "(unnamed)"
	}
}

// Key is a symbolic slug. Documents may spell it as a string or a number;
// exports write item ids, which older tools emitted as numbers.
type Key string

// UnmarshalJSON accepts a JSON string or number.
func (k *Key) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = Key(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("key must be a string or number, got %s", string(data))
	}
	*k = Key(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar.
func (k *Key) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: key must be a scalar", node.Line)
	}
	*k = Key(node.Value)
	return nil
}

// MarshalYAML always quotes numeric keys so they read back as strings.
func (k Key) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(k)}
	if _, err := strconv.ParseFloat(string(k), 64); err == nil {
		node.Style = yaml.DoubleQuotedStyle
	}
	return node, nil
}

// String returns the key as written, trimmed.
func (k *Key) String() string {
	if k == nil {
		return ""
	}
	return strings.TrimSpace(string(*k))
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// KeyPtr returns a pointer to a Key, or nil when s is empty.
func KeyPtr(s string) *Key {
	if s == "" {
		return nil
	}
	k := Key(s)
	return &k
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
