package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml/.yml files and JSON for everything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseError reports a document that could not be decoded into a MenuSet.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s menu document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errEmptyDocument = errors.New("document is empty")

// Parse decodes a menu document. The top level may be a single menu object or
// an array of them; both are normalized to a MenuSet.
func Parse(data []byte, format Format) (MenuSet, error) {
	var (
		set MenuSet
		err error
	)
	switch format {
	case FormatYAML:
		set, err = parseYAML(data)
	default:
		format = FormatJSON
		set, err = parseJSON(data)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return set, nil
}

func parseJSON(data []byte) (MenuSet, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errEmptyDocument
	}

	switch data[0] {
	case '[':
		var set MenuSet
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, err
		}
		return set, nil
	case '{':
		var menu MenuDef
		if err := json.Unmarshal(data, &menu); err != nil {
			return nil, err
		}
		return MenuSet{menu}, nil
	default:
		return nil, errors.New("expected a menu object or an array of menu objects")
	}
}

func parseYAML(data []byte) (MenuSet, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errEmptyDocument
	}

	top := root.Content[0]
	switch top.Kind {
	case yaml.SequenceNode:
		var set MenuSet
		if err := top.Decode(&set); err != nil {
			return nil, err
		}
		return set, nil
	case yaml.MappingNode:
		var menu MenuDef
		if err := top.Decode(&menu); err != nil {
			return nil, err
		}
		return MenuSet{menu}, nil
	default:
		return nil, fmt.Errorf("line %d: expected a menu mapping or a sequence of menus", top.Line)
	}
}

// Serialize encodes menus in the given order. Absent optional fields are
// omitted; items is always present.
func Serialize(set MenuSet, format Format) ([]byte, error) {
	out := make(MenuSet, len(set))
	for i, menu := range set {
		if menu.Items == nil {
			menu.Items = []ItemDef{}
		}
		out[i] = menu
	}

	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}
