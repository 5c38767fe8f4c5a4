// Package config handles global navport configuration and per-site settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/navport/internal/atomicfile"
)

// Config represents the global navport configuration.
type Config struct {
	// DefaultSite is the name of the default site (from Sites map).
	DefaultSite string `toml:"default_site"`

	// Sites is a map of site names to directories.
	Sites map[string]string `toml:"sites"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// GetSitePath returns the path for a named site.
// If name is empty, returns the default site path.
func (c *Config) GetSitePath(name string) (string, error) {
	if name == "" {
		name = c.DefaultSite
	}
	if name == "" {
		return "", fmt.Errorf("no default site configured")
	}
	if path, ok := c.Sites[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("site '%s' not found in config", name)
}

// SiteNames returns the configured site names, sorted.
func (c *Config) SiteNames() []string {
	names := make([]string, 0, len(c.Sites))
	for name := range c.Sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// Load loads the configuration from path, or the default location when path
// is empty. Returns a default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	path = ResolveConfigPath(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/navport/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "navport", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "navport", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

type persistedConfig struct {
	DefaultSite *string              `toml:"default_site,omitempty"`
	Sites       map[string]string    `toml:"sites,omitempty"`
	UI          *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{DefaultSite: nonEmptyPtr(cfg.DefaultSite)}
	if len(cfg.Sites) > 0 {
		out.Sites = cfg.Sites
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if _, err := atomicfile.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
