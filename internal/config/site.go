package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/navport/internal/atomicfile"
)

// SiteFile is the per-site configuration file name.
const SiteFile = "site.yaml"

// SiteConfig represents site-level configuration from site.yaml.
// Command-line flags override these values.
type SiteConfig struct {
	// BaseURL is the site root that relative menu URLs resolve against.
	BaseURL string `yaml:"base_url"`

	Import ImportDefaults `yaml:"import,omitempty"`
	Export ExportDefaults `yaml:"export,omitempty"`

	// Audit appends a line per import/export run to .navport/audit.log (default: true).
	Audit *bool `yaml:"audit,omitempty"`
}

// ImportDefaults are the default import options.
type ImportDefaults struct {
	Mode    string `yaml:"mode,omitempty"`
	Missing string `yaml:"missing,omitempty"`
	// Default is the page path used when missing is "default".
	Default string `yaml:"default,omitempty"`
}

// ExportDefaults are the default export options.
type ExportDefaults struct {
	Mode string `yaml:"mode,omitempty"`
}

// IsAuditEnabled reports whether runs are recorded in the audit log.
func (sc *SiteConfig) IsAuditEnabled() bool {
	return sc.Audit == nil || *sc.Audit
}

// DefaultSiteConfig returns the configuration used when site.yaml is absent.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{}
}

// LoadSiteConfig loads site configuration from site.yaml.
// Returns default config if file doesn't exist.
func LoadSiteConfig(sitePath string) (*SiteConfig, error) {
	configPath := filepath.Join(sitePath, SiteFile)

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultSiteConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read site config %s: %w", configPath, err)
	}

	var config SiteConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse site config %s: %w", configPath, err)
	}
	return &config, nil
}

// CreateDefaultSiteConfig writes a commented site.yaml with the given base URL.
// Returns true if a new file was created, false if one already existed.
func CreateDefaultSiteConfig(sitePath, baseURL string) (bool, error) {
	configPath := filepath.Join(sitePath, SiteFile)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	quoted, err := yaml.Marshal(baseURL)
	if err != nil {
		return false, fmt.Errorf("failed to encode base url: %w", err)
	}

	defaultConfig := `# navport site configuration
# Command-line flags override these values.

# Site root that relative menu URLs resolve against
base_url: ` + string(quoted) + `
# Defaults for 'navport import'
# import:
#   mode: append        # append (default), update, or skip
#   missing: skip       # skip (default), create, or default
#   default: contact    # page path used when missing is "default"

# Defaults for 'navport export'
# export:
#   mode: absolute      # absolute (default) or relative

# Record each import/export run in .navport/audit.log (default: true)
# audit: false
`

	if _, err := atomicfile.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write site config: %w", err)
	}
	return true, nil
}

// SaveSiteConfig writes the site config back to site.yaml.
func SaveSiteConfig(sitePath string, cfg *SiteConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if _, err := atomicfile.WriteFile(filepath.Join(sitePath, SiteFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", SiteFile, err)
	}
	return nil
}
