package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSiteConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadSiteConfig(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "" || !cfg.IsAuditEnabled() {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("full file", func(t *testing.T) {
		dir := t.TempDir()
		content := `base_url: https://example.com
import:
  mode: update
  missing: default
  default: contact
export:
  mode: relative
audit: false
`
		if err := os.WriteFile(filepath.Join(dir, SiteFile), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadSiteConfig(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://example.com" {
			t.Errorf("base_url = %q", cfg.BaseURL)
		}
		if cfg.Import.Mode != "update" || cfg.Import.Missing != "default" || cfg.Import.Default != "contact" {
			t.Errorf("unexpected import defaults: %+v", cfg.Import)
		}
		if cfg.Export.Mode != "relative" {
			t.Errorf("export mode = %q", cfg.Export.Mode)
		}
		if cfg.IsAuditEnabled() {
			t.Error("expected audit disabled")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, SiteFile), []byte("base_url: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadSiteConfig(dir); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestCreateDefaultSiteConfig(t *testing.T) {
	dir := t.TempDir()

	created, err := CreateDefaultSiteConfig(dir, "https://example.com/")
	if err != nil || !created {
		t.Fatalf("CreateDefaultSiteConfig() = %v, %v", created, err)
	}
	cfg, err := LoadSiteConfig(dir)
	if err != nil {
		t.Fatalf("generated file should parse: %v", err)
	}
	if cfg.BaseURL != "https://example.com/" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}

	created, err = CreateDefaultSiteConfig(dir, "https://other.org")
	if err != nil || created {
		t.Fatalf("second call should leave the file alone, got %v, %v", created, err)
	}
}

func TestSaveSiteConfig(t *testing.T) {
	dir := t.TempDir()
	off := false
	in := &SiteConfig{BaseURL: "https://example.com", Import: ImportDefaults{Mode: "skip"}, Audit: &off}

	if err := SaveSiteConfig(dir, in); err != nil {
		t.Fatalf("SaveSiteConfig() error = %v", err)
	}
	out, err := LoadSiteConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if out.BaseURL != in.BaseURL || out.Import.Mode != "skip" || out.IsAuditEnabled() {
		t.Errorf("unexpected round trip: %+v", out)
	}
}
