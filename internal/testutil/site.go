// Package testutil provides helpers for navport integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSite is a temporary site directory built for a test.
type TestSite struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestSite creates a site builder. Call Build to create the directory.
func NewTestSite(t *testing.T) *TestSite {
	t.Helper()
	return &TestSite{
		t:     t,
		files: make(map[string]string),
	}
}

// WithSiteYAML sets the site.yaml content.
func (s *TestSite) WithSiteYAML(yaml string) *TestSite {
	s.files["site.yaml"] = yaml
	return s
}

// WithFile adds a file relative to the site root.
func (s *TestSite) WithFile(path, content string) *TestSite {
	s.files[path] = content
	return s
}

// Build creates the site directory and its files. A site.yaml is written
// when none was configured so commands accept the directory.
func (s *TestSite) Build() *TestSite {
	s.t.Helper()

	s.Path = s.t.TempDir()
	if _, ok := s.files["site.yaml"]; !ok {
		s.files["site.yaml"] = MinimalSiteYAML()
	}
	for path, content := range s.files {
		s.writeFile(path, content)
	}
	return s
}

func (s *TestSite) writeFile(relPath, content string) {
	s.t.Helper()
	fullPath := filepath.Join(s.Path, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		s.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		s.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile returns the content of a file relative to the site root.
func (s *TestSite) ReadFile(relPath string) string {
	s.t.Helper()
	content, err := os.ReadFile(filepath.Join(s.Path, relPath))
	if err != nil {
		s.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists reports whether a file exists relative to the site root.
func (s *TestSite) FileExists(relPath string) bool {
	s.t.Helper()
	_, err := os.Stat(filepath.Join(s.Path, relPath))
	return err == nil
}

// MinimalSiteYAML returns a site.yaml with only a base URL.
func MinimalSiteYAML() string {
	return "base_url: https://example.com\n"
}
