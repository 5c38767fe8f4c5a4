package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (s *TestSite) AssertFileExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(filepath.Join(s.Path, relPath)); os.IsNotExist(err) {
		s.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (s *TestSite) AssertFileNotExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(filepath.Join(s.Path, relPath)); err == nil {
		s.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain substr.
func (s *TestSite) AssertFileContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertMenuItemCount checks how many items `menu show` reports for a menu.
func (s *TestSite) AssertMenuItemCount(menu string, expected int) {
	s.t.Helper()
	result := s.RunCLI("menu", "show", menu).MustSucceed(s.t)
	if got := len(result.DataList("items")); got != expected {
		s.t.Errorf("menu %q: expected %d items, got %d\nRaw: %s", menu, expected, got, result.RawJSON)
	}
}

// AssertHasWarning checks that the result carries a warning with code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}
