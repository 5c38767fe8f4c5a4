package ui

import "testing"

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{Success("done"), "✓ done"},
		{Successf("wrote %d bytes", 12), "✓ wrote 12 bytes"},
		{Errorf("failed: %s", "x"), "✗ failed: x"},
		{Warningf("skipped %q", "a"), "⚠ skipped \"a\""},
		{Infof("dry run"), "ℹ dry run"},
		{Success("100% done"), "✓ 100% done"},
		{Count(1, "item", "items"), "(1 item)"},
		{Count(3, "item", "items"), "(3 items)"},
		{Plural(0, "menu", "menus"), "menus"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
