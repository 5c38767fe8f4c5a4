package cli

import (
	"strings"
	"testing"

	"github.com/aidanlsb/navport/internal/audit"
)

func TestLastRuns(t *testing.T) {
	entries := []audit.Entry{{RunID: "1"}, {RunID: "2"}, {RunID: "3"}}

	tests := []struct {
		n    int
		want string
	}{
		{n: 2, want: "3,2"},
		{n: 5, want: "3,2,1"},
		{n: 0, want: ""},
		{n: -1, want: ""},
	}
	for _, tt := range tests {
		var ids []string
		for _, e := range lastRuns(entries, tt.n) {
			ids = append(ids, e.RunID)
		}
		if got := strings.Join(ids, ","); got != tt.want {
			t.Errorf("lastRuns(n=%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRunResult(t *testing.T) {
	ok := audit.Entry{Operation: audit.OpImport, Counts: map[string]int{"created": 3, "unchanged": 0, "skipped": 1, "menus": 1}}
	if got := runResult(ok); got != "✓ 3 created, 1 skipped, 1 menus" {
		t.Errorf("runResult = %q", got)
	}

	failed := audit.Entry{Operation: audit.OpExport, Error: "disk full"}
	if got := runResult(failed); got != "✗ disk full" {
		t.Errorf("runResult = %q", got)
	}

	if got := runLabel(audit.Entry{Operation: audit.OpImport, DryRun: true}); got != "import (dry run)" {
		t.Errorf("runLabel = %q", got)
	}
}
