package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/audit"
	"github.com/aidanlsb/navport/internal/ui"
)

var statusRuns int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show site contents and recent import/export runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		stats, err := site.DB.Stats()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		bindings, err := site.DB.LocationBindings()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		entries, err := site.Audit.Read()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		runs := lastRuns(entries, statusRuns)

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":       site.Path,
				"base_url":   site.Config.BaseURL,
				"pages":      stats.PageCount,
				"terms":      stats.TermCount,
				"menus":      stats.MenuCount,
				"menu_items": stats.MenuItemCount,
				"locations":  len(bindings),
				"audit":      site.Audit.Enabled(),
				"runs":       runs,
			}, nil)
			return nil
		}

		fmt.Println(ui.AccentBold.Render(site.Path))
		if site.Config.BaseURL != "" {
			fmt.Println(ui.Hint(site.Config.BaseURL))
		}
		fmt.Println()
		fmt.Printf("  %d %s, %d %s\n", stats.PageCount, ui.Plural(stats.PageCount, "page", "pages"),
			stats.TermCount, ui.Plural(stats.TermCount, "term", "terms"))
		fmt.Printf("  %d %s %s, %d bound %s\n", stats.MenuCount, ui.Plural(stats.MenuCount, "menu", "menus"),
			ui.Count(stats.MenuItemCount, "item", "items"), len(bindings), ui.Plural(len(bindings), "location", "locations"))

		if !site.Audit.Enabled() {
			fmt.Println("\n" + ui.Hint("Run log disabled (audit: false in site.yaml)."))
			return nil
		}
		if len(runs) == 0 {
			fmt.Println("\n" + ui.Hint("No import or export runs yet."))
			return nil
		}
		fmt.Println()
		t := ui.NewTable("WHEN", "OP", "FILE", "RESULT").StyleColumn(0, ui.Muted)
		for _, e := range runs {
			t.AddRow(e.Timestamp.Local().Format(time.DateTime), runLabel(e), e.File, runResult(e))
		}
		fmt.Println(t.String())
		return nil
	},
}

// lastRuns returns up to n entries, newest first.
func lastRuns(entries []audit.Entry, n int) []audit.Entry {
	if n < 0 {
		n = 0
	}
	out := make([]audit.Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}

func runLabel(e audit.Entry) string {
	if e.DryRun {
		return e.Operation + " (dry run)"
	}
	return e.Operation
}

func runResult(e audit.Entry) string {
	if e.Error != "" {
		return ui.SymbolError + " " + e.Error
	}
	parts := ""
	for _, key := range []string{"created", "updated", "unchanged", "skipped", "errors", "menus", "items"} {
		if n, ok := e.Counts[key]; ok && n > 0 {
			if parts != "" {
				parts += ", "
			}
			parts += fmt.Sprintf("%d %s", n, key)
		}
	}
	return ui.SymbolSuccess + " " + parts
}

func init() {
	statusCmd.Flags().IntVar(&statusRuns, "runs", 5, "Number of recent runs to show")
	rootCmd.AddCommand(statusCmd)
}
