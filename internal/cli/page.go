package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/paths"
	"github.com/aidanlsb/navport/internal/ui"
)

var pageAddTitle string

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages that menu items can point at",
}

var pageAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a page",
	Long: `Adds a page to the content store. Menu items with a "page" target
are matched against page paths.

Examples:
  navport page add about
  navport page add about/team --title "Our Team"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := paths.PagePath(args[0])
		if path == "" {
			return handleErrorMsg(ErrInvalidInput, "page path is required", "")
		}

		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		existing, err := site.DB.FindPageByPath(path)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		if existing != nil {
			return handleErrorMsg(ErrPageExists,
				fmt.Sprintf("page already exists: %s", path),
				"Use 'navport page list' to see existing pages")
		}

		page, err := site.DB.AddPage(path, pageAddTitle)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"id":    page.ID,
				"path":  page.Path,
				"title": page.Title,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added page %s %s", ui.FilePath(page.Path), ui.Hint(fmt.Sprintf("#%d", page.ID))))
		return nil
	},
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		pages, err := site.DB.ListPages()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			out := make([]map[string]interface{}, 0, len(pages))
			for _, p := range pages {
				out = append(out, map[string]interface{}{"id": p.ID, "path": p.Path, "title": p.Title})
			}
			outputSuccess(map[string]interface{}{"pages": out}, &Meta{Count: len(pages)})
			return nil
		}

		if len(pages) == 0 {
			fmt.Println(ui.Hint("No pages. Add one with 'navport page add <path>'."))
			return nil
		}

		t := ui.NewTable("ID", "PATH", "TITLE").StyleColumn(0, ui.Muted)
		for _, p := range pages {
			t.AddRow(fmt.Sprintf("%d", p.ID), p.Path, p.Title)
		}
		fmt.Println(t.String())
		fmt.Println(ui.Hint(ui.Count(len(pages), "page", "pages")))
		return nil
	},
}

func init() {
	pageAddCmd.Flags().StringVar(&pageAddTitle, "title", "", "Page title (defaults to the path)")
	pageCmd.AddCommand(pageAddCmd)
	pageCmd.AddCommand(pageListCmd)
	rootCmd.AddCommand(pageCmd)
}
