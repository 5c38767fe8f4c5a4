package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/ui"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Manage taxonomy terms that menu items can point at",
}

var termAddCmd = &cobra.Command{
	Use:   "add <taxonomy> <name>",
	Short: "Add a taxonomy term",
	Long: `Adds a term to a taxonomy. Menu items with a "taxonomy" and "term"
target are matched against the term name within that taxonomy.

Examples:
  navport term add category News
  navport term add post_tag "Release Notes"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := strings.TrimSpace(args[0])
		name := strings.TrimSpace(args[1])
		if taxonomy == "" || name == "" {
			return handleErrorMsg(ErrInvalidInput, "taxonomy and term name are required", "")
		}

		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		existing, err := site.DB.FindTermByName(taxonomy, name)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		if existing != nil {
			return handleErrorMsg(ErrTermExists, fmt.Sprintf("term already exists: %s/%s", taxonomy, name), "")
		}

		term, err := site.DB.AddTerm(taxonomy, name)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"id":       term.ID,
				"taxonomy": term.Taxonomy,
				"name":     term.Name,
				"slug":     term.Slug,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added %s term %s %s", term.Taxonomy, ui.Bold.Render(term.Name), ui.Hint(fmt.Sprintf("#%d", term.ID))))
		return nil
	},
}

func init() {
	termCmd.AddCommand(termAddCmd)
	rootCmd.AddCommand(termCmd)
}
