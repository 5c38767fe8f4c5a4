package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/ui"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage theme location bindings",
}

var locationSetCmd = &cobra.Command{
	Use:   "set <location> <menu>",
	Short: "Bind a theme location to a menu",
	Long: `Points a theme location at a menu, replacing any previous binding.
Import looks menus up by location before falling back to their name.

Examples:
  navport location set primary "Main Menu"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, name := args[0], args[1]

		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		menu, err := site.DB.FindMenuByName(name)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		if menu == nil {
			return handleErrorMsg(ErrMenuNotFound, fmt.Sprintf("menu not found: %s", name), "Use 'navport menu list' to see menus")
		}

		if err := site.DB.BindLocation(location, menu.ID); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"location": location,
				"menu_id":  menu.ID,
				"menu":     menu.Name,
			}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Bound %s to %s", ui.AccentBold.Render(location), menu.Name))
		return nil
	},
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List theme location bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := openSite()
		if err != nil {
			return err
		}
		defer site.Close()

		bindings, err := site.DB.LocationBindings()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		locations := sortedKeys(bindings)

		names := make(map[int64]string, len(bindings))
		for _, loc := range locations {
			id := bindings[loc]
			if _, ok := names[id]; ok {
				continue
			}
			m, err := site.DB.GetMenu(id)
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			if m != nil {
				names[id] = m.Name
			}
		}

		if isJSONOutput() {
			out := make([]map[string]interface{}, 0, len(locations))
			for _, loc := range locations {
				out = append(out, map[string]interface{}{
					"location": loc,
					"menu_id":  bindings[loc],
					"menu":     names[bindings[loc]],
				})
			}
			outputSuccess(map[string]interface{}{"locations": out}, &Meta{Count: len(out)})
			return nil
		}

		if len(locations) == 0 {
			fmt.Println(ui.Hint("No locations bound. Bind one with 'navport location set <location> <menu>'."))
			return nil
		}
		t := ui.NewTable("LOCATION", "MENU").StyleColumn(0, ui.Accent)
		for _, loc := range locations {
			t.AddRow(loc, names[bindings[loc]])
		}
		fmt.Println(t.String())
		return nil
	},
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	locationCmd.AddCommand(locationSetCmd)
	locationCmd.AddCommand(locationListCmd)
	rootCmd.AddCommand(locationCmd)
}
