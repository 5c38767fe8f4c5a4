package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/config"
	"github.com/aidanlsb/navport/internal/ui"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List sites registered in config.toml",
	Long: `Lists the named sites from the [sites] table of the global config.
Sites are added with 'navport init <path> --name <name>' and selected with
--site <name>.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		type row struct {
			Name    string `json:"name"`
			Path    string `json:"path"`
			Default bool   `json:"default"`
		}
		names := cfg.SiteNames()
		rows := make([]row, 0, len(names))
		for _, name := range names {
			rows = append(rows, row{Name: name, Path: cfg.Sites[name], Default: name == cfg.DefaultSite})
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config": config.ResolveConfigPath(configPath),
				"sites":  rows,
			}, &Meta{Count: len(rows)})
			return nil
		}

		if len(rows) == 0 {
			fmt.Println(ui.Hint("No sites registered. Use 'navport init <path> --name <name>'."))
			return nil
		}
		t := ui.NewTable("NAME", "PATH", "").StyleColumn(1, ui.Accent)
		for _, r := range rows {
			mark := ""
			if r.Default {
				mark = "default"
			}
			t.AddRow(r.Name, r.Path, mark)
		}
		fmt.Println(t.String())
		return nil
	},
}

// registerSite records name -> path in the [sites] table and makes it the
// default when none is set. It reports whether cfg changed. A name already
// bound to another directory is an error.
func registerSite(c *config.Config, name, path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	if existing, ok := c.Sites[name]; ok {
		if filepath.Clean(existing) != abs {
			return false, fmt.Errorf("site %q is already registered at %s", name, existing)
		}
		return false, nil
	}
	if c.Sites == nil {
		c.Sites = make(map[string]string)
	}
	c.Sites[name] = abs
	if c.DefaultSite == "" {
		c.DefaultSite = name
	}
	return true, nil
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
