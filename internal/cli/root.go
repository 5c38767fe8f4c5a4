// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/config"
	"github.com/aidanlsb/navport/internal/ui"
)

var (
	// Global flags
	siteName     string // Named site from config
	sitePathFlag string // Explicit path
	configPath   string
	verbose      bool

	// Resolved values
	resolvedSitePath string
	cfg              *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "navport",
	Short: "navport - import and export site navigation menus",
	Long: `navport moves navigation menus between a site's content store and
plain JSON or YAML documents.

Menus are found by theme location or by name, items by page path, taxonomy
term or URL. Parent/child structure is written with symbolic slugs, so a
document exported from one site can be imported into another.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, logLevel(verbose))))

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix config.toml and try again")
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Skip site resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "sites", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		resolvedSitePath, err = resolveSitePath()
		if err != nil {
			return err
		}

		if info, err := os.Stat(resolvedSitePath); err != nil || !info.IsDir() {
			return handleError(ErrSiteNotFound,
				fmt.Errorf("site not found: %s", resolvedSitePath),
				fmt.Sprintf("Run 'navport init %s' to create it", resolvedSitePath))
		}
		return nil
	},
}

// resolveSitePath picks the site directory: explicit path > named site >
// default site > current directory when it holds a site.yaml.
func resolveSitePath() (string, error) {
	if sitePathFlag != "" {
		return sitePathFlag, nil
	}

	if siteName != "" {
		path, err := cfg.GetSitePath(siteName)
		if err != nil {
			return "", handleError(ErrSiteNotFound, err, "Add it under [sites] in config.toml")
		}
		return path, nil
	}

	if cfg.DefaultSite != "" {
		path, err := cfg.GetSitePath("")
		if err != nil {
			return "", handleError(ErrSiteNotFound, err, "Check default_site in config.toml")
		}
		return path, nil
	}

	if wd, err := os.Getwd(); err == nil {
		if _, err := os.Stat(filepath.Join(wd, config.SiteFile)); err == nil {
			return wd, nil
		}
	}

	return "", handleErrorMsg(ErrSiteNotSpecified, "no site specified", `Either:
  1. Use --site <name> (from config)
  2. Use --site-path /path/to/site
  3. Set default_site in ~/.config/navport/config.toml
  4. Run navport from a directory containing site.yaml
  5. Run 'navport init /path/to/new/site' to create one`)
}

// Execute runs the CLI. Errors already reported as JSON are not printed again.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !isReported(err) {
		fmt.Fprintln(os.Stderr, ui.Errorf("%v", err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&siteName, "site", "s", "", "Named site from config")
	rootCmd.PersistentFlags().StringVar(&sitePathFlag, "site-path", "", "Explicit path to site directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
}

// getSitePath returns the resolved site path.
func getSitePath() string {
	return resolvedSitePath
}
