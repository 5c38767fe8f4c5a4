package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/atomicfile"
	"github.com/aidanlsb/navport/internal/config"
	"github.com/aidanlsb/navport/internal/store"
	"github.com/aidanlsb/navport/internal/ui"
)

var (
	initBaseURL string
	initName    string
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a new site",
	Long: `Creates a new site at the specified path.

Creates:
  - site.yaml    (site configuration)
  - .navport/    (content store and audit log)
  - .gitignore   (ignores .navport/)

Running init on an existing site keeps its data. --base-url then replaces the
configured base URL, and --name registers the site in config.toml so it can
be selected with --site.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if err := os.MkdirAll(path, 0o755); err != nil {
			return handleError(ErrFileWriteError, fmt.Errorf("failed to create site directory: %w", err), "")
		}

		gitignoreStatus, err := ensureGitignore(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		createdConfig, err := config.CreateDefaultSiteConfig(path, initBaseURL)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		updatedConfig := false
		if !createdConfig && initBaseURL != "" {
			if updatedConfig, err = updateBaseURL(path, initBaseURL); err != nil {
				return handleError(ErrConfigInvalid, err, "Fix site.yaml and try again")
			}
		}

		// Opening the store creates .navport/ and the schema.
		db, err := store.Open(path)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		db.Close()

		registered := false
		if initName != "" {
			changed, err := registerSite(cfg, initName, path)
			if err != nil {
				return handleError(ErrSiteExists, err, "Pick another --name or edit [sites] in config.toml")
			}
			if changed {
				if err := config.SaveTo(config.ResolveConfigPath(configPath), cfg); err != nil {
					return handleError(ErrFileWriteError, err, "")
				}
			}
			registered = true
		}

		if isJSONOutput() {
			data := map[string]interface{}{
				"path":           path,
				"created_config": createdConfig,
				"updated_config": updatedConfig,
				"gitignore":      gitignoreStatus,
			}
			if registered {
				data["name"] = initName
			}
			outputSuccess(data, nil)
			return nil
		}

		switch {
		case createdConfig:
			fmt.Println(ui.Success("Created site.yaml (site configuration)"))
		case updatedConfig:
			fmt.Println(ui.Successf("Set base_url to %s in site.yaml", initBaseURL))
		default:
			fmt.Println("• site.yaml already exists (kept)")
		}
		if registered {
			fmt.Println(ui.Successf("Registered as %s in %s", ui.AccentBold.Render(initName), config.ResolveConfigPath(configPath)))
		}
		fmt.Println(ui.Successf("Ensured %s/ content store exists", store.DirName))

		switch gitignoreStatus {
		case "created":
			fmt.Println(ui.Success("Created .gitignore"))
		case "updated":
			fmt.Println(ui.Success("Updated .gitignore"))
		default:
			fmt.Println("• .gitignore already ignores " + store.DirName + "/")
		}

		if createdConfig {
			fmt.Println("\nSite initialized! Add pages with 'navport page add', then import menus.")
		} else {
			fmt.Println("\nExisting site detected. Configuration preserved.")
		}
		return nil
	},
}

// ensureGitignore makes sure .gitignore lists the store directory and reports
// "created", "updated" or "unchanged".
func ensureGitignore(sitePath string) (string, error) {
	gitignorePath := filepath.Join(sitePath, ".gitignore")
	entry := store.DirName + "/"

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	if strings.Contains(existing, entry) {
		return "unchanged", nil
	}

	status := "created"
	content := "# navport content store and audit log\n" + entry + "\n"
	if existing != "" {
		status = "updated"
		content = strings.TrimRight(existing, "\n") + "\n\n" + content
	}

	if _, err := atomicfile.WriteFile(gitignorePath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

// updateBaseURL rewrites base_url in an existing site.yaml and reports
// whether it changed.
func updateBaseURL(sitePath, baseURL string) (bool, error) {
	siteCfg, err := config.LoadSiteConfig(sitePath)
	if err != nil {
		return false, err
	}
	if siteCfg.BaseURL == baseURL {
		return false, nil
	}
	siteCfg.BaseURL = baseURL
	if err := config.SaveSiteConfig(sitePath, siteCfg); err != nil {
		return false, err
	}
	return true, nil
}

func init() {
	initCmd.Flags().StringVar(&initBaseURL, "base-url", "", "Site root that relative menu URLs resolve against")
	initCmd.Flags().StringVar(&initName, "name", "", "Register the site under this name in config.toml")
	rootCmd.AddCommand(initCmd)
}
