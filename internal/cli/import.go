package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/audit"
	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/importer"
	"github.com/aidanlsb/navport/internal/ui"
	"github.com/aidanlsb/navport/internal/watcher"
)

var (
	importMode    = newEnumValue(importer.Modes...)
	importMissing = newEnumValue(importer.MissingPolicies...)
	importDefault string
	importBaseURL string
	importDryRun  bool
	importWatch   bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import menus from a JSON or YAML document",
	Long: `Creates or updates menus and menu items from a document.

Each menu is found by its theme location, then by name, and is created by
name when neither matches. Items are processed in document order; an item's
parent must appear before it. Files ending in .yaml or .yml are read as YAML,
everything else as JSON.

Modes decide what happens to items that match an existing item (same id slug,
or same page, term or URL):
  append   leave the existing item as is, attach new children under it (default)
  update   overwrite the existing item in place
  skip     leave the existing item and everything under it alone

Missing policies decide what happens to items whose target does not exist:
  skip     drop the item (default)
  create   warn and drop the item (creating content is not supported)
  default  point the item at the --default page instead

Examples:
  navport import menus.json
  navport import menus.yaml --mode update
  navport import menus.json --missing default --default contact
  navport import menus.json --dry-run
  navport import menus.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	site, err := openSite()
	if err != nil {
		return err
	}
	defer site.Close()

	opts, err := importOptions(site)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix the import section of site.yaml")
	}

	if !importWatch {
		return importOnce(cmd, site, path, opts)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := importOnce(cmd, site, path, opts); err != nil {
		logger.Error("import failed", "err", err)
	}

	w, err := watcher.New(watcher.Config{
		Path:   path,
		Logger: logger,
		OnChange: func(context.Context) error {
			logger.Info("document changed, re-importing", "file", path)
			return importOnce(cmd, site, path, opts)
		},
	})
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	if !isJSONOutput() {
		fmt.Println(ui.Infof("Watching %s for changes (Ctrl+C to stop)", ui.FilePath(path)))
	}
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return handleError(ErrFileReadError, err, "")
	}
	return nil
}

// importOnce runs one import of path, writes the audit entry and prints the result.
func importOnce(cmd *cobra.Command, site *siteContext, path string, opts importer.Options) error {
	logger := loggerFromContext(cmd.Context())

	runID := audit.NewRunID()
	logger.Debug("starting import", "run", runID, "file", path, "mode", opts.Mode, "missing", opts.Missing, "dry_run", opts.DryRun)

	res, err := importer.New(site.DB, opts, logger).ImportFile(path)
	if err != nil {
		_ = site.Audit.Log(audit.Entry{RunID: runID, Operation: audit.OpImport, File: path, DryRun: opts.DryRun, Error: err.Error()})
		return handleImportError(err)
	}
	res.RunID = runID
	counts := res.Counts()

	var warnings []Warning
	if err := site.Audit.Log(audit.Entry{
		RunID:     runID,
		Operation: audit.OpImport,
		File:      path,
		DryRun:    opts.DryRun,
		Counts:    countsMap(counts),
	}); err != nil {
		logger.Warn("audit log not written", "err", err)
		warnings = append(warnings, Warning{Code: WarnAuditFailed, Message: err.Error()})
	}

	if isJSONOutput() {
		warnings = append(importWarnings(res), warnings...)
		data := map[string]interface{}{
			"run_id":  res.RunID,
			"file":    path,
			"dry_run": res.DryRun,
			"counts":  counts,
			"menus":   res.Menus,
		}
		if len(warnings) > 0 {
			outputSuccessWithWarnings(data, warnings, &Meta{Count: len(res.Menus)})
		} else {
			outputSuccess(data, &Meta{Count: len(res.Menus)})
		}
		return nil
	}

	printImportResult(res, counts)
	return nil
}

// importOptions merges flags over site.yaml defaults.
func importOptions(site *siteContext) (importer.Options, error) {
	mode, err := importer.ParseMode(importMode.or(site.Config.Import.Mode))
	if err != nil {
		return importer.Options{}, err
	}
	missing, err := importer.ParseMissing(importMissing.or(site.Config.Import.Missing))
	if err != nil {
		return importer.Options{}, err
	}

	opts := importer.Options{
		Mode:        mode,
		Missing:     missing,
		DefaultPage: site.Config.Import.Default,
		BaseURL:     site.Config.BaseURL,
		DryRun:      importDryRun,
	}
	if importDefault != "" {
		opts.DefaultPage = importDefault
	}
	if importBaseURL != "" {
		opts.BaseURL = importBaseURL
	}
	return opts, nil
}

func handleImportError(err error) error {
	var inputErr *importer.InputError
	if !errors.As(err, &inputErr) {
		return handleError(ErrDatabaseError, err, "")
	}

	var parseErr *document.ParseError
	switch {
	case inputErr.NotFound():
		return handleError(ErrFileNotFound, err, "Check the document path")
	case errors.As(err, &parseErr):
		return handleError(ErrInvalidInput, err, "Expected a menu object or a list of menu objects")
	default:
		return handleError(ErrFileReadError, err, "")
	}
}

func importWarnings(res *importer.Result) []Warning {
	var warnings []Warning
	for _, m := range res.Menus {
		switch m.Action {
		case importer.MenuSkipped, importer.MenuError:
			warnings = append(warnings, Warning{Code: WarnMenuSkipped, Message: m.Reason, Ref: menuRef(m)})
		}
		for _, it := range m.Items {
			ref := fmt.Sprintf("%s[%d]", menuRef(m), it.Index)
			switch it.Action {
			case importer.ItemSkipped:
				warnings = append(warnings, Warning{Code: WarnItemSkipped, Message: it.Reason, Ref: ref})
			case importer.ItemError:
				warnings = append(warnings, Warning{Code: WarnItemFailed, Message: it.Reason, Ref: ref})
			}
		}
	}
	return warnings
}

func menuRef(m importer.MenuResult) string {
	if m.Name != "" {
		return m.Name
	}
	if m.Location != "" {
		return "@" + m.Location
	}
	return "(unnamed)"
}

func countsMap(c importer.Counts) map[string]int {
	return map[string]int{
		"menus":         c.Menus,
		"menus_skipped": c.MenusSkipped,
		"created":       c.Created,
		"updated":       c.Updated,
		"unchanged":     c.Unchanged,
		"skipped":       c.Skipped,
		"errors":        c.Errors,
	}
}

func printImportResult(res *importer.Result, counts importer.Counts) {
	if res.DryRun {
		fmt.Println(ui.Bold.Render("Dry run: no changes made"))
	}

	for _, m := range res.Menus {
		switch m.Action {
		case importer.MenuSkipped, importer.MenuError:
			fmt.Println(ui.Warningf("%s: %s", menuRef(m), m.Reason))
			continue
		}
		fmt.Printf("%s %s\n", ui.AccentBold.Render(menuRef(m)), ui.Hint("("+m.Action+")"))

		for _, it := range m.Items {
			label := it.Title
			if label == "" {
				label = fmt.Sprintf("item %d", it.Index)
			}
			switch it.Action {
			case importer.ItemCreated, importer.ItemUpdated:
				fmt.Printf("  %s %s %s\n", ui.Successf("%s", it.Action), label, ui.Hint(fmt.Sprintf("#%d", it.ID)))
			case importer.ItemCreate, importer.ItemUpdate, importer.ItemUnchanged:
				fmt.Printf("  %s %s\n", ui.Bold.Render(it.Action), label)
			case importer.ItemSkipped:
				fmt.Printf("  %s %s: %s\n", ui.Warningf("skip"), label, it.Reason)
			case importer.ItemError:
				fmt.Printf("  %s %s: %s\n", ui.Errorf("error"), label, it.Reason)
			}
		}
	}

	fmt.Println()
	fmt.Println(counts.Summary())
}

func init() {
	importCmd.Flags().Var(importMode, "mode", "How to treat items matching existing ones (default from site.yaml, else append)")
	importCmd.Flags().Var(importMissing, "missing", "How to treat items whose target is missing (default from site.yaml, else skip)")
	importCmd.Flags().StringVar(&importDefault, "default", "", "Page path used with --missing default")
	importCmd.Flags().StringVar(&importBaseURL, "base-url", "", "Override base_url from site.yaml")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Preview changes without writing")
	importCmd.Flags().BoolVar(&importWatch, "watch", false, "Re-import whenever the document changes")
	rootCmd.AddCommand(importCmd)
}
