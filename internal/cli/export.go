package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/navport/internal/atomicfile"
	"github.com/aidanlsb/navport/internal/audit"
	"github.com/aidanlsb/navport/internal/document"
	"github.com/aidanlsb/navport/internal/exporter"
	"github.com/aidanlsb/navport/internal/ui"
)

var (
	exportMode    = newEnumValue(exporter.Modes...)
	exportBaseURL string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all menus to a JSON or YAML document",
	Long: `Writes every menu in the site to a document that 'navport import' accepts.

Item ids are written as slugs, so importing the document back into the same
site matches the existing items. Files ending in .yaml or .yml are written as
YAML, everything else as JSON. The file is replaced atomically.

Modes:
  absolute  write custom URLs as stored (default)
  relative  strip the site base_url from custom URLs that start with it

Examples:
  navport export menus.json
  navport export menus.yaml --mode relative`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := loggerFromContext(cmd.Context())

	site, err := openSite()
	if err != nil {
		return err
	}
	defer site.Close()

	mode, err := exporter.ParseMode(exportMode.or(site.Config.Export.Mode))
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Fix the export section of site.yaml")
	}
	baseURL := site.Config.BaseURL
	if exportBaseURL != "" {
		baseURL = exportBaseURL
	}

	runID := audit.NewRunID()
	logger.Debug("starting export", "run", runID, "file", path, "mode", mode)

	set, err := exporter.New(site.DB, baseURL, logger).Export(mode)
	if err != nil {
		return handleError(ErrDatabaseError, err, "")
	}

	data, err := document.Serialize(set, document.FormatFromPath(path))
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	n, err := atomicfile.WriteFile(path, data, 0o644)
	if err != nil {
		_ = site.Audit.Log(audit.Entry{RunID: runID, Operation: audit.OpExport, File: path, Error: err.Error()})
		return handleError(ErrFileWriteError, fmt.Errorf("failed to write %s: %w", path, err), "")
	}

	var items int
	for _, m := range set {
		items += len(m.Items)
	}

	var warnings []Warning
	if err := site.Audit.Log(audit.Entry{
		RunID:     runID,
		Operation: audit.OpExport,
		File:      path,
		Counts:    map[string]int{"menus": len(set), "items": items, "bytes": n},
	}); err != nil {
		logger.Warn("audit log not written", "err", err)
		warnings = append(warnings, Warning{Code: WarnAuditFailed, Message: err.Error()})
	}

	if isJSONOutput() {
		out := map[string]interface{}{
			"run_id": runID,
			"file":   path,
			"mode":   mode,
			"bytes":  n,
			"menus":  len(set),
			"items":  items,
		}
		if len(warnings) > 0 {
			outputSuccessWithWarnings(out, warnings, &Meta{Count: len(set)})
		} else {
			outputSuccess(out, &Meta{Count: len(set)})
		}
		return nil
	}

	fmt.Println(ui.Successf("Wrote %d bytes to %s %s", n, ui.FilePath(path),
		ui.Hint(fmt.Sprintf("(%d menus, %d items)", len(set), items))))
	return nil
}

func init() {
	exportCmd.Flags().Var(exportMode, "mode", "URL style for custom items (default from site.yaml, else absolute)")
	exportCmd.Flags().StringVar(&exportBaseURL, "base-url", "", "Override base_url from site.yaml")
	rootCmd.AddCommand(exportCmd)
}
