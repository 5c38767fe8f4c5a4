package importer

import (
	"fmt"
	"strings"
)

// Mode controls what happens to document items that match an existing item.
type Mode string

const (
	// ModeAppend leaves matching items untouched; new children are still added under them.
	ModeAppend Mode = "append"
	// ModeUpdate overwrites matching items in place.
	ModeUpdate Mode = "update"
	// ModeSkip leaves matching items untouched and skips everything declared under them.
	ModeSkip Mode = "skip"
)

// Modes lists the accepted Mode values.
var Modes = []string{string(ModeUpdate), string(ModeSkip), string(ModeAppend)}

// ParseMode validates a mode name. Empty selects ModeAppend.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAppend:
		return ModeAppend, nil
	case ModeUpdate:
		return ModeUpdate, nil
	case ModeSkip:
		return ModeSkip, nil
	}
	return "", fmt.Errorf("invalid mode %q (expected one of %s)", s, strings.Join(Modes, ", "))
}

// Missing controls what happens to items whose target cannot be resolved.
type Missing string

const (
	// MissingSkip omits the item.
	MissingSkip Missing = "skip"
	// MissingCreate would create the target; content creation is not supported,
	// so the item is skipped with a warning.
	MissingCreate Missing = "create"
	// MissingDefault points the item at the configured default page, if it exists.
	MissingDefault Missing = "default"
)

// MissingPolicies lists the accepted Missing values.
var MissingPolicies = []string{string(MissingCreate), string(MissingSkip), string(MissingDefault)}

// ParseMissing validates a missing-target policy. Empty selects MissingSkip.
func ParseMissing(s string) (Missing, error) {
	switch Missing(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingSkip:
		return MissingSkip, nil
	case MissingCreate:
		return MissingCreate, nil
	case MissingDefault:
		return MissingDefault, nil
	}
	return "", fmt.Errorf("invalid missing policy %q (expected one of %s)", s, strings.Join(MissingPolicies, ", "))
}

// Options configures an import run.
type Options struct {
	Mode    Mode
	Missing Missing

	// DefaultPage is the page path used by MissingDefault.
	DefaultPage string

	// BaseURL resolves relative item URLs.
	BaseURL string

	// DryRun resolves and reports without writing to the store.
	DryRun bool
}
