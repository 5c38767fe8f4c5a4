package ui

import "fmt"

// Status symbols. Outcome is carried by the symbol, not by color.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

func status(symbol, format string, args ...interface{}) string {
	return symbol + " " + fmt.Sprintf(format, args...)
}

// Success prefixes msg with the success symbol.
func Success(msg string) string { return SymbolSuccess + " " + msg }

func Successf(format string, args ...interface{}) string {
	return status(SymbolSuccess, format, args...)
}

func Errorf(format string, args ...interface{}) string {
	return status(SymbolError, format, args...)
}

func Warningf(format string, args ...interface{}) string {
	return status(SymbolWarning, format, args...)
}

func Infof(format string, args ...interface{}) string {
	return status(SymbolInfo, format, args...)
}

// FilePath styles a file or page path.
func FilePath(path string) string { return Accent.Render(path) }

// Hint styles secondary text.
func Hint(msg string) string { return Muted.Render(msg) }

// Plural picks the singular or plural noun for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Count returns "(n noun)", e.g. "(3 items)".
func Count(n int, singular, plural string) string {
	return fmt.Sprintf("(%d %s)", n, Plural(n, singular, plural))
}
