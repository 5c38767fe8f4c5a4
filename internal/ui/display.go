package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when f is not a terminal or its size is unknown.
const DefaultTermWidth = 100

// IsTerminal reports whether f is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TermWidth returns the column count of f, or DefaultTermWidth.
func TermWidth(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultTermWidth
	}
	if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
		return w
	}
	return DefaultTermWidth
}
