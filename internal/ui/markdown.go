package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// RenderMarkdown renders a menu tree document for the terminal, wrapped to
// width columns. Headings and item targets pick up the accent color.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// markdownStyle covers what `menu show` emits: one heading, a nested bullet
// list, bold titles and inline code targets.
func markdownStyle() ansi.StyleConfig {
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = &color
	}
	muted := "8"
	bold := true
	italic := true
	margin := uint(2)

	var style ansi.StyleConfig
	style.Document.BlockPrefix = "\n"
	style.Document.BlockSuffix = "\n"
	style.Document.Margin = &margin

	style.Heading.Bold = &bold
	style.Heading.Color = accent
	style.Heading.BlockSuffix = "\n"

	style.List.LevelIndent = 2
	style.Item.BlockPrefix = "• "
	style.Enumeration.BlockPrefix = ". "

	style.Strong.Bold = &bold
	style.Emph.Italic = &italic
	style.Emph.Color = &muted

	style.Code.Color = &muted
	if accent != nil {
		style.Code.Color = accent
	}
	style.Link.Color = &muted
	style.LinkText.Bold = &bold
	return style
}
