package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows as borderless aligned columns with a muted header.
type Table struct {
	headers []string
	rows    [][]string
	styles  map[int]lipgloss.Style
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, styles: map[int]lipgloss.Style{}}
}

// StyleColumn applies style to every body cell in column col.
func (t *Table) StyleColumn(col int, style lipgloss.Style) *Table {
	t.styles[col] = style
	return t
}

// AddRow adds a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of body rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table. An empty table renders as "".
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	last := len(t.headers) - 1
	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			if row == table.HeaderRow {
				style = Muted
			} else if s, ok := t.styles[col]; ok {
				style = s
			} else {
				style = lipgloss.NewStyle()
			}
			if col < last {
				style = style.PaddingRight(2)
			}
			return style
		})

	return tbl.Render() + "\n"
}
