package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static tabular data. Columns carrying money or counts can
// be right-aligned so the digits line up, and summary tables can attach a
// totals footer rendered under its own divider.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string

	rightCols map[int]bool
}

// NewTable creates a new Table with the given title and headers.
func NewTable(title string, headers []string) *Table {
	return &Table{
		Title:     title,
		Headers:   headers,
		rightCols: make(map[int]bool),
	}
}

// AddRow adds a data row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// AlignRight marks columns (by index) as right-aligned.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.rightCols[c] = true
	}
	return t
}

// SetFooter attaches a totals row rendered below the data rows.
func (t *Table) SetFooter(cells ...string) {
	t.Footer = cells
}

// View renders the table using the provided styles. A table with no data
// rows renders nothing.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := t.columnWidths()

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	sb.WriteString(t.renderRow(t.Headers, headerStyle, sepStyle, widths))
	sb.WriteString(t.divider(sepStyle, widths))
	for _, row := range t.Rows {
		sb.WriteString(t.renderRow(row, rowStyle, sepStyle, widths))
	}
	if len(t.Footer) > 0 {
		sb.WriteString(t.divider(sepStyle, widths))
		sb.WriteString(t.renderRow(t.Footer, headerStyle, sepStyle, widths))
	}
	sb.WriteString("\n")

	return sb.String()
}

// columnWidths sizes each column to its widest cell across the header,
// every row, and the footer. lipgloss.Width ignores ANSI escapes, so
// styled cells (colored loss ratios) measure correctly.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	// Cell padding counts toward the lipgloss width.
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

func (t *Table) renderRow(cells []string, style, sep lipgloss.Style, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		cs := style.Width(widths[i])
		if t.rightCols[i] {
			cs = cs.Align(lipgloss.Right)
		}
		sb.WriteString(cs.Render(cell))
		if i < len(cells)-1 && i < len(widths)-1 {
			sb.WriteString(sep.Render("|"))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func (t *Table) divider(sep lipgloss.Style, widths []int) string {
	total := len(widths) - 1 // separators
	for _, w := range widths {
		total += w
	}
	return sep.Render(strings.Repeat("-", total)) + "\n"
}
