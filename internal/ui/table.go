package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/josephgoksu/tasklist/internal/util"
)

// Table renders rows in a compact fixed-width layout for the terminal.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
	Styles   Styles
}

// ColumnWidths calculates column widths in terminal cells.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	if t.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.MaxWidth)
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}
	st := t.Styles
	if st.Theme == "" {
		st = NewStyles(task.DefaultTheme)
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	cells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cells[i] = st.Header.Render(padRight(h, widths[i]))
	}
	sb.WriteString(" " + strings.Join(cells, "  ") + "\n")

	for i, w := range widths {
		cells[i] = st.Subtle.Render(strings.Repeat("─", w))
	}
	sb.WriteString(" " + strings.Join(cells, "──") + "\n")

	for _, row := range t.Rows {
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			cells[i] = st.Text.Render(padRight(truncate(val, widths[i]), widths[i]))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}
	return sb.String()
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return strings.Repeat("…", width)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// padRight pads s to width terminal cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// TaskTable lays out tasks as ID, Title, Priority, Status and Updated columns.
func TaskTable(tasks []task.Task, st Styles, maxWidth int) *Table {
	tbl := &Table{
		Headers:  []string{"ID", "Title", "Priority", "Status", "Updated"},
		MaxWidth: maxWidth,
		Styles:   st,
	}
	for _, t := range tasks {
		tbl.Rows = append(tbl.Rows, []string{
			util.ShortID(t.ID, 0),
			t.Title,
			t.Priority.Label(),
			t.Status.Label(),
			t.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return tbl
}

// RenderTask renders the full detail of a single task.
func RenderTask(t task.Task, st Styles) string {
	var sb strings.Builder
	sb.WriteString(st.Checkbox(t) + " " + st.Title.Render(t.Title) + "\n")
	sb.WriteString(st.Subtle.Render("ID:       ") + t.ID + "\n")
	sb.WriteString(st.Subtle.Render("Priority: ") + st.PriorityBadge(t.Priority) + "\n")
	sb.WriteString(st.Subtle.Render("Status:   ") + st.StatusBadge(t.Status) + "\n")
	sb.WriteString(st.Subtle.Render("Created:  ") + t.CreatedAt.Local().Format("2006-01-02 15:04:05") + "\n")
	sb.WriteString(st.Subtle.Render("Updated:  ") + t.UpdatedAt.Local().Format("2006-01-02 15:04:05") + "\n")
	if t.Description != "" {
		sb.WriteString("\n" + st.Text.Render(t.Description) + "\n")
	}
	return sb.String()
}

// RenderSummary renders the counts line shown under task lists.
func RenderSummary(c task.Counts, st Styles) string {
	return st.Subtle.Render(
		strings.Join([]string{
			plural(c.Total, "task"),
			st.StatusBadge(task.StatusTodo) + " " + itoa(c.Todo),
			st.StatusBadge(task.StatusInProgress) + " " + itoa(c.InProgress),
			st.StatusBadge(task.StatusCompleted) + " " + itoa(c.Completed),
		}, " • "),
	)
}
