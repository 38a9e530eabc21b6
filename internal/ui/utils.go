package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasklist/internal/task"
	"golang.org/x/term"
)

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when it is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// RenderFilterBar shows the active selectors, e.g. "Priority: High • Status: All".
func RenderFilterBar(f task.FilterState, st Styles) string {
	item := func(name string, active bool, value string) string {
		style := st.Subtle
		if active {
			style = st.Selected
		} else {
			value = "All"
		}
		return st.Subtle.Render(name+": ") + style.Render(value)
	}
	pri := item("Priority", f.Priority != task.PriorityAll, task.Priority(f.Priority).Label())
	sta := item("Status", f.Status != task.StatusAll, task.Status(f.Status).Label())
	return pri + st.Subtle.Render(" • ") + sta
}

// RenderPanel renders content in a rounded box with an optional title.
func RenderPanel(title, content string, border lipgloss.Color, st Styles) string {
	style := st.Box.BorderForeground(border)
	if title != "" {
		content = st.Header.Render(title) + "\n" + content
	}
	return style.Render(content)
}

// WrapText wraps text to the specified width on word boundaries.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		if lipgloss.Width(line) <= width {
			result.WriteString(line)
			continue
		}

		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
				current += " " + word
			default:
				result.WriteString(current + "\n")
				current = word
			}
		}
		result.WriteString(current)
	}
	return result.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return itoa(n) + " " + noun + "s"
}

func itoa(n int) string { return strconv.Itoa(n) }
