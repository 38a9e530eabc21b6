package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/tasklist/internal/task"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		contains []string
	}{
		{"short text", "hello world", 20, []string{"hello world"}},
		{"wraps long line", "one two three four", 9, []string{"one two\nthree\nfour"}},
		{"keeps newlines", "a\nb", 10, []string{"a\nb"}},
		{"zero width", "hello world", 0, []string{"hello world"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapText(tt.input, tt.width)
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("WrapText(%q, %d) = %q, want to contain %q", tt.input, tt.width, result, want)
				}
			}
		})
	}
}

func TestRenderFilterBar(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	st := NewStyles(task.ThemeLight)

	assert.Equal(t, "Priority: All • Status: All", RenderFilterBar(task.DefaultFilters(), st))

	f := task.FilterState{Priority: "high", Status: "in-progress"}
	assert.Equal(t, "Priority: High • Status: In Progress", RenderFilterBar(f, st))
}

func TestRenderSummary(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	out := RenderSummary(task.Counts{Total: 3, Todo: 1, InProgress: 1, Completed: 1}, NewStyles(task.ThemeLight))
	assert.Equal(t, "3 tasks • To Do 1 • In Progress 1 • Completed 1", out)

	out = RenderSummary(task.Counts{Total: 1, Todo: 1}, NewStyles(task.ThemeLight))
	assert.True(t, strings.HasPrefix(out, "1 task •"))
}

func TestRenderPanel(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	st := NewStyles(task.ThemeDark)
	out := RenderPanel("Export", "2 tasks written", st.Palette.Success, st)
	assert.Contains(t, out, "Export")
	assert.Contains(t, out, "2 tasks written")
	assert.Contains(t, out, "╭")
}
