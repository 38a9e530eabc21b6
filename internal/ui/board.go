package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/tasklist/internal/store"
	"github.com/josephgoksu/tasklist/internal/task"
)

// EmptyMessage is shown when no task passes the current filters.
const EmptyMessage = "No tasks match the current filters."

type boardMode int

const (
	modeBrowse boardMode = iota
	modeAdd
	modeConfirmDelete
)

// stateMsg delivers a store change to the running program.
type stateMsg store.State

// Board is the interactive task list. It reads and mutates a Store and
// redraws whenever the store notifies, including changes made elsewhere.
type Board struct {
	store      *store.Store
	updates    chan store.State
	listenerID int

	state   store.State
	visible []task.Task
	styles  Styles
	cursor  int
	mode    boardMode
	input   textinput.Model
	flash   string
	err     error
	width   int
	quit    bool
}

// NewBoard subscribes to s. Call Close when the board is done.
func NewBoard(s *store.Store) Board {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Width = 50

	updates := make(chan store.State, 1)
	b := Board{
		store:   s,
		updates: updates,
		input:   ti,
	}
	b.listenerID = s.AddListener(func(st store.State) {
		// Keep only the newest state; never block the store.
		for {
			select {
			case updates <- st:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	b.refresh(s.Snapshot())
	return b
}

// Close unsubscribes the board from its store.
func (m Board) Close() {
	m.store.RemoveListener(m.listenerID)
}

// RunBoard runs the board full-screen until the user quits.
func RunBoard(s *store.Store) error {
	b := NewBoard(s)
	defer b.Close()

	if _, err := tea.NewProgram(b, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running board: %w", err)
	}
	return nil
}

func waitForState(ch <-chan store.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func (m *Board) refresh(st store.State) {
	m.state = st
	m.visible = st.Filtered()
	m.styles = NewStyles(st.Theme)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m Board) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

// after records the outcome of a store mutation and redraws from the store.
func (m *Board) after(err error, flash string) {
	m.err = err
	m.flash = ""
	if err == nil {
		m.flash = flash
	}
	m.refresh(m.store.Snapshot())
}

func (m Board) Init() tea.Cmd {
	return waitForState(m.updates)
}

func (m Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.refresh(store.State(msg))
		return m, waitForState(m.updates)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Board) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case " ", "enter":
		if t, ok := m.selected(); ok {
			m.after(m.store.ToggleCompletion(t.ID), "")
		}
	case "i":
		if t, ok := m.selected(); ok {
			st := task.StatusInProgress
			m.after(m.store.UpdateTask(t.ID, task.TaskUpdate{Status: &st}), "Started "+t.Title)
		}
	case "+", "-":
		if t, ok := m.selected(); ok {
			p := bumpPriority(t.Priority, msg.String() == "+")
			m.after(m.store.UpdateTask(t.ID, task.TaskUpdate{Priority: &p}), "")
		}
	case "p":
		next := task.NextPriorityFilter(m.state.Filters.Priority)
		m.after(m.store.SetFilter(task.FilterUpdate{Priority: &next}), "")
	case "s":
		next := task.NextStatusFilter(m.state.Filters.Status)
		m.after(m.store.SetFilter(task.FilterUpdate{Status: &next}), "")
	case "c":
		m.after(m.store.ClearFilters(), "Filters cleared")
	case "t":
		m.after(m.store.ToggleTheme(), "")
	case "a":
		m.mode = modeAdd
		m.err = nil
		m.flash = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case "x", "d":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m Board) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.err = nil
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		created, err := m.store.AddTask(m.input.Value(), "", "", "")
		if err != nil {
			// Stay in add mode so the title can be fixed.
			m.err = err
			return m, nil
		}
		m.mode = modeBrowse
		m.input.Blur()
		m.after(nil, "Added "+created.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Board) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	t, ok := m.selected()
	if !ok || (msg.String() != "y" && msg.String() != "Y") {
		m.flash = "Delete cancelled"
		return m, nil
	}
	m.after(m.store.DeleteTask(t.ID), "Deleted "+t.Title)
	return m, nil
}

func bumpPriority(p task.Priority, up bool) task.Priority {
	order := []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh}
	i := 0
	for j, v := range order {
		if v == p {
			i = j
		}
	}
	if up {
		i = min(i+1, len(order)-1)
	} else {
		i = max(i-1, 0)
	}
	return order[i]
}

func (m Board) View() string {
	if m.quit {
		return ""
	}
	st := m.styles
	var sb strings.Builder

	themeIcon := "☀"
	if m.state.Theme == task.ThemeDark {
		themeIcon = "☾"
	}
	sb.WriteString("\n" + st.Header.Render("Tasks") + " " + st.Subtle.Render(themeIcon) + "\n")
	sb.WriteString(RenderFilterBar(m.state.Filters, st) + "\n\n")

	if len(m.visible) == 0 {
		sb.WriteString(st.Subtle.Render(EmptyMessage) + "\n")
	}
	for i, t := range m.visible {
		cursor := "  "
		title := st.Text.Render(t.Title)
		if t.Completed() {
			title = st.Completed.Render(t.Title)
		}
		if i == m.cursor {
			cursor = st.Selected.Render("▶ ")
		}
		fmt.Fprintf(&sb, "%s%s %s  %s  %s\n", cursor, st.Checkbox(t), title, st.PriorityBadge(t.Priority), st.StatusBadge(t.Status))
	}

	sb.WriteString("\n" + RenderSummary(task.Summarize(m.state.Tasks), st) + "\n")

	switch m.mode {
	case modeAdd:
		sb.WriteString("\n" + m.input.View() + "\n")
	case modeConfirmDelete:
		if t, ok := m.selected(); ok {
			sb.WriteString("\n" + st.Warning.Render(fmt.Sprintf("Delete %q? [y/N]", t.Title)) + "\n")
		}
	}

	if m.err != nil {
		msg := m.err.Error()
		var verr *task.ValidationError
		if errors.As(m.err, &verr) {
			msg = verr.Message
		}
		sb.WriteString("\n" + st.Error.Render(msg) + "\n")
	} else if m.flash != "" {
		sb.WriteString("\n" + st.Success.Render(m.flash) + "\n")
	}

	help := "↑/↓ move • space toggle • i start • +/- priority • a add • x delete • p/s filter • c clear • t theme • q quit"
	if m.mode == modeAdd {
		help = "enter save • esc cancel"
	}
	sb.WriteString("\n" + st.Subtle.Render(WrapText(help, max(m.width, 40))) + "\n")
	return sb.String()
}
