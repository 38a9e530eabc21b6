package task

import (
	"fmt"
	"strings"
)

// FilterAll matches every value of a selector.
const FilterAll = "all"

// PriorityFilter selects tasks by priority, or all of them.
type PriorityFilter string

// StatusFilter selects tasks by status, or all of them.
type StatusFilter string

const (
	PriorityAll PriorityFilter = FilterAll
	StatusAll   StatusFilter   = FilterAll
)

// FilterState is the current filter selection.
type FilterState struct {
	Priority PriorityFilter `json:"priority" yaml:"priority" validate:"required,oneof=all high medium low"`
	Status   StatusFilter   `json:"status" yaml:"status" validate:"required,oneof=all todo in-progress completed"`
}

// DefaultFilters returns the selection used on first run and after a clear.
func DefaultFilters() FilterState {
	return FilterState{Priority: PriorityAll, Status: StatusAll}
}

// Active reports whether any selector narrows the list.
func (f FilterState) Active() bool {
	return f.Priority != PriorityAll || f.Status != StatusAll
}

// Validate checks enum membership of both selectors.
func (f FilterState) Validate() error {
	return structError(validate.Struct(f))
}

// FilterUpdate carries a partial filter change. Nil selectors are left untouched.
type FilterUpdate struct {
	Priority *PriorityFilter `validate:"omitnil,oneof=all high medium low"`
	Status   *StatusFilter   `validate:"omitnil,oneof=all todo in-progress completed"`
}

// Validate checks the supplied selectors.
func (u FilterUpdate) Validate() error {
	return structError(validate.Struct(u))
}

// Apply merges the supplied selectors into f.
func (u FilterUpdate) Apply(f *FilterState) {
	if u.Priority != nil {
		f.Priority = *u.Priority
	}
	if u.Status != nil {
		f.Status = *u.Status
	}
}

// Matches reports whether t passes both selectors.
func Matches(t Task, f FilterState) bool {
	if f.Priority != PriorityAll && Priority(f.Priority) != t.Priority {
		return false
	}
	if f.Status != StatusAll && Status(f.Status) != t.Status {
		return false
	}
	return true
}

// FilteredTasks returns the tasks matching filters in their original order.
// The result is always a new slice; tasks is never modified.
func FilteredTasks(tasks []Task, filters FilterState) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, filters) {
			out = append(out, t)
		}
	}
	return out
}

// Counts summarizes a collection by status.
type Counts struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

// Summarize counts tasks per status.
func Summarize(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			c.Todo++
		case StatusInProgress:
			c.InProgress++
		case StatusCompleted:
			c.Completed++
		}
	}
	return c
}

// ParsePriorityFilter accepts "all" or any priority.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	if strings.EqualFold(strings.TrimSpace(s), FilterAll) {
		return PriorityAll, nil
	}
	p, err := ParsePriority(s)
	if err != nil {
		return "", err
	}
	return PriorityFilter(p), nil
}

// ParseStatusFilter accepts "all" or any status.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if strings.EqualFold(strings.TrimSpace(s), FilterAll) {
		return StatusAll, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusFilter(st), nil
}

// NextPriorityFilter cycles all -> high -> medium -> low -> all.
func NextPriorityFilter(f PriorityFilter) PriorityFilter {
	order := []PriorityFilter{PriorityAll, PriorityFilter(PriorityHigh), PriorityFilter(PriorityMedium), PriorityFilter(PriorityLow)}
	for i, v := range order {
		if v == f {
			return order[(i+1)%len(order)]
		}
	}
	return PriorityAll
}

// NextStatusFilter cycles all -> todo -> in-progress -> completed -> all.
func NextStatusFilter(f StatusFilter) StatusFilter {
	order := []StatusFilter{StatusAll, StatusFilter(StatusTodo), StatusFilter(StatusInProgress), StatusFilter(StatusCompleted)}
	for i, v := range order {
		if v == f {
			return order[(i+1)%len(order)]
		}
	}
	return StatusAll
}

// Theme is the global color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used on first run.
const DefaultTheme = ThemeLight

// Valid reports enum membership.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled flips light and dark.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme parses user input into a Theme.
func ParseTheme(s string) (Theme, error) {
	th := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !th.Valid() {
		return "", &ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q (expected light or dark)", s)}
	}
	return th, nil
}
