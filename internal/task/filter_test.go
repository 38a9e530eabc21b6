package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return []Task{
		{ID: "a", Title: "Buy milk", Priority: PriorityLow, Status: StatusTodo, CreatedAt: now, UpdatedAt: now},
		{ID: "b", Title: "Ship release", Priority: PriorityHigh, Status: StatusInProgress, CreatedAt: now, UpdatedAt: now},
		{ID: "c", Title: "Write notes", Priority: PriorityHigh, Status: StatusCompleted, CreatedAt: now, UpdatedAt: now},
		{ID: "d", Title: "Call bank", Priority: PriorityMedium, Status: StatusTodo, CreatedAt: now, UpdatedAt: now},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilteredTasks_AllReturnsEverythingInOrder(t *testing.T) {
	tasks := sampleTasks()
	got := FilteredTasks(tasks, DefaultFilters())
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestFilteredTasks_Composition(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name    string
		filters FilterState
		want    []string
	}{
		{"priority only", FilterState{Priority: "high", Status: StatusAll}, []string{"b", "c"}},
		{"status only", FilterState{Priority: PriorityAll, Status: "todo"}, []string{"a", "d"}},
		{"both", FilterState{Priority: "high", Status: "completed"}, []string{"c"}},
		{"no match", FilterState{Priority: "low", Status: "completed"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilteredTasks(tasks, tt.filters)))
		})
	}
}

func TestFilteredTasks_DoesNotAliasInput(t *testing.T) {
	tasks := sampleTasks()
	got := FilteredTasks(tasks, DefaultFilters())
	got[0].Title = "changed"
	assert.Equal(t, "Buy milk", tasks[0].Title)

	assert.NotNil(t, FilteredTasks(nil, DefaultFilters()))
}

func TestFilterState_ActiveAndValidate(t *testing.T) {
	assert.False(t, DefaultFilters().Active())
	assert.True(t, FilterState{Priority: "low", Status: StatusAll}.Active())

	require.NoError(t, DefaultFilters().Validate())
	assert.ErrorIs(t, FilterState{Priority: "urgent", Status: StatusAll}.Validate(), ErrValidation)
	assert.ErrorIs(t, FilterState{}.Validate(), ErrValidation)
}

func TestFilterUpdate_Apply(t *testing.T) {
	f := DefaultFilters()
	high := PriorityFilter("high")
	FilterUpdate{Priority: &high}.Apply(&f)
	assert.Equal(t, FilterState{Priority: "high", Status: StatusAll}, f)

	bad := StatusFilter("later")
	assert.ErrorIs(t, FilterUpdate{Status: &bad}.Validate(), ErrValidation)
}

func TestSummarize(t *testing.T) {
	c := Summarize(sampleTasks())
	assert.Equal(t, Counts{Total: 4, Todo: 2, InProgress: 1, Completed: 1}, c)
}

func TestCycleFilters(t *testing.T) {
	assert.Equal(t, PriorityFilter("high"), NextPriorityFilter(PriorityAll))
	assert.Equal(t, PriorityAll, NextPriorityFilter("low"))
	assert.Equal(t, StatusFilter("todo"), NextStatusFilter(StatusAll))
	assert.Equal(t, StatusAll, NextStatusFilter("completed"))
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggled())
	assert.Equal(t, ThemeLight, ThemeDark.Toggled())

	th, err := ParseTheme("Dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)

	_, err = ParseTheme("solarized")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParsePriorityFilter(t *testing.T) {
	f, err := ParsePriorityFilter("ALL")
	require.NoError(t, err)
	assert.Equal(t, PriorityAll, f)

	f, err = ParsePriorityFilter("medium")
	require.NoError(t, err)
	assert.Equal(t, PriorityFilter("medium"), f)

	_, err = ParsePriorityFilter("urgent")
	assert.Error(t, err)
}
