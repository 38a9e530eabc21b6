package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/josephgoksu/tasklist/internal/task"
)

// DefaultKey is the storage entry that holds the persisted state.
const DefaultKey = "task-storage"

// stateVersion is written with every persisted state for future migrations.
const stateVersion = 0

// State is everything the store owns.
type State struct {
	Tasks   []task.Task      `json:"tasks"`
	Filters task.FilterState `json:"filters"`
	Theme   task.Theme       `json:"theme"`
}

// DefaultState is the first-run state: no tasks, no filters, light theme.
func DefaultState() State {
	return State{
		Tasks:   []task.Task{},
		Filters: task.DefaultFilters(),
		Theme:   task.DefaultTheme,
	}
}

func (s State) clone() State {
	out := s
	out.Tasks = slices.Clone(s.Tasks)
	if out.Tasks == nil {
		out.Tasks = []task.Task{}
	}
	return out
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.Tasks, func(t task.Task) bool { return t.ID == id })
}

// Filtered returns the tasks matching the state's own filters.
func (s State) Filtered() []task.Task {
	return task.FilteredTasks(s.Tasks, s.Filters)
}

// Validate checks every invariant a loaded state must hold.
func (s State) Validate() error {
	seen := make(map[string]struct{}, len(s.Tasks))
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("task %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if err := s.Filters.Validate(); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	if !s.Theme.Valid() {
		return fmt.Errorf("theme: unknown value %q", s.Theme)
	}
	return nil
}

type persistedState struct {
	State
	Version int `json:"version"`
}

// MarshalState encodes s in the persisted layout:
// {"tasks":[...],"filters":{...},"theme":"...","version":0}.
func MarshalState(s State) ([]byte, error) {
	return json.Marshal(persistedState{State: s.clone(), Version: stateVersion})
}

// UnmarshalState decodes and validates a persisted state. Fields missing
// from data keep their defaults. Any failure is a StorageCorruptionError.
func UnmarshalState(data []byte) (State, error) {
	p := persistedState{State: DefaultState()}
	if err := json.Unmarshal(data, &p); err != nil {
		return State{}, &StorageCorruptionError{Err: err}
	}
	if p.Tasks == nil {
		p.Tasks = []task.Task{}
	}
	if err := p.State.Validate(); err != nil {
		return State{}, &StorageCorruptionError{Err: err}
	}
	return p.State, nil
}

// StorageCorruptionError reports a persisted entry that could not be used.
// The store recovers from it by falling back to DefaultState.
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("corrupt task state: %v", e.Err)
	}
	return fmt.Sprintf("corrupt task state in %q: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error { return e.Err }

// IsCorruption reports whether err is a StorageCorruptionError.
func IsCorruption(err error) bool {
	var c *StorageCorruptionError
	return errors.As(err, &c)
}
