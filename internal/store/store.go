// Package store owns the task collection, the filter selection and the
// theme, and mirrors them to durable storage after every change.
//
// A Store is an explicit state object: construct one, call Load, and pass
// it by reference to every consumer. Consumers read through accessors
// (which return copies) and register listeners to hear about changes.
package store

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/tasklist/internal/storage"
	"github.com/josephgoksu/tasklist/internal/task"
)

// Listener is called with a snapshot of the new state after every change.
type Listener func(State)

// Store is the authoritative in-memory state plus its persistence mirror.
type Store struct {
	storage storage.Storage
	key     string
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger

	mu    sync.RWMutex
	state State

	lmu          sync.Mutex
	listeners    map[int]Listener
	nextListener int
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage entry name. Default is DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides identifier generation. Default is a random UUID.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used for recovered errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store backed by st. The store starts in DefaultState;
// call Load to read persisted state.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage:   st,
		key:       DefaultKey,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		logger:    slog.Default(),
		state:     DefaultState(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage entry name.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory state with the persisted one. A missing
// entry yields DefaultState. A corrupt or unreadable entry is logged and
// also yields DefaultState; Load never fails.
func (s *Store) Load() {
	st, err := s.read()
	if err != nil {
		s.logger.Warn("discarding unusable task state, starting with defaults", "key", s.key, "error", err)
		st = DefaultState()
	}

	s.mu.Lock()
	s.state = st
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
}

// Reload re-reads the persisted state after an outside change. Unlike
// Load, a corrupt or unreadable entry keeps the current state and is
// returned as a StorageCorruptionError, so a bad read never replaces a
// good collection. A missing entry still resets to DefaultState.
func (s *Store) Reload() error {
	st, err := s.read()
	if err != nil {
		s.logger.Warn("keeping current task state, reload failed", "key", s.key, "error", err)
		return err
	}

	s.mu.Lock()
	s.state = st
	snap := s.state.clone()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

func (s *Store) read() (State, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		return State{}, &StorageCorruptionError{Key: s.key, Err: err}
	}
	if !ok {
		return DefaultState(), nil
	}
	st, err := UnmarshalState([]byte(raw))
	if err != nil {
		if c, isCorrupt := err.(*StorageCorruptionError); isCorrupt {
			c.Key = s.key
		}
		return State{}, err
	}
	return st, nil
}

func (s *Store) persist(st State) error {
	data, err := MarshalState(st)
	if err != nil {
		return fmt.Errorf("encode task state: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("persist task state: %w", err)
	}
	return nil
}

// mutate applies fn to a copy of the current state. When fn reports a
// change, the copy is persisted and only then becomes the current state;
// listeners fire after the lock is released.
func (s *Store) mutate(fn func(st *State) (changed bool, err error)) error {
	s.mu.Lock()
	next := s.state.clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	snap := next.clone()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// AddTask validates and appends a new task. An empty priority defaults to
// medium and an empty status to todo.
func (s *Store) AddTask(title, description string, priority task.Priority, status task.Status) (task.Task, error) {
	if err := task.ValidateTitle(title); err != nil {
		return task.Task{}, err
	}
	if priority == "" {
		priority = task.DefaultPriority
	}
	if status == "" {
		status = task.DefaultStatus
	}

	var created task.Task
	err := s.mutate(func(st *State) (bool, error) {
		now := s.now()
		t := task.Task{
			ID:          s.newID(),
			Title:       title,
			Description: description,
			Priority:    priority,
			Status:      status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := t.Validate(); err != nil {
			return false, err
		}
		if st.indexOf(t.ID) >= 0 {
			return false, fmt.Errorf("generated id %q already in use", t.ID)
		}
		st.Tasks = append(st.Tasks, t)
		created = t
		return true, nil
	})
	if err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// UpdateTask merges the supplied fields into the task with id and refreshes
// UpdatedAt. An unknown id is a no-op. Invalid input returns a
// task.ValidationError and changes nothing.
func (s *Store) UpdateTask(id string, upd task.TaskUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}
	return s.mutate(func(st *State) (bool, error) {
		i := st.indexOf(id)
		if i < 0 {
			return false, nil
		}
		t := &st.Tasks[i]
		upd.Apply(t)
		t.UpdatedAt = s.touch(t.UpdatedAt)
		return true, nil
	})
}

// touch returns the current time, nudged forward if the clock has not
// advanced past prev, so UpdatedAt strictly increases on every mutation.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

// ToggleCompletion flips a task between completed and todo. An unknown id is a no-op.
func (s *Store) ToggleCompletion(id string) error {
	return s.mutate(func(st *State) (bool, error) {
		i := st.indexOf(id)
		if i < 0 {
			return false, nil
		}
		t := &st.Tasks[i]
		t.Status = t.Status.Toggled()
		t.UpdatedAt = s.touch(t.UpdatedAt)
		return true, nil
	})
}

// DeleteTask removes the task with id. An unknown id is a no-op and
// leaves both memory and storage untouched.
func (s *Store) DeleteTask(id string) error {
	return s.mutate(func(st *State) (bool, error) {
		i := st.indexOf(id)
		if i < 0 {
			return false, nil
		}
		st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
		return true, nil
	})
}

// SetFilter merges the supplied selectors into the filter state.
func (s *Store) SetFilter(upd task.FilterUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}
	return s.mutate(func(st *State) (bool, error) {
		upd.Apply(&st.Filters)
		return true, nil
	})
}

// ClearFilters resets both selectors to all.
func (s *Store) ClearFilters() error {
	return s.mutate(func(st *State) (bool, error) {
		st.Filters = task.DefaultFilters()
		return true, nil
	})
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme() error {
	return s.mutate(func(st *State) (bool, error) {
		st.Theme = st.Theme.Toggled()
		return true, nil
	})
}

// SetTheme selects a theme explicitly.
func (s *Store) SetTheme(th task.Theme) error {
	if !th.Valid() {
		return &task.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", th)}
	}
	return s.mutate(func(st *State) (bool, error) {
		st.Theme = th
		return true, nil
	})
}

// ImportTasks adds externally produced tasks. With replace, the collection
// becomes exactly tasks; otherwise tasks whose id already exists are
// skipped. It returns how many tasks were added.
func (s *Store) ImportTasks(tasks []task.Task, replace bool) (int, error) {
	seen := make(map[string]struct{}, len(tasks))
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return 0, fmt.Errorf("task %d (%s): %w", i, strings.TrimSpace(tasks[i].Title), err)
		}
		if _, dup := seen[tasks[i].ID]; dup {
			return 0, &task.ValidationError{Field: "id", Message: fmt.Sprintf("duplicate id %q in import", tasks[i].ID)}
		}
		seen[tasks[i].ID] = struct{}{}
	}

	added := 0
	err := s.mutate(func(st *State) (bool, error) {
		if replace {
			st.Tasks = append([]task.Task{}, tasks...)
			added = len(tasks)
			return true, nil
		}
		for _, t := range tasks {
			if st.indexOf(t.ID) >= 0 {
				continue
			}
			st.Tasks = append(st.Tasks, t)
			added++
		}
		return added > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []task.Task {
	return s.Snapshot().Tasks
}

// Task returns the task with id.
func (s *Store) Task(id string) (task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.state.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.state.Tasks[i], true
}

// Filters returns the current filter selection.
func (s *Store) Filters() task.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Filters
}

// Theme returns the current theme.
func (s *Store) Theme() task.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme
}

// FilteredTasks computes the derived view from the current tasks and filters.
func (s *Store) FilteredTasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return task.FilteredTasks(s.state.Tasks, s.state.Filters)
}

// AddListener registers fn and returns an id for RemoveListener.
func (s *Store) AddListener(fn Listener) int {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.nextListener++
	s.listeners[s.nextListener] = fn
	return s.nextListener
}

// RemoveListener unregisters a listener. Unknown ids are ignored.
func (s *Store) RemoveListener(id int) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	delete(s.listeners, id)
}

func (s *Store) notify(snap State) {
	s.lmu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}
