package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Defaults applied by the store when a caller leaves an enum empty.
const (
	DefaultPriority = PriorityMedium
	DefaultStatus   = StatusTodo
)

// Task represents a single item on the list.
type Task struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Description string    `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority" validate:"required,oneof=high medium low"`
	Status      Status    `json:"status" yaml:"status" validate:"required,oneof=todo in-progress completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt" validate:"required"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt" validate:"required,gtefield=CreatedAt"`
}

// TaskUpdate carries the fields of a partial update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority `validate:"omitnil,oneof=high medium low"`
	Status      *Status   `validate:"omitnil,oneof=todo in-progress completed"`
}

// Empty reports whether no field was supplied.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil && u.Status == nil
}

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError describes input that cannot be stored.
// Message is suitable for showing to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// structError converts validator output into a ValidationError for the first failing field.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	e := verrs[0]
	field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
	switch e.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", e.Field())}
	case "oneof":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%v is not a valid %s (expected one of: %s)", e.Value(), field, e.Param())}
	case "gtefield":
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must not be before %s", e.Field(), e.Param())}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed rule %q", e.Tag())}
	}
}

// ValidateTitle rejects titles that are empty once whitespace is trimmed.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "Title is required"}
	}
	return nil
}

// Validate checks that a stored task satisfies every invariant.
func (t *Task) Validate() error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	return structError(validate.Struct(t))
}

// Validate checks the supplied fields of an update.
func (u TaskUpdate) Validate() error {
	if u.Title != nil {
		if err := ValidateTitle(*u.Title); err != nil {
			return err
		}
	}
	return structError(validate.Struct(u))
}

// Apply merges the supplied fields into t. ID and CreatedAt are never touched.
func (u TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
}

// Completed reports whether the task is done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Valid reports enum membership.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Valid reports enum membership.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Toggled returns the status a completion toggle moves to.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusTodo
	}
	return StatusCompleted
}

var titleCaser = cases.Title(language.English)

// Label returns the display name, e.g. "High".
func (p Priority) Label() string {
	return titleCaser.String(string(p))
}

// Label returns the display name, e.g. "In Progress".
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// Option is a value/label pair for pickers.
type Option[T ~string] struct {
	Value T
	Label string
}

var (
	PriorityOptions = []Option[Priority]{
		{PriorityHigh, "High Priority"},
		{PriorityMedium, "Medium Priority"},
		{PriorityLow, "Low Priority"},
	}
	StatusOptions = []Option[Status]{
		{StatusTodo, "To Do"},
		{StatusInProgress, "In Progress"},
		{StatusCompleted, "Completed"},
	}
)

// ParsePriority parses user input into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q (expected high, medium or low)", s)}
	}
	return p, nil
}

// ParseStatus parses user input into a Status. "in_progress" and "doing" are accepted aliases.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "in_progress", "inprogress", "doing":
		norm = string(StatusInProgress)
	case "done":
		norm = string(StatusCompleted)
	}
	st := Status(norm)
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q (expected todo, in-progress or completed)", s)}
	}
	return st, nil
}
