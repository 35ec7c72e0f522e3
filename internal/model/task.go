package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

// Task status constants, in board order.
const (
	StatusBacklog TaskStatus = "backlog"
	StatusTodo    TaskStatus = "todo"
	StatusWorking TaskStatus = "working"
	StatusDone    TaskStatus = "done"
)

// TaskStatuses lists every status in its declared board order.
var TaskStatuses = []TaskStatus{StatusBacklog, StatusTodo, StatusWorking, StatusDone}

// MaxTitleLength is the maximum number of characters in a task or event title.
const MaxTitleLength = 200

// Valid reports whether s is one of the four known statuses.
func (s TaskStatus) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of s on the board, or -1 for unknown values.
func (s TaskStatus) Rank() int {
	for i, known := range TaskStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

// ParseStatus converts raw input into a TaskStatus, rejecting unknown values.
func ParseStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		names := make([]string, len(TaskStatuses))
		for i, known := range TaskStatuses {
			names[i] = string(known)
		}
		return "", &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("invalid status %q, must be one of: %s", raw, strings.Join(names, ", ")),
		}
	}
	return s, nil
}

// Task is a kanban card. Events linked to a task are deleted with it.
type Task struct {
	ID          int64      `json:"id" db:"id" yaml:"id"`
	Title       string     `json:"title" db:"title" yaml:"title"`
	Description *string    `json:"description" db:"description" yaml:"description,omitempty"`
	Status      TaskStatus `json:"status" db:"status" yaml:"status"`
	Order       float64    `json:"order" db:"sort_order" yaml:"order"`
	Tags        Tags       `json:"tags" db:"tags" yaml:"tags"`
}

// TaskInput carries the fields accepted when creating a task.
// Zero values fall back to the defaults (backlog, 0.0, no tags).
type TaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Order       float64
	Tags        []string
}

// Normalize validates the input and fills in defaults.
func (in *TaskInput) Normalize() error {
	if err := ValidateTaskTitle(in.Title); err != nil {
		return err
	}
	if in.Status == "" {
		in.Status = StatusBacklog
	}
	if _, err := ParseStatus(string(in.Status)); err != nil {
		return err
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return nil
}

// TaskPatch holds a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Order       *float64
	Tags        *[]string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Order == nil && p.Tags == nil
}

// Validate checks the fields that are present.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := ValidateTaskTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTaskTitle rejects an empty or overlong task title. Whitespace
// counts as content.
func ValidateTaskTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "title must not be empty"}
	}
	return validateTitleLength(title)
}

// ValidateEventTitle only bounds the length; an empty event title is stored
// as given.
func ValidateEventTitle(title string) error {
	return validateTitleLength(title)
}

func validateTitleLength(title string) error {
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength),
		}
	}
	return nil
}
