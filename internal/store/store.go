package store

import (
	"context"
	"errors"

	"github.com/nhle/timely/internal/model"
)

var (
	// ErrNotFound is returned when an id does not resolve to a live row.
	ErrNotFound = errors.New("not found")

	// ErrForeignKey is returned when an event references a missing task.
	ErrForeignKey = errors.New("foreign key violation")
)

// TaskFilter controls which tasks ListTasks returns.
type TaskFilter struct {
	Status *model.TaskStatus // exact status, or nil (all)
	Tags   []string          // keep tasks carrying any of these tags (OR logic)
}

// EventFilter controls which events ListEvents returns.
type EventFilter struct {
	Start  *model.Timestamp // keep events ending at or after Start
	End    *model.Timestamp // keep events starting at or before End
	TaskID *int64           // exact task link
}

// TaskStore persists kanban tasks.
type TaskStore interface {
	ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// EventStore persists calendar events.
type EventStore interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error)
	CreateEvent(ctx context.Context, in model.EventInput) (*model.Event, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	UpdateEvent(ctx context.Context, id int64, patch model.EventPatch) (*model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// Store is the full persistence interface shared by the API and the CLI.
type Store interface {
	TaskStore
	EventStore

	Ping(ctx context.Context) error
	Close() error
}
