package testutil

import (
	"context"
	"testing"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// MustCreateTask inserts a task or fails the test.
func MustCreateTask(t *testing.T, s store.TaskStore, in model.TaskInput) *model.Task {
	t.Helper()

	task, err := s.CreateTask(context.Background(), in)
	if err != nil {
		t.Fatalf("creating task %q: %v", in.Title, err)
	}
	return task
}

// MustCreateEvent inserts an event or fails the test.
func MustCreateEvent(t *testing.T, s store.EventStore, in model.EventInput) *model.Event {
	t.Helper()

	event, err := s.CreateEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("creating event %q: %v", in.Title, err)
	}
	return event
}
