package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/timely/internal/model"
)

const taskColumns = "id, title, description, status, sort_order, tags"

// ListTasks returns tasks ordered by board column, then by sort order.
// The status filter runs in SQL; the ANY-match tag filter runs here.
func (s *SQLiteStore) ListTasks(
	ctx context.Context,
	filter TaskFilter,
) ([]model.Task, error) {
	query, args := buildTaskQuery(filter)

	tasks := []model.Task{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}

	return FilterByTags(tasks, filter.Tags), nil
}

// CreateTask validates and inserts a new task, returning the stored row.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	in model.TaskInput,
) (*model.Task, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var task *model.Task
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (title, description, status, sort_order, tags)
			VALUES (?, ?, ?, ?, ?)`,
			in.Title, in.Description, string(in.Status), in.Order, model.Tags(in.Tags),
		)
		if err != nil {
			return fmt.Errorf("creating task: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new task id: %w", err)
		}

		task, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// GetTask retrieves a single task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	return getTask(ctx, s.db, id)
}

// UpdateTask applies the fields present in patch and returns the result.
// The whole patch lands in one transaction or not at all.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	id int64,
	patch model.TaskPatch,
) (*model.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetTask(ctx, id)
	}

	var sets []string
	var args []any
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Order != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.Order)
	}
	if patch.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, model.Tags(*patch.Tags))
	}

	var task *model.Task
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		args = append(args, id)
		result, err := tx.ExecContext(ctx,
			"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?",
			args...,
		)
		if err != nil {
			return fmt.Errorf("updating task %d: %w", id, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking affected rows for task %d: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("task %d: %w", id, ErrNotFound)
		}

		task, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task by ID. SQLite cascades the delete to every
// event linked to it.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting task %d: %w", id, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking affected rows for task %d: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// getTask loads one task through q, which may be the pool or a transaction.
func getTask(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Task, error) {
	var task model.Task
	err := sqlx.GetContext(ctx, q, &task,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, translateError(err))
	}
	return &task, nil
}
