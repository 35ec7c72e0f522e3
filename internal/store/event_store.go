package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/timely/internal/model"
)

const eventColumns = "id, title, starts_at, ends_at, all_day, task_id"

// ListEvents returns events overlapping the filter window, in storage order.
func (s *SQLiteStore) ListEvents(
	ctx context.Context,
	filter EventFilter,
) ([]model.Event, error) {
	query, args := buildEventQuery(filter)

	events := []model.Event{}
	if err := s.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	return events, nil
}

// CreateEvent inserts a new event. A TaskID that does not reference a live
// task fails with ErrForeignKey.
func (s *SQLiteStore) CreateEvent(
	ctx context.Context,
	in model.EventInput,
) (*model.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var event *model.Event
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO events (title, starts_at, ends_at, all_day, task_id)
			VALUES (?, ?, ?, ?, ?)`,
			in.Title, in.Start, in.End, boolToInt(in.AllDay), in.TaskID,
		)
		if err != nil {
			return fmt.Errorf("creating event: %w", translateError(err))
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading new event id: %w", err)
		}

		event, err = getEvent(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent retrieves a single event by ID.
func (s *SQLiteStore) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	return getEvent(ctx, s.db, id)
}

// UpdateEvent applies the fields present in patch and returns the result.
func (s *SQLiteStore) UpdateEvent(
	ctx context.Context,
	id int64,
	patch model.EventPatch,
) (*model.Event, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.GetEvent(ctx, id)
	}

	var sets []string
	var args []any
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Start != nil {
		sets = append(sets, "starts_at = ?")
		args = append(args, *patch.Start)
	}
	if patch.End != nil {
		sets = append(sets, "ends_at = ?")
		args = append(args, *patch.End)
	}
	if patch.AllDay != nil {
		sets = append(sets, "all_day = ?")
		args = append(args, boolToInt(*patch.AllDay))
	}
	if patch.TaskID != nil {
		sets = append(sets, "task_id = ?")
		args = append(args, *patch.TaskID)
	}

	var event *model.Event
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		args = append(args, id)
		result, err := tx.ExecContext(ctx,
			"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ?",
			args...,
		)
		if err != nil {
			return fmt.Errorf("updating event %d: %w", id, translateError(err))
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking affected rows for event %d: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}

		event, err = getEvent(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event by ID.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting event %d: %w", id, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking affected rows for event %d: %w", id, err)
		}
		if rows == 0 {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// getEvent loads one event through q, which may be the pool or a transaction.
func getEvent(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Event, error) {
	var event model.Event
	err := sqlx.GetContext(ctx, q, &event,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting event %d: %w", id, translateError(err))
	}
	return &event, nil
}
