package store

import (
	"fmt"
	"strings"

	"github.com/nhle/timely/internal/model"
)

// ParseTagList splits a comma-separated tag query, trimming whitespace and
// dropping blanks. An input with no usable tags yields nil.
func ParseTagList(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MatchesAnyTag reports whether tags shares at least one entry with wanted.
// An empty wanted set matches everything.
func MatchesAnyTag(tags []string, wanted map[string]struct{}) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, tag := range tags {
		if _, ok := wanted[tag]; ok {
			return true
		}
	}
	return false
}

// FilterByTags keeps the tasks whose tags intersect wanted, preserving order.
func FilterByTags(tasks []model.Task, wanted []string) []model.Task {
	if len(wanted) == 0 {
		return tasks
	}
	set := make(map[string]struct{}, len(wanted))
	for _, tag := range wanted {
		set[tag] = struct{}{}
	}

	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if MatchesAnyTag(t.Tags, set) {
			kept = append(kept, t)
		}
	}
	return kept
}

// statusOrderSQL returns an ORDER BY expression ranking the status column
// by board order rather than alphabetically.
func statusOrderSQL(column string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, s := range model.TaskStatuses {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(model.TaskStatuses))
	return b.String()
}

// buildTaskQuery constructs the SQL query and args for the storage side of
// a TaskFilter. Tag matching happens after retrieval.
func buildTaskQuery(filter TaskFilter) (string, []any) {
	query := "SELECT " + taskColumns + " FROM tasks"

	var args []any
	if filter.Status != nil {
		query += " WHERE status = ?"
		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY " + statusOrderSQL("status") + ", sort_order ASC, id ASC"
	return query, args
}

// buildEventQuery constructs the SQL query and args for an EventFilter.
// The range test is an overlap test, not containment.
func buildEventQuery(filter EventFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Start != nil {
		conditions = append(conditions, "ends_at >= ?")
		args = append(args, filter.Start.StorageString())
	}
	if filter.End != nil {
		conditions = append(conditions, "starts_at <= ?")
		args = append(args, filter.End.StorageString())
	}
	if filter.TaskID != nil {
		conditions = append(conditions, "task_id = ?")
		args = append(args, *filter.TaskID)
	}

	query := "SELECT " + eventColumns + " FROM events"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return query, args
}
