package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

// harness runs commands against a throwaway config and database.
type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	prevLogger := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		log.SetOutput(os.Stderr)
	})

	return &harness{t: t, dir: t.TempDir()}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(h.dir, "config.yaml"),
		"--db", filepath.Join(h.dir, "timely.db"),
	}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()

	out, err := h.run(args...)
	require.NoError(h.t, err, "timely %v", args)
	return out
}

func TestMigrate(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("migrate")
	assert.Contains(t, out, "schema version 4")
	assert.FileExists(t, filepath.Join(h.dir, "timely.db"))
}

func TestTaskCommands(t *testing.T) {
	h := newHarness(t)

	var created model.Task
	out := h.mustRun("task", "add", "Write proposal", "--status", "todo", "--order", "1", "--tags", "doc, api", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, model.StatusTodo, created.Status)
	assert.Equal(t, model.Tags{"doc", "api"}, created.Tags)
	assert.Nil(t, created.Description)

	h.mustRun("task", "add", "Backlog item")

	out = h.mustRun("task", "list")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Write proposal")
	assert.Contains(t, out, "Backlog item")

	var listed []model.Task
	out = h.mustRun("task", "list", "--tags", "api", "-o", "yaml")
	require.NoError(t, yaml.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Write proposal", listed[0].Title)

	out = h.mustRun("task", "show", "1")
	assert.Contains(t, out, "Write proposal")
	assert.Contains(t, out, "doc, api")

	out = h.mustRun("task", "delete", "1")
	assert.Contains(t, out, "deleted task 1")

	_, err := h.run("task", "show", "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskCommandErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("task", "add", "x", "--status", "blocked")
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)

	_, err = h.run("task", "list", "--status", "blocked")
	assert.ErrorAs(t, err, &ve)

	_, err = h.run("task", "list", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = h.run("task", "delete", "abc")
	assert.ErrorContains(t, err, "invalid id")

	_, err = h.run("task", "delete", "7")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEventCommands(t *testing.T) {
	h := newHarness(t)

	h.mustRun("task", "add", "Owner")

	var event model.Event
	out := h.mustRun("event", "add", "Review",
		"--start", "2024-01-01T09:00", "--end", "2024-01-01T10:00", "--task", "1", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &event))
	assert.Equal(t, int64(1), event.ID)
	require.NotNil(t, event.TaskID)
	assert.Equal(t, int64(1), *event.TaskID)

	out = h.mustRun("event", "list", "--start", "2024-01-01T09:30", "--end", "2024-01-01T11:00")
	assert.Contains(t, out, "Review")
	assert.Contains(t, out, "2024-01-01T09:00:00")

	var events []model.Event
	out = h.mustRun("event", "list", "--start", "2024-01-01T10:01", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	assert.Empty(t, events)

	_, err := h.run("event", "add", "Orphan", "--start", "2024-01-01T09:00", "--end", "2024-01-01T10:00", "--task", "9")
	assert.ErrorIs(t, err, store.ErrForeignKey)

	_, err = h.run("event", "add", "Bad", "--start", "soon", "--end", "2024-01-01T10:00")
	assert.ErrorContains(t, err, "--start")

	h.mustRun("task", "delete", "1")
	events = nil
	out = h.mustRun("event", "list", "--task", "1", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	assert.Empty(t, events)
}

func TestEventDelete(t *testing.T) {
	h := newHarness(t)

	h.mustRun("event", "add", "Standup", "--start", "2024-01-01T09:00", "--end", "2024-01-01T09:15", "--all-day")

	out := h.mustRun("event", "delete", "1")
	assert.Contains(t, out, "deleted event 1")

	_, err := h.run("event", "delete", "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("config", "init")
	assert.Contains(t, out, "config.yaml")
	assert.FileExists(t, filepath.Join(h.dir, "config.yaml"))

	_, err := h.run("config", "init")
	assert.ErrorContains(t, err, "already exists")

	h.mustRun("config", "init", "--force")

	var cfg model.AppConfig
	out = h.mustRun("config", "show")
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, filepath.Join(h.dir, "timely.db"), cfg.Database.Path)
}

func TestUnknownLogLevel(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("--log-level", "loud", "migrate")
	assert.ErrorContains(t, err, "unknown log level")
}
