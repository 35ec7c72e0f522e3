package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT,
	status      TEXT NOT NULL DEFAULT 'backlog'
	            CHECK(status IN ('backlog', 'todo', 'working', 'done')),
	sort_order  REAL NOT NULL DEFAULT 0.0
);

CREATE TABLE IF NOT EXISTS events (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT NOT NULL,
	starts_at TEXT NOT NULL,
	ends_at   TEXT NOT NULL,
	task_id   INTEGER REFERENCES tasks(id) ON DELETE CASCADE
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
ALTER TABLE tasks ADD COLUMN tags TEXT NOT NULL DEFAULT '[]';

UPDATE tasks SET tags = '[]' WHERE tags IS NULL OR TRIM(tags) = '';

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
ALTER TABLE events ADD COLUMN all_day INTEGER NOT NULL DEFAULT 0
	CHECK(all_day IN (0, 1));

INSERT INTO schema_version (version) VALUES (3);
`,
	},
	{
		version: 4,
		sql: `
CREATE INDEX IF NOT EXISTS idx_tasks_status_order ON tasks(status, sort_order);
CREATE INDEX IF NOT EXISTS idx_events_task_id ON events(task_id);
CREATE INDEX IF NOT EXISTS idx_events_range ON events(starts_at, ends_at);

INSERT INTO schema_version (version) VALUES (4);
`,
	},
}

// latestVersion is the schema version after all migrations are applied.
func latestVersion() int {
	return migrations[len(migrations)-1].version
}
