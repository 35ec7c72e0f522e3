package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range TaskStatuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("Todo")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
	assert.Contains(t, ve.Message, "backlog, todo, working, done")
}

func TestTaskStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusBacklog.Rank())
	assert.Equal(t, 3, StatusDone.Rank())
	assert.Equal(t, -1, TaskStatus("").Rank())
	assert.False(t, TaskStatus("").Valid())
}

func TestTaskInputNormalize(t *testing.T) {
	in := TaskInput{Title: "x"}
	require.NoError(t, in.Normalize())
	assert.Equal(t, StatusBacklog, in.Status)
	assert.NotNil(t, in.Tags)

	long := make([]rune, MaxTitleLength)
	for i := range long {
		long[i] = 'é'
	}
	in = TaskInput{Title: string(long)}
	assert.NoError(t, in.Normalize(), "limit counts characters, not bytes")
}

func TestTaskPatch(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())

	title := ""
	err := TaskPatch{Title: &title}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title: title must not be empty", ve.Error())
}

func TestTagsScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want Tags
	}{
		{"json string", `["a","b"]`, Tags{"a", "b"}},
		{"json bytes", []byte(`["x"]`), Tags{"x"}},
		{"null column", nil, Tags{}},
		{"json null", "null", Tags{}},
		{"corrupt", "{oops", Tags{}},
		{"wrong shape", `{"a":1}`, Tags{}},
		{"wrong type", int64(5), Tags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags Tags
			require.NoError(t, tags.Scan(tt.src))
			assert.Equal(t, tt.want, tags)
		})
	}
}

func TestTagsValueAndJSON(t *testing.T) {
	v, err := Tags(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = Tags{"a", "a"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","a"]`, v)

	b, err := json.Marshal(struct{ Tags Tags }{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Tags":[]}`, string(b))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T09:00", "2024-01-01T09:00:00"},
		{"2024-01-01T09:00:30", "2024-01-01T09:00:30"},
		{"2024-01-01T09:00:30.250", "2024-01-01T09:00:30.25"},
		{"2024-01-01 09:00", "2024-01-01T09:00:00"},
		{"2024-01-01", "2024-01-01T00:00:00"},
		{"2024-01-01T09:00:00Z", "2024-01-01T09:00:00"},
		{"2024-01-01T11:00:00+02:00", "2024-01-01T09:00:00"},
		{"2024-01-01T11:00+02:00", "2024-01-01T09:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	for _, bad := range []string{"", "tomorrow", "2024-13-01T00:00"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimestampStorageSortsChronologically(t *testing.T) {
	a := MustParseTimestamp("2024-01-01T09:00:00.5")
	b := MustParseTimestamp("2024-01-01T09:00:01")
	c := MustParseTimestamp("2024-01-01T10:00")

	assert.Less(t, a.StorageString(), b.StorageString())
	assert.Less(t, b.StorageString(), c.StorageString())
	assert.Len(t, a.StorageString(), len(storageLayout))
}

func TestTimestampJSONAndScan(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01T09:00"`), &ts))

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-01T09:00:00"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))

	var scanned Timestamp
	require.NoError(t, scanned.Scan("2024-01-01T09:00:00.000000"))
	assert.Equal(t, ts, scanned)

	require.NoError(t, scanned.Scan(time.Date(2024, 1, 1, 9, 0, 0, 0, time.FixedZone("x", 3600))))
	assert.Equal(t, ts, scanned, "wall clock is kept for driver-parsed times")

	assert.Error(t, scanned.Scan(3.5))
}

func TestEventInputValidate(t *testing.T) {
	start := MustParseTimestamp("2024-01-01T10:00")
	end := MustParseTimestamp("2024-01-01T09:00")

	assert.NoError(t, EventInput{Title: "backwards", Start: start, End: end}.Validate())

	err := EventInput{Title: "e", Start: start}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "end", ve.Field)
	assert.True(t, EventPatch{}.Empty())
}

func TestTitleRules(t *testing.T) {
	long := string(make([]rune, MaxTitleLength+1))

	tests := []struct {
		name      string
		validate  func(string) error
		title     string
		wantError bool
	}{
		{"task whitespace", ValidateTaskTitle, "   ", false},
		{"task empty", ValidateTaskTitle, "", true},
		{"task too long", ValidateTaskTitle, long, true},
		{"event empty", ValidateEventTitle, "", false},
		{"event whitespace", ValidateEventTitle, " ", false},
		{"event too long", ValidateEventTitle, long, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate(tt.title)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "title", ve.Field)
		})
	}

	title := ""
	assert.NoError(t, EventPatch{Title: &title}.Validate())
	assert.False(t, EventPatch{Title: &title}.Empty())
}
