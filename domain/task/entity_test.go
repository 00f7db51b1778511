package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_UnmarshalCreatedAtForms(t *testing.T) {
	want := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt string
		want      time.Time
	}{
		{"rfc3339 zulu", "2024-01-15T10:00:00Z", want},
		{"rfc3339 fractional", "2024-01-15T10:00:00.000Z", want},
		{"colon offset", "2024-01-15T12:00:00+02:00", want},
		{"basic offset", "2024-01-15T10:00:00+0000", want},
		{"basic offset with fraction", "2024-01-15T11:00:00.5+0100", want.Add(500 * time.Millisecond)},
		{"minutes only", "2024-01-15T10:00Z", want},
		{"no offset", "2024-01-15T10:00:00", want},
		{"date only", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Task
			doc := `{"id":"1","title":"a","status":"todo","priority":"low","createdAt":"` + tt.createdAt + `"}`
			require.NoError(t, json.Unmarshal([]byte(doc), &got))
			assert.True(t, got.CreatedAt.Equal(tt.want), "got %s", got.CreatedAt)
			assert.Equal(t, "1", got.ID)
			assert.Equal(t, PriorityLow, got.Priority)
		})
	}
}

func TestTask_UnmarshalCollectionWithMixedTimestamps(t *testing.T) {
	doc := `[
		{"id":"1","title":"a","status":"todo","priority":"low","createdAt":"2024-01-15T10:00:00+0000"},
		{"id":"2","title":"b","status":"done","priority":"high","description":"x","createdAt":"2024-01-16T10:00:00.123Z"}
	]`

	var tasks []Task
	require.NoError(t, json.Unmarshal([]byte(doc), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "x", *tasks[1].Description)
	assert.True(t, tasks[0].CreatedAt.Before(tasks[1].CreatedAt))
}

func TestTask_UnmarshalRejectsNonTimestamp(t *testing.T) {
	var got Task
	err := json.Unmarshal([]byte(`{"id":"1","createdAt":"yesterday"}`), &got)
	assert.Error(t, err)
}

func TestTask_CreatedAtRoundTripsAsRFC3339(t *testing.T) {
	var got Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","createdAt":"2024-01-15T10:00:00+0000"}`), &got))

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"createdAt":"2024-01-15T10:00:00Z"`)
}
