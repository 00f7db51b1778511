package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Task{
		{ID: "a", Title: "A", Status: StatusTodo, Priority: PriorityLow, DueDate: strPtr("2025-03-01"), CreatedAt: base},
		{ID: "b", Title: "B", Status: StatusDone, Priority: PriorityHigh, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Title: "C", Status: StatusTodo, Priority: PriorityHigh, DueDate: strPtr("2025-02-01T09:30:00Z"), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Title: "D", Status: StatusInProgress, Priority: PriorityMedium, DueDate: strPtr("not a date"), CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseView(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		sort    string
		want    View
		wantErr error
	}{
		{name: "empty", want: View{}},
		{name: "all", status: "all", want: View{}},
		{name: "status and sort", status: "in-progress", sort: "priority", want: View{Status: StatusInProgress, Sort: SortPriority}},
		{name: "bad status", status: "archived", wantErr: ErrInvalidStatus},
		{name: "bad sort", sort: "title", wantErr: ErrInvalidSort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseView(tt.status, tt.sort)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyView(t *testing.T) {
	tests := []struct {
		name string
		view View
		want []string
	}{
		{"zero view keeps storage order", View{}, []string{"a", "b", "c", "d"}},
		{"status filter", View{Status: StatusTodo}, []string{"a", "c"}},
		{"priority high first, stable", View{Sort: SortPriority}, []string{"b", "c", "d", "a"}},
		{"due date ascending, missing last", View{Sort: SortDueDate}, []string{"c", "a", "b", "d"}},
		{"created newest first", View{Sort: SortCreatedAt}, []string{"d", "c", "b", "a"}},
		{"filter then sort", View{Status: StatusTodo, Sort: SortCreatedAt}, []string{"c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplyView(sampleTasks(), tt.view)))
		})
	}
}

func TestApplyView_DoesNotReorderInput(t *testing.T) {
	tasks := sampleTasks()
	_ = ApplyView(tasks, View{Sort: SortCreatedAt})
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(tasks))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Stats{Total: 4, Todo: 2, InProgress: 1, Done: 1}, Summarize(sampleTasks()))
	assert.Equal(t, Stats{}, Summarize(nil))
}
