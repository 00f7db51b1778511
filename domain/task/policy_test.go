package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := New(CreateInput{Title: "Buy milk"}, "id-1", now)
	require.NoError(t, err)

	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, StatusTodo, got.Status)
	assert.Equal(t, PriorityMedium, got.Priority)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestNew_KeepsSuppliedValues(t *testing.T) {
	input := CreateInput{
		Title:       "Ship release",
		Description: strPtr("tag and publish"),
		Status:      StatusInProgress,
		Priority:    PriorityHigh,
		DueDate:     strPtr("2025-04-01"),
	}

	got, err := New(input, "id-2", time.Now())
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, got.Status)
	assert.Equal(t, PriorityHigh, got.Priority)
	require.NotNil(t, got.Description)
	assert.Equal(t, "tag and publish", *got.Description)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-04-01", *got.DueDate)

	// the result must not alias the input
	*input.Description = "changed"
	assert.Equal(t, "tag and publish", *got.Description)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"empty title", CreateInput{}, ErrTitleRequired},
		{"unknown status", CreateInput{Title: "x", Status: "blocked"}, ErrInvalidStatus},
		{"unknown priority", CreateInput{Title: "x", Priority: "urgent"}, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input, "id", time.Now())
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func existingTask() Task {
	return Task{
		ID:          "task-1",
		Title:       "Write report",
		Description: strPtr("quarterly numbers"),
		Status:      StatusTodo,
		Priority:    PriorityLow,
		DueDate:     strPtr("2025-05-01"),
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func decodePatch(t *testing.T, body string) Patch {
	t.Helper()
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestMerge_OnlyStatus(t *testing.T) {
	orig := existingTask()

	got, err := Merge(orig, decodePatch(t, `{"status":"done"}`))
	require.NoError(t, err)

	want := orig.Clone()
	want.Status = StatusDone
	assert.Equal(t, want, got)
}

func TestMerge_ExplicitNullClears(t *testing.T) {
	got, err := Merge(existingTask(), decodePatch(t, `{"description":null,"dueDate":null}`))
	require.NoError(t, err)

	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
	assert.Equal(t, "Write report", got.Title)
}

func TestMerge_IgnoresIdentityFields(t *testing.T) {
	orig := existingTask()

	got, err := Merge(orig, decodePatch(t, `{"id":"hijack","createdAt":"1999-01-01T00:00:00Z","title":"New title"}`))
	require.NoError(t, err)

	assert.Equal(t, orig.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(orig.CreatedAt))
	assert.Equal(t, "New title", got.Title)
}

// Blank titles are accepted on update; only create enforces a title.
func TestMerge_AllowsEmptyTitle(t *testing.T) {
	got, err := Merge(existingTask(), decodePatch(t, `{"title":""}`))
	require.NoError(t, err)
	assert.Equal(t, "", got.Title)
}

func TestMerge_RejectsBadEnums(t *testing.T) {
	tests := []struct {
		body string
		want error
	}{
		{`{"status":"blocked"}`, ErrInvalidStatus},
		{`{"status":null}`, ErrInvalidStatus},
		{`{"priority":"urgent"}`, ErrInvalidPriority},
		{`{"priority":null}`, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			_, err := Merge(existingTask(), decodePatch(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	orig := existingTask()

	_, err := Merge(orig, decodePatch(t, `{"description":"rewritten"}`))
	require.NoError(t, err)

	assert.Equal(t, "quarterly numbers", *orig.Description)
}

func TestPatch_MarshalOmitsUnspecified(t *testing.T) {
	p := decodePatch(t, `{"status":"done","dueDate":null}`)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"done","dueDate":null}`, string(data))
}

func TestValidationCodeRoundTrip(t *testing.T) {
	for _, err := range []error{ErrTitleRequired, ErrInvalidStatus, ErrInvalidPriority, ErrInvalidSort} {
		code := ValidationCode(err)
		assert.NotEmpty(t, code)
		assert.ErrorIs(t, ValidationError(code), err)
	}

	assert.Empty(t, ValidationCode(assert.AnError))
	assert.ErrorIs(t, ValidationError("something-else"), ErrValidation)
}

func TestPatch_Fields(t *testing.T) {
	assert.Empty(t, decodePatch(t, `{}`).Fields())
	assert.Equal(t,
		[]string{"title", "status", "dueDate"},
		decodePatch(t, `{"dueDate":null,"status":"done","title":"x","id":"ignored"}`).Fields(),
	)
}
