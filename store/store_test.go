package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/task-tracker/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger implements types.Logger and keeps error messages for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Debug(msg string, args ...any) {}
func (l *recordingLogger) Info(msg string, args ...any)  {}
func (l *recordingLogger) Warn(msg string, args ...any)  {}
func (l *recordingLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
func (l *recordingLogger) With(args ...any) types.Logger         { return l }
func (l *recordingLogger) WithError(err error) types.Logger      { return l }
func (l *recordingLogger) WithModule(module string) types.Logger { return l }

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func strPtr(s string) *string { return &s }

func sampleTasks() []task.Task {
	return []task.Task{
		{
			ID:        "first",
			Title:     "Buy milk",
			Status:    task.StatusTodo,
			Priority:  task.PriorityMedium,
			CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 123000000, time.UTC),
		},
		{
			ID:          "second",
			Title:       "File taxes <soon> & more",
			Description: strPtr(""),
			Status:      task.StatusInProgress,
			Priority:    task.PriorityHigh,
			DueDate:     strPtr("2025-04-15"),
			CreatedAt:   time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}

// exerciseRecordStore runs the behaviour every backend must share.
func exerciseRecordStore(t *testing.T, s RecordStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("first load is empty", func(t *testing.T) {
		tasks, err := s.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("save then load keeps order and fields", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, sampleTasks()))

		tasks, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleTasks(), tasks)
	})

	t.Run("save of load is a no-op", func(t *testing.T) {
		before, err := s.Load(ctx)
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, before))

		after, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("saving nil stores an empty collection", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, nil))

		tasks, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}

func TestEncodeIsStable(t *testing.T) {
	log := &recordingLogger{}

	first, err := encode(sampleTasks())
	require.NoError(t, err)

	second, err := encode(decode(first, "test", log))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Zero(t, log.errorCount())
}

func TestEncodeEmpty(t *testing.T) {
	data, err := encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLen    int
		wantLogged bool
	}{
		{"empty array", "[]", 0, false},
		{"null document", "null", 0, false},
		{"surrounding whitespace", "  [{\"id\":\"x\",\"title\":\"t\",\"status\":\"todo\",\"priority\":\"low\",\"createdAt\":\"2025-01-01T00:00:00Z\"}]\n", 1, false},
		{"basic offset timestamp", "[{\"id\":\"x\",\"title\":\"t\",\"status\":\"todo\",\"priority\":\"low\",\"createdAt\":\"2024-01-15T10:00:00+0000\"}]", 1, false},
		{"unparseable timestamp", "[{\"id\":\"x\",\"title\":\"t\",\"createdAt\":\"yesterday\"}]", 0, true},
		{"truncated", "[{\"id\":", 0, true},
		{"not an array", "{\"id\":\"x\"}", 0, true},
		{"empty file", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			tasks := decode([]byte(tt.input), "test", log)

			assert.NotNil(t, tasks)
			assert.Len(t, tasks, tt.wantLen)
			assert.Equal(t, tt.wantLogged, log.errorCount() > 0)
		})
	}
}
