package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/store"
	"github.com/google/uuid"
)

// maxIDAttempts bounds how often a colliding id is redrawn.
const maxIDAttempts = 5

// ErrIDExhausted is returned when no unused id could be generated.
var ErrIDExhausted = errors.New("could not generate a unique task id")

// Repository implements create/read/update/delete over a RecordStore. Every
// operation loads the full collection, works on it in memory and, for
// mutations, writes it back. Nothing is cached between calls.
type Repository struct {
	store store.RecordStore
	newID func() (string, error)
	now   func() time.Time
}

// NewRepository creates a new task repository over s.
func NewRepository(s store.RecordStore) *Repository {
	return &Repository{
		store: s,
		newID: newTaskID,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// newTaskID returns a UUIDv7: a millisecond timestamp followed by random bits.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// List returns every task in storage order.
func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

// GetByID returns the task with the given id. found is false when no task
// matches; that is not an error.
func (r *Repository) GetByID(ctx context.Context, id string) (t domain.Task, found bool, err error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return domain.Task{}, false, err
	}
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true, nil
	}
	return domain.Task{}, false, nil
}

// Create applies the default policy to input, appends the task and persists
// the collection.
func (r *Repository) Create(ctx context.Context, input domain.CreateInput) (domain.Task, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := r.uniqueID(tasks)
	if err != nil {
		return domain.Task{}, err
	}

	created, err := domain.New(input, id, r.now())
	if err != nil {
		return domain.Task{}, err
	}

	tasks = append(tasks, created)
	if err := r.store.Save(ctx, tasks); err != nil {
		return domain.Task{}, fmt.Errorf("failed to save tasks: %w", err)
	}
	return created, nil
}

// Update merges patch into the task with the given id and persists the
// collection. found is false, and nothing is written, when no task matches.
func (r *Repository) Update(ctx context.Context, id string, patch domain.Patch) (t domain.Task, found bool, err error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return domain.Task{}, false, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return domain.Task{}, false, nil
	}

	merged, err := domain.Merge(tasks[i], patch)
	if err != nil {
		return domain.Task{}, true, err
	}

	tasks[i] = merged
	if err := r.store.Save(ctx, tasks); err != nil {
		return domain.Task{}, true, fmt.Errorf("failed to save tasks: %w", err)
	}
	return merged, true, nil
}

// Delete removes the task with the given id. The collection is only written
// when a task was actually removed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return false, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return false, nil
	}

	remaining := make([]domain.Task, 0, len(tasks)-1)
	remaining = append(remaining, tasks[:i]...)
	remaining = append(remaining, tasks[i+1:]...)

	if err := r.store.Save(ctx, remaining); err != nil {
		return false, fmt.Errorf("failed to save tasks: %w", err)
	}
	return true, nil
}

// uniqueID draws ids until one is not used by tasks.
func (r *Repository) uniqueID(tasks []domain.Task) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := r.newID()
		if err != nil {
			return "", fmt.Errorf("failed to generate task id: %w", err)
		}
		if id != "" && indexOf(tasks, id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func indexOf(tasks []domain.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
