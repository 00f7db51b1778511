package task

import (
	"context"

	domain "github.com/example/task-tracker/domain/task"
)

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Task domain.CreateInput `json:"task"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
}

// UpdateTaskRequest is the request for a partial task update.
type UpdateTaskRequest struct {
	TaskID string       `json:"task_id"`
	Patch  domain.Patch `json:"patch"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// ListTasksRequest is the request for listing tasks. Empty fields mean no
// filter and storage order.
type ListTasksRequest struct {
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// TaskResult is the reply of the get, create and update services.
// Invalid carries a validation code when the request was rejected.
type TaskResult struct {
	Task    *domain.Task `json:"task,omitempty"`
	Found   bool         `json:"found"`
	Invalid string       `json:"invalid,omitempty"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks   []domain.Task `json:"tasks"`
	Total   int           `json:"total"`
	Invalid string        `json:"invalid,omitempty"`
}

// TaskStatsRequest is the request for collection statistics.
type TaskStatsRequest struct{}

// TaskStatsResponse is the response for collection statistics.
type TaskStatsResponse struct {
	Stats domain.Stats `json:"stats"`
}

// StoreHealthRequest is the request for the record store health check.
type StoreHealthRequest struct{}

// StoreHealthResponse reports whether the record store is reachable.
type StoreHealthResponse struct {
	Healthy bool   `json:"healthy"`
	Store   string `json:"store"`
	Message string `json:"message,omitempty"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the core domain.
//
// A lookup miss is reported through the found result, never as an error.
// Rejected input is reported as an error wrapping domain.ErrValidation.
type TaskPort interface {
	CreateTask(ctx context.Context, input domain.CreateInput) (domain.Task, error)
	GetTask(ctx context.Context, taskID string) (t domain.Task, found bool, err error)
	UpdateTask(ctx context.Context, taskID string, patch domain.Patch) (t domain.Task, found bool, err error)
	DeleteTask(ctx context.Context, taskID string) (deleted bool, err error)
	ListTasks(ctx context.Context, view domain.View) ([]domain.Task, error)
	TaskStats(ctx context.Context) (domain.Stats, error)
	StoreHealth(ctx context.Context) (StoreHealthResponse, error)
}
