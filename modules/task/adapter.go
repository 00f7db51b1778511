package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, input domain.CreateInput) (domain.Task, error) {
	req := CreateTaskRequest{Task: input}
	var resp TaskResult
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, fmt.Errorf("create-task service call failed: %w", err)
	}
	if resp.Invalid != "" {
		return domain.Task{}, domain.ValidationError(resp.Invalid)
	}
	if resp.Task == nil {
		return domain.Task{}, fmt.Errorf("create-task returned no task")
	}
	return *resp.Task, nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (domain.Task, bool, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp TaskResult
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, false, fmt.Errorf("get-task service call failed: %w", err)
	}
	if !resp.Found || resp.Task == nil {
		return domain.Task{}, false, nil
	}
	return *resp.Task, true, nil
}

// UpdateTask applies a partial update via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, taskID string, patch domain.Patch) (domain.Task, bool, error) {
	req := UpdateTaskRequest{TaskID: taskID, Patch: patch}
	var resp TaskResult
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Task{}, false, fmt.Errorf("update-task service call failed: %w", err)
	}
	if resp.Invalid != "" {
		return domain.Task{}, resp.Found, domain.ValidationError(resp.Invalid)
	}
	if !resp.Found || resp.Task == nil {
		return domain.Task{}, false, nil
	}
	return *resp.Task, true, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	req := DeleteTaskRequest{TaskID: taskID}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return false, fmt.Errorf("delete-task service call failed: %w", err)
	}
	return resp.Deleted, nil
}

// ListTasks lists tasks selected and ordered by view via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, view domain.View) ([]domain.Task, error) {
	req := ListTasksRequest{Status: string(view.Status), Sort: string(view.Sort)}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks service call failed: %w", err)
	}
	if resp.Invalid != "" {
		return nil, domain.ValidationError(resp.Invalid)
	}
	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	return resp.Tasks, nil
}

// TaskStats returns per-status counts via the task-stats service.
func (a *taskAdapter) TaskStats(ctx context.Context) (domain.Stats, error) {
	var req TaskStatsRequest
	var resp TaskStatsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"task-stats",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Stats{}, fmt.Errorf("task-stats service call failed: %w", err)
	}
	return resp.Stats, nil
}

// StoreHealth reports record store reachability via the store-health service.
func (a *taskAdapter) StoreHealth(ctx context.Context) (StoreHealthResponse, error) {
	var req StoreHealthRequest
	var resp StoreHealthResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"store-health",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return StoreHealthResponse{}, fmt.Errorf("store-health service call failed: %w", err)
	}
	return resp, nil
}
