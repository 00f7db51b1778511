package task

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResult, error) {
	created, err := m.repo.Create(ctx, req.Task)
	if errors.Is(err, domain.ErrValidation) {
		return TaskResult{Invalid: domain.ValidationCode(err)}, nil
	}
	if err != nil {
		m.logger.Error("Failed to create task", "error", err)
		return TaskResult{}, err
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    created.ID,
			Title:     created.Title,
			Status:    string(created.Status),
			Priority:  string(created.Priority),
			CreatedAt: created.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			m.logger.Warn("Failed to publish TaskCreated event", "task_id", created.ID, "error", err)
		}
	}

	return TaskResult{Task: &created, Found: true}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResult, error) {
	t, found, err := m.repo.GetByID(ctx, req.TaskID)
	if err != nil {
		m.logger.Error("Failed to fetch task", "task_id", req.TaskID, "error", err)
		return TaskResult{}, err
	}
	if !found {
		return TaskResult{Found: false}, nil
	}
	return TaskResult{Task: &t, Found: true}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResult, error) {
	updated, found, err := m.repo.Update(ctx, req.TaskID, req.Patch)
	if errors.Is(err, domain.ErrValidation) {
		return TaskResult{Found: found, Invalid: domain.ValidationCode(err)}, nil
	}
	if err != nil {
		m.logger.Error("Failed to update task", "task_id", req.TaskID, "error", err)
		return TaskResult{}, err
	}
	if !found {
		return TaskResult{Found: false}, nil
	}

	if m.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    updated.ID,
			Title:     updated.Title,
			Status:    string(updated.Status),
			Fields:    req.Patch.Fields(),
			UpdatedAt: m.repo.now(),
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskUpdated event", "task_id", updated.ID, "error", err)
		}
	}

	return TaskResult{Task: &updated, Found: true}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	deleted, err := m.repo.Delete(ctx, req.TaskID)
	if err != nil {
		m.logger.Error("Failed to delete task", "task_id", req.TaskID, "error", err)
		return DeleteTaskResponse{Deleted: false}, err
	}
	if !deleted {
		return DeleteTaskResponse{Deleted: false}, nil
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			DeletedAt: m.repo.now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TaskDeleted event", "task_id", req.TaskID, "error", err)
		}
	}

	return DeleteTaskResponse{Deleted: true}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	view, err := domain.ParseView(req.Status, req.Sort)
	if err != nil {
		return ListTasksResponse{Tasks: []domain.Task{}, Invalid: domain.ValidationCode(err)}, nil
	}

	all, err := m.repo.List(ctx)
	if err != nil {
		m.logger.Error("Failed to fetch tasks", "error", err)
		return ListTasksResponse{}, err
	}

	tasks := domain.ApplyView(all, view)
	return ListTasksResponse{
		Tasks: tasks,
		Total: len(tasks),
	}, nil
}

// taskStats handles the task-stats service request.
func (m *TaskModule) taskStats(ctx context.Context, _ TaskStatsRequest, _ *mono.Msg) (TaskStatsResponse, error) {
	all, err := m.repo.List(ctx)
	if err != nil {
		m.logger.Error("Failed to compute task stats", "error", err)
		return TaskStatsResponse{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	return TaskStatsResponse{Stats: domain.Summarize(all)}, nil
}

// storeHealth handles the store-health service request.
func (m *TaskModule) storeHealth(ctx context.Context, _ StoreHealthRequest, _ *mono.Msg) (StoreHealthResponse, error) {
	status := m.Health(ctx)
	resp := StoreHealthResponse{
		Healthy: status.Healthy,
		Message: status.Message,
	}
	if m.store != nil {
		resp.Store = m.store.Name()
	}
	return resp, nil
}
