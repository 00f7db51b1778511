package api

import "github.com/example/task-tracker/modules/activity"

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the HTTP response for operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityResponse is the HTTP response for the activity feed.
type ActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
	Total   int              `json:"total"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// Error messages returned to clients. Internal detail is only logged.
const (
	msgInvalidBody     = "Invalid request body"
	msgTitleRequired   = "Title is required"
	msgInvalidStatus   = "Invalid status"
	msgInvalidPriority = "Invalid priority"
	msgInvalidSort     = "Invalid sort"
	msgInvalidLimit    = "Invalid limit"
	msgInvalidInput    = "Invalid input"
	msgTaskNotFound    = "Task not found"
	msgTaskDeleted     = "Task deleted successfully"
	msgFetchTasks      = "Failed to fetch tasks"
	msgCreateTask      = "Failed to create task"
	msgFetchTask       = "Failed to fetch task"
	msgUpdateTask      = "Failed to update task"
	msgDeleteTask      = "Failed to delete task"
	msgFetchStats      = "Failed to fetch stats"
	msgFetchActivity   = "Failed to fetch activity"
)
