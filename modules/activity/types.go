package activity

import (
	"context"
	"time"
)

// Entry types recorded in the feed.
const (
	TypeTaskCreated = "task_created"
	TypeTaskUpdated = "task_updated"
	TypeTaskDeleted = "task_deleted"
)

// Entry is one item of the activity feed.
type Entry struct {
	TaskID    string    `json:"taskId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListActivityRequest is the request for reading the feed. A zero Limit
// returns every retained entry.
type ListActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListActivityResponse is the response for reading the feed.
type ListActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// ActivityPort defines the interface for reading the activity feed.
type ActivityPort interface {
	ListActivity(ctx context.Context, limit int) ([]Entry, error)
}
