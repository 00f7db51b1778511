// Package store persists the whole task collection as a single JSON document.
//
// Every backend reads and writes the full collection at once. There is no
// locking between callers: two overlapping read-modify-write cycles can race
// and the last Save wins.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/task-tracker/domain/task"
	"github.com/go-monolith/mono/pkg/types"
)

// ErrIO is wrapped by every error caused by storage that could not be read
// or written.
var ErrIO = errors.New("storage i/o failure")

// RecordStore loads and saves the ordered task collection.
type RecordStore interface {
	// Load returns all stored tasks in storage order. A missing document is
	// initialized to an empty collection. An undecodable document is logged
	// and reported as empty.
	Load(ctx context.Context) ([]task.Task, error)
	// Save overwrites the stored document with tasks.
	Save(ctx context.Context, tasks []task.Task) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Name identifies the backend.
	Name() string
}

// Driver names accepted by the configuration.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverBucket = "bucket"
)

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

// encode renders tasks as an indented JSON array with a trailing newline.
// The output is stable: decoding and re-encoding yields the same bytes.
func encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// decode parses a stored document. Content that is not a JSON array of tasks
// is logged and treated as an empty collection.
func decode(data []byte, source string, logger types.Logger) []task.Task {
	tasks := []task.Task{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &tasks); err != nil {
		logger.Error("Stored task document is unreadable, treating it as empty",
			"source", source,
			"error", err)
		return []task.Task{}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks
}
