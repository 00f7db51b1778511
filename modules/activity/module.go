package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// ActivityModule keeps a bounded, newest-first feed of task activity.
// It subscribes to task events using the EventConsumerModule interface.
type ActivityModule struct {
	limit   int
	entries []Entry
	mu      sync.RWMutex
	logger  types.Logger
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)

// NewModule creates an activity module retaining at most limit entries.
func NewModule(limit int, logger types.Logger) *ActivityModule {
	if limit <= 0 {
		limit = 100
	}
	return &ActivityModule{
		limit:   limit,
		entries: make([]Entry, 0, limit),
		logger:  logger.WithModule("activity"),
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-activity", json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register list-activity service: %w", err)
	}
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record(Entry{
		TaskID:    event.TaskID,
		Type:      TypeTaskCreated,
		Message:   fmt.Sprintf("Task '%s' created (%s, %s priority)", event.Title, event.Status, event.Priority),
		Timestamp: event.CreatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	changed := "nothing"
	if len(event.Fields) > 0 {
		changed = strings.Join(event.Fields, ", ")
	}
	m.record(Entry{
		TaskID:    event.TaskID,
		Type:      TypeTaskUpdated,
		Message:   fmt.Sprintf("Task '%s' updated: %s", event.Title, changed),
		Timestamp: event.UpdatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record(Entry{
		TaskID:    event.TaskID,
		Type:      TypeTaskDeleted,
		Message:   fmt.Sprintf("Task %s deleted", event.TaskID),
		Timestamp: event.DeletedAt,
	})
	return nil
}

// record prepends e and drops the oldest entries beyond the limit.
func (m *ActivityModule) record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	m.logger.Debug("Recording activity", "type", e.Type, "task_id", e.TaskID)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{})
	copy(m.entries[1:], m.entries)
	m.entries[0] = e
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
}

// Entries returns up to n entries, newest first. n <= 0 returns all of them.
func (m *ActivityModule) Entries(n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || n > len(m.entries) {
		n = len(m.entries)
	}
	result := make([]Entry, n)
	copy(result, m.entries[:n])
	return result
}

// listActivity handles the list-activity service request.
func (m *ActivityModule) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	entries := m.Entries(req.Limit)
	return ListActivityResponse{
		Entries: entries,
		Total:   len(entries),
	}, nil
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Module started - listening for task events", "limit", m.limit)
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}
