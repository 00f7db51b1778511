package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/task-tracker/config"
	"github.com/example/task-tracker/events"
	"github.com/example/task-tracker/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
)

// TaskModule provides task management services (core domain).
type TaskModule struct {
	cfg      config.Config
	store    store.RecordStore
	repo     *Repository
	storage  *fsjetstream.PluginModule
	eventBus mono.EventBus
	logger   types.Logger
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.UsePluginModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a task module whose record store is opened on Start
// according to cfg.StoreDriver.
func NewModule(cfg config.Config, logger types.Logger) *TaskModule {
	return &TaskModule{
		cfg:    cfg,
		logger: logger.WithModule("task"),
	}
}

// newModuleWithStore creates a task module over an already opened store.
func newModuleWithStore(s store.RecordStore, logger types.Logger) *TaskModule {
	return &TaskModule{
		cfg:    config.DefaultConfig(),
		store:  s,
		repo:   NewRepository(s),
		logger: logger,
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

// SetPlugin receives the storage plugin used by the bucket driver.
func (m *TaskModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "storage" {
		return
	}
	storage, ok := plugin.(*fsjetstream.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for storage",
			"alias", alias,
			"expected", "*fsjetstream.PluginModule")
		return
	}
	m.storage = storage
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "task-stats", json.Unmarshal, json.Marshal, m.taskStats,
	); err != nil {
		return fmt.Errorf("failed to register task-stats service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "store-health", json.Unmarshal, json.Marshal, m.storeHealth,
	); err != nil {
		return fmt.Errorf("failed to register store-health service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "create-task, get-task, update-task, delete-task, list-tasks, task-stats, store-health")
	return nil
}

func (m *TaskModule) Start(ctx context.Context) error {
	if m.store == nil {
		s, err := m.openStore()
		if err != nil {
			return err
		}
		m.store = s
		m.repo = NewRepository(s)
	}

	// Touch the document once so a missing one is created at startup.
	if _, err := m.repo.List(ctx); err != nil {
		return fmt.Errorf("failed to initialize task store: %w", err)
	}

	if m.eventBus == nil {
		m.logger.Warn("eventBus not set, events will not be published")
	}
	m.logger.Info("Module started", "store", m.store.Name())
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	if closer, ok := m.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			m.logger.Warn("Failed to close task store", "error", err)
		}
	}
	m.logger.Info("Module stopped")
	return nil
}

// Health reports whether the record store is reachable.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("store ping failed: %v", err),
			Details: map[string]any{
				"store": m.store.Name(),
			},
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"store": m.store.Name(),
		},
	}
}

// openStore builds the record store selected by the configured driver.
func (m *TaskModule) openStore() (store.RecordStore, error) {
	switch m.cfg.StoreDriver {
	case store.DriverFile:
		m.logger.Info("Using file store", "path", m.cfg.DataFile)
		return store.NewFileStore(m.cfg.DataFile, m.logger), nil

	case store.DriverSQLite:
		m.logger.Info("Using sqlite store", "path", m.cfg.SQLitePath)
		s, err := store.OpenSQLiteStore(m.cfg.SQLitePath, m.cfg.DBDebug, m.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, nil

	case store.DriverBucket:
		if m.storage == nil {
			return nil, fmt.Errorf("required plugin 'storage' not registered")
		}
		bucket := m.storage.Bucket(m.cfg.BucketName)
		if bucket == nil {
			return nil, fmt.Errorf("bucket '%s' not found in storage plugin", m.cfg.BucketName)
		}
		m.logger.Info("Using bucket store", "bucket", m.cfg.BucketName)
		return store.NewBucketStore(bucket, m.logger), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", m.cfg.StoreDriver)
}
