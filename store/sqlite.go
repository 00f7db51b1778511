package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/task-tracker/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// documentName is the row key holding the task collection.
const documentName = "tasks"

// document is one named JSON document. The task collection is a single row;
// the table is a key-value layout rather than one row per task.
type document struct {
	Name      string `gorm:"primaryKey"`
	Body      string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName sets the table name for GORM.
func (document) TableName() string {
	return "documents"
}

// SQLiteStore keeps the collection document in a SQLite database through GORM.
type SQLiteStore struct {
	db     *gorm.DB
	logger types.Logger
}

var _ RecordStore = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (or creates) the database at path and migrates it.
// debug enables GORM statement logging.
func OpenSQLiteStore(path string, debug bool, log types.Logger) (*SQLiteStore, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewSQLiteStore(db, log)
}

// NewSQLiteStore wraps an open GORM connection and runs migrations.
func NewSQLiteStore(db *gorm.DB, log types.Logger) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLiteStore{db: db, logger: log}, nil
}

// Name returns the backend name.
func (s *SQLiteStore) Name() string { return DriverSQLite }

// Load reads the collection row, inserting an empty one if it is missing.
func (s *SQLiteStore) Load(ctx context.Context) ([]task.Task, error) {
	var doc document
	err := s.db.WithContext(ctx).First(&doc, "name = ?", documentName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.Save(ctx, nil); err != nil {
			return nil, err
		}
		s.logger.Info("Initialized empty task document", "table", "documents", "name", documentName)
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, ioError("read document", err)
	}

	return decode([]byte(doc.Body), "sqlite:documents/"+documentName, s.logger), nil
}

// Save upserts the collection row.
func (s *SQLiteStore) Save(ctx context.Context, tasks []task.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}

	doc := document{Name: documentName, Body: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
	if err != nil {
		return ioError("write document", err)
	}
	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return ioError("ping database", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
