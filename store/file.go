package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/task-tracker/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/renameio/v2"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileStore keeps the collection in a JSON file on local disk. Writes go to a
// temporary file that is renamed over the target, so readers never observe a
// partially written document.
type FileStore struct {
	path   string
	logger types.Logger
}

var _ RecordStore = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path. Nothing touches
// the disk until the first Load or Save.
func NewFileStore(path string, logger types.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Name returns the backend name.
func (s *FileStore) Name() string { return DriverFile }

// Load reads the whole collection, creating an empty document first if the
// file does not exist yet.
func (s *FileStore) Load(_ context.Context) ([]task.Task, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, ioError("read "+s.path, err)
	}
	return decode(data, s.path, s.logger), nil
}

// Save replaces the document with tasks.
func (s *FileStore) Save(_ context.Context, tasks []task.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return ioError("create data directory", err)
	}
	if err := renameio.WriteFile(s.path, data, filePerm); err != nil {
		return ioError("write "+s.path, err)
	}
	return nil
}

// Ping checks that the data directory exists or can be created.
func (s *FileStore) Ping(_ context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return ioError("create data directory", err)
	}
	return nil
}

// ensure lazily creates the parent directory and an empty document.
func (s *FileStore) ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return ioError("create data directory", err)
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return ioError("stat "+s.path, err)
	}

	empty, err := encode(nil)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(s.path, empty, filePerm); err != nil {
		return ioError("initialize "+s.path, err)
	}
	s.logger.Info("Initialized empty task document", "path", s.path)
	return nil
}
