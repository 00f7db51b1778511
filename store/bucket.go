package store

import (
	"context"
	"fmt"
	"time"

	"github.com/example/task-tracker/domain/task"
	"github.com/go-monolith/mono/pkg/types"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
)

// BucketObject is the object name holding the collection inside the bucket.
const BucketObject = "tasks.json"

// BucketStore keeps the collection document as a single object in a
// JetStream-backed file storage bucket provided by the fs-jetstream plugin.
type BucketStore struct {
	bucket fsjetstream.FileStoragePort
	logger types.Logger
}

var _ RecordStore = (*BucketStore)(nil)

// NewBucketStore creates a store over bucket.
func NewBucketStore(bucket fsjetstream.FileStoragePort, logger types.Logger) *BucketStore {
	return &BucketStore{bucket: bucket, logger: logger}
}

// Name returns the backend name.
func (s *BucketStore) Name() string { return DriverBucket }

// Load fetches the collection object, creating an empty one if it does not
// exist yet.
func (s *BucketStore) Load(ctx context.Context) ([]task.Task, error) {
	data, err := s.bucket.GetWithContext(ctx, BucketObject)
	if err != nil {
		return nil, ioError("get "+BucketObject, err)
	}
	if data != nil {
		return decode(data, "bucket:"+BucketObject, s.logger), nil
	}

	// The bucket returns nil, nil for a missing key.
	if err := s.Save(ctx, nil); err != nil {
		return nil, err
	}
	s.logger.Info("Initialized empty task document", "object", BucketObject)
	return []task.Task{}, nil
}

// Save replaces the collection object.
func (s *BucketStore) Save(ctx context.Context, tasks []task.Task) error {
	data, err := encode(tasks)
	if err != nil {
		return err
	}

	_, err = s.bucket.Put(ctx, BucketObject, data,
		fsjetstream.WithHeaders(map[string]string{
			"Content-Type": "application/json",
			"Saved-At":     time.Now().Format(time.RFC3339),
		}),
	)
	if err != nil {
		return ioError("put "+BucketObject, err)
	}
	return nil
}

// Ping reports whether a bucket is attached.
func (s *BucketStore) Ping(_ context.Context) error {
	if s.bucket == nil {
		return fmt.Errorf("%w: bucket not attached", ErrIO)
	}
	return nil
}
