package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBucket starts a mono application with embedded NATS JetStream
// and an in-memory fs-jetstream bucket.
func createTestBucket(t *testing.T) fsjetstream.FileStoragePort {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError),
		mono.WithJetStreamStorageDir(t.TempDir()),
	)
	require.NoError(t, err)

	plugin, err := fsjetstream.New(fsjetstream.Config{
		Buckets: []fsjetstream.BucketConfig{
			{
				Name:        "tasks",
				Description: "Test bucket",
				MaxBytes:    10 * 1024 * 1024,
				Storage:     fsjetstream.MemoryStorage,
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, app.RegisterPlugin(plugin, "storage"))

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	bucket := plugin.Bucket("tasks")
	require.NotNil(t, bucket)
	return bucket
}

func TestBucketStore(t *testing.T) {
	exerciseRecordStore(t, NewBucketStore(createTestBucket(t), &recordingLogger{}))
}

func TestBucketStore_LazyInitialization(t *testing.T) {
	bucket := createTestBucket(t)

	log := &recordingLogger{}
	s := NewBucketStore(bucket, log)

	tasks, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)

	data, err := bucket.GetWithContext(context.Background(), BucketObject)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	assert.Equal(t, 0, log.errorCount(), "a missing object is not a decode fault")

	// A second load reads the initialized document.
	_, err = s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, log.errorCount())
}

func TestBucketStore_CorruptDocumentLoadsEmpty(t *testing.T) {
	bucket := createTestBucket(t)
	log := &recordingLogger{}
	s := NewBucketStore(bucket, log)

	_, err := bucket.Put(context.Background(), BucketObject, []byte("garbage"))
	require.NoError(t, err)

	tasks, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 1, log.errorCount())
}

func TestBucketStore_PingWithoutBucket(t *testing.T) {
	s := NewBucketStore(nil, &recordingLogger{})
	assert.ErrorIs(t, s.Ping(context.Background()), ErrIO)
}

// failingBucket fails every read and counts writes. Methods it does not
// override panic through the nil embedded port.
type failingBucket struct {
	fsjetstream.FileStoragePort
	puts int
}

func (b *failingBucket) GetWithContext(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("stream unavailable")
}

func (b *failingBucket) Put(_ context.Context, _ string, _ []byte, _ ...fsjetstream.PutOption) (*fsjetstream.ObjectInfo, error) {
	b.puts++
	return &fsjetstream.ObjectInfo{}, nil
}

func TestBucketStore_ReadFailureDoesNotOverwrite(t *testing.T) {
	bucket := &failingBucket{}
	s := NewBucketStore(bucket, &recordingLogger{})

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrIO)
	assert.Equal(t, 0, bucket.puts)
}
