package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
	"github.com/noah-isme/course-viewer/pkg/jobs"
)

type channelSnapshotRepo struct {
	mu     sync.Mutex
	stored chan string
}

func (r *channelSnapshotRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (r *channelSnapshotRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored <- key
	return nil
}

func (r *channelSnapshotRepo) Delete(ctx context.Context, key string) error { return nil }

func TestSnapshotPublisherStoresInBackground(t *testing.T) {
	repo := &channelSnapshotRepo{stored: make(chan string, 1)}
	publisher := NewSnapshotPublisher(NewCacheService(repo, nil, time.Hour, nil, true), time.Hour, nil)
	publisher.Start(context.Background())
	defer publisher.Close()

	svc := NewCatalogService(CatalogServiceParams{
		Source:    &stubSource{raw: sampleRaw()},
		Snapshot:  NewCacheService(repo, nil, time.Hour, nil, true),
		Publisher: publisher,
		Key:       CatalogKey{Local: true, SecretsHash: "bg"},
	})
	_, err := svc.Table(context.Background())
	require.NoError(t, err)

	select {
	case key := <-repo.stored:
		assert.Equal(t, "catalog:snapshot:local:bg", key)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot never stored")
	}
}

func TestSnapshotPublisherSkipsDisabledTier(t *testing.T) {
	repo := &channelSnapshotRepo{stored: make(chan string, 1)}
	publisher := NewSnapshotPublisher(NewCacheService(repo, nil, time.Hour, nil, false), time.Hour, nil)
	publisher.Start(context.Background())
	defer publisher.Close()

	publisher.Publish("catalog:snapshot:local:x", sampleTable())

	select {
	case <-repo.stored:
		t.Fatal("disabled tier must not be written")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSnapshotPublisherNilIsNoop(t *testing.T) {
	var publisher *SnapshotPublisher
	assert.NotPanics(t, func() { publisher.Publish("k", sampleTable()) })
}

func TestSnapshotPublisherDropsWritesOlderThanForget(t *testing.T) {
	repo := &channelSnapshotRepo{stored: make(chan string, 2)}
	publisher := NewSnapshotPublisher(NewCacheService(repo, nil, time.Hour, nil, true), time.Hour, nil)
	key := "catalog:snapshot:remote:refresh"

	stale := sampleTable()
	stale.LoadedAt = time.Now().UTC().Add(-time.Minute)
	publisher.Forget(key)

	require.NoError(t, publisher.write(context.Background(), jobs.Job[*models.Table]{Key: key, Payload: stale}))
	assert.Empty(t, repo.stored)

	fresh := sampleTable()
	fresh.LoadedAt = time.Now().UTC().Add(time.Second)
	require.NoError(t, publisher.write(context.Background(), jobs.Job[*models.Table]{Key: key, Payload: fresh}))
	assert.Equal(t, key, <-repo.stored)
}

func TestCatalogRefreshForgetsPendingSnapshot(t *testing.T) {
	repo := newMemorySnapshotRepo()
	snapshot := NewCacheService(repo, nil, time.Hour, nil, true)
	publisher := NewSnapshotPublisher(snapshot, time.Hour, nil)
	svc := NewCatalogService(CatalogServiceParams{
		Source:    &stubSource{raw: sampleRaw()},
		Snapshot:  snapshot,
		Publisher: publisher,
		Key:       CatalogKey{SecretsHash: "pending"},
	})
	key := snapshotKeyPrefix + svc.Key().String()

	stale := sampleTable()
	stale.LoadedAt = time.Now().UTC().Add(-time.Minute)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	// A write queued before the refresh must not bring the old table back.
	require.NoError(t, publisher.write(context.Background(), jobs.Job[*models.Table]{Key: key, Payload: stale}))
	_, ok := repo.data[key]
	assert.False(t, ok)
}
