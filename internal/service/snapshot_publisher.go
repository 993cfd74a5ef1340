package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/pkg/jobs"
)

const snapshotWriteTimeout = 5 * time.Second

// SnapshotPublisher writes freshly loaded catalogs to the snapshot tier off
// the request path, retrying transient Redis failures.
type SnapshotPublisher struct {
	cache  *CacheService
	ttl    time.Duration
	queue  *jobs.Queue[*models.Table]
	logger *zap.Logger

	mu      sync.Mutex
	cutoffs map[string]time.Time
}

// NewSnapshotPublisher builds a publisher over cache. Call Start before
// Publish.
func NewSnapshotPublisher(cache *CacheService, ttl time.Duration, logger *zap.Logger) *SnapshotPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &SnapshotPublisher{cache: cache, ttl: ttl, logger: logger, cutoffs: map[string]time.Time{}}
	p.queue = jobs.NewQueue("catalog-snapshot", p.write, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 8,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Logger:     logger,
	})
	return p
}

// Start launches the background writer.
func (p *SnapshotPublisher) Start(ctx context.Context) {
	p.queue.Start(ctx)
}

// Close stops the writer, dropping pending writes.
func (p *SnapshotPublisher) Close() error {
	p.queue.Stop()
	return nil
}

// Publish schedules table to be stored under key.
func (p *SnapshotPublisher) Publish(key string, table *models.Table) {
	if p == nil || !p.cache.Enabled() || table == nil {
		return
	}
	if err := p.queue.Enqueue(jobs.Job[*models.Table]{Key: key, Payload: table}); err != nil {
		p.logger.Warn("snapshot publish skipped", zap.String("key", key), zap.Error(err))
	}
}

// Forget discards pending writes for key of tables loaded before now. It
// waits for a write already in progress, so a delete issued afterwards is
// not overtaken by it.
func (p *SnapshotPublisher) Forget(key string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.cutoffs[key] = time.Now().UTC()
	p.mu.Unlock()
}

func (p *SnapshotPublisher) write(ctx context.Context, job jobs.Job[*models.Table]) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cutoff, ok := p.cutoffs[job.Key]; ok && job.Payload.LoadedAt.Before(cutoff) {
		p.logger.Debug("stale snapshot dropped", zap.String("key", job.Key), zap.Time("loaded_at", job.Payload.LoadedAt))
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, snapshotWriteTimeout)
	defer cancel()
	if err := p.cache.Store(writeCtx, job.Key, job.Payload, p.ttl); err != nil {
		return err
	}
	p.logger.Debug("snapshot stored", zap.String("key", job.Key), zap.Int("rows", job.Payload.Len()))
	return nil
}
