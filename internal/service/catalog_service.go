package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

const snapshotKeyPrefix = "catalog:snapshot:"

// Renderer displays an already filtered and projected view.
type Renderer interface {
	Render(view *models.View) error
}

type catalogSource interface {
	Load(ctx context.Context) (*models.RawTable, error)
	Describe() string
}

// CatalogServiceParams wires a CatalogService.
type CatalogServiceParams struct {
	Source      catalogSource
	Cache       *TableCache
	Snapshot    *CacheService
	Publisher   *SnapshotPublisher
	Metrics     *MetricsService
	Logger      *zap.Logger
	Key         CatalogKey
	SnapshotTTL time.Duration
}

// CatalogService loads, memoizes and filters the course catalog.
type CatalogService struct {
	source      catalogSource
	cache       *TableCache
	snapshot    *CacheService
	publisher   *SnapshotPublisher
	metrics     *MetricsService
	logger      *zap.Logger
	key         CatalogKey
	snapshotTTL time.Duration
}

// NewCatalogService constructs a CatalogService. A nil cache gets a default
// one-hour, ten-entry cache.
func NewCatalogService(p CatalogServiceParams) *CatalogService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Cache == nil {
		p.Cache = NewTableCache(time.Hour, 10)
	}
	return &CatalogService{
		source:      p.Source,
		cache:       p.Cache,
		snapshot:    p.Snapshot,
		publisher:   p.Publisher,
		metrics:     p.Metrics,
		logger:      p.Logger,
		key:         p.Key,
		snapshotTTL: p.SnapshotTTL,
	}
}

// Key returns the cache key this service loads under.
func (s *CatalogService) Key() CatalogKey {
	return s.key
}

// Table returns the memoized catalog, loading it on a miss.
func (s *CatalogService) Table(ctx context.Context) (*models.Table, error) {
	table, _, err := s.table(ctx)
	return table, err
}

func (s *CatalogService) table(ctx context.Context) (*models.Table, bool, error) {
	if s.source == nil {
		return nil, false, appErrors.Clone(appErrors.ErrSourceUnavailable, "no catalog source configured")
	}
	table, hit, err := s.cache.GetOrLoad(ctx, s.key, s.load)
	s.metrics.RecordCatalogLookup(hit)
	if err != nil {
		return nil, false, err
	}
	return table, hit, nil
}

// Refresh drops every cached copy of the catalog and loads it again.
func (s *CatalogService) Refresh(ctx context.Context) (*models.RefreshResult, error) {
	snapshotKey := snapshotKeyPrefix + s.key.String()
	s.cache.Invalidate(s.key)
	s.publisher.Forget(snapshotKey)
	s.snapshot.Delete(ctx, snapshotKey)

	table, _, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("catalog refreshed", zap.String("source", table.Source), zap.Int("rows", table.Len()))
	return &models.RefreshResult{
		Rows:     table.Len(),
		Source:   table.Source,
		LoadedAt: table.LoadedAt.Format(time.RFC3339),
	}, nil
}

// Query filters the catalog with state. The boolean reports a cache hit.
func (s *CatalogService) Query(ctx context.Context, state models.FilterState) (*models.View, bool, error) {
	table, hit, err := s.table(ctx)
	if err != nil {
		return nil, false, err
	}
	view := Filter(table, state)
	s.metrics.ObserveFilterResult(view.Count)
	return view, hit, nil
}

// Columns lists the displayable columns.
func (s *CatalogService) Columns(ctx context.Context) ([]string, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectColumns(table, nil), nil
}

// Render filters the catalog with state and hands the view to r.
func (s *CatalogService) Render(ctx context.Context, state models.FilterState, r Renderer) (*models.View, error) {
	view, _, err := s.Query(ctx, state)
	if err != nil {
		return nil, err
	}
	if err := r.Render(view); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render catalog")
	}
	return view, nil
}

func (s *CatalogService) load(ctx context.Context) (*models.Table, error) {
	snapshotKey := snapshotKeyPrefix + s.key.String()
	var cached models.Table
	if s.snapshot.Get(ctx, snapshotKey, &cached) {
		s.logger.Info("catalog loaded from snapshot", zap.String("source", cached.Source), zap.Int("rows", cached.Len()))
		return &cached, nil
	}

	source := s.source.Describe()
	start := time.Now()
	raw, err := s.source.Load(ctx)
	duration := time.Since(start)
	if err != nil {
		s.metrics.ObserveCatalogLoad(source, 0, duration, err)
		s.logger.Error("catalog load failed", zap.String("source", source), zap.Duration("duration", duration), zap.Error(err))
		return nil, err
	}

	table := BuildTable(raw, source)
	s.metrics.ObserveCatalogLoad(source, table.Len(), duration, nil)
	s.logger.Info("catalog loaded",
		zap.String("source", source),
		zap.Int("rows", table.Len()),
		zap.Duration("duration", duration),
	)

	if s.publisher != nil {
		s.publisher.Publish(snapshotKey, table)
	} else {
		s.snapshot.Set(ctx, snapshotKey, table, s.snapshotTTL)
	}
	return table, nil
}
