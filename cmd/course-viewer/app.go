package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/repository"
	"github.com/noah-isme/course-viewer/internal/service"
	"github.com/noah-isme/course-viewer/pkg/cache"
	"github.com/noah-isme/course-viewer/pkg/config"
	"github.com/noah-isme/course-viewer/pkg/logger"
)

const startupTimeout = 60 * time.Second

// app holds the wiring shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *service.MetricsService
	catalog *service.CatalogService
	closers []io.Closer
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp wires the catalog and loads it once so a missing or broken source
// stops the process before anything is served.
func newApp(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logr, metrics: service.NewMetricsService()}

	source, closer, err := repository.OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer)

	tables := service.NewTableCache(cfg.Catalog.CacheTTL, cfg.Catalog.CacheMaxEntries)
	tables.SetLoadTimeout(cfg.Source.FetchTimeout + startupTimeout)

	snapshot := a.snapshotCache(ctx)
	var publisher *service.SnapshotPublisher
	if snapshot != nil {
		publisher = service.NewSnapshotPublisher(snapshot, cfg.Catalog.CacheTTL, logr.Named("snapshot"))
		publisher.Start(ctx)
		a.closers = append(a.closers, publisher)
	}

	a.catalog = service.NewCatalogService(service.CatalogServiceParams{
		Source:      source,
		Cache:       tables,
		Snapshot:    snapshot,
		Publisher:   publisher,
		Metrics:     a.metrics,
		Logger:      logr.Named("catalog"),
		Key:         service.CatalogKey{Local: cfg.Local, SecretsHash: cfg.SecretsFingerprint()},
		SnapshotTTL: cfg.Catalog.CacheTTL,
	})

	warmCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	if _, err := a.catalog.Table(warmCtx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// snapshotCache connects the shared Redis tier when enabled. Connection
// failures leave the tier disabled.
func (a *app) snapshotCache(ctx context.Context) *service.CacheService {
	if !a.cfg.Snapshot.Enabled {
		return nil
	}
	client, err := cache.NewRedis(ctx, a.cfg.Redis)
	if err != nil {
		a.logger.Warn("snapshot cache disabled", zap.Error(err))
		return nil
	}
	repo := repository.NewCacheRepository(client, a.logger.Named("snapshot"))
	a.closers = append(a.closers, repo)
	return service.NewCacheService(repo, a.metrics, a.cfg.Catalog.CacheTTL, a.logger.Named("snapshot"), true)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("close resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logr, nil
}
