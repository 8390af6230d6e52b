package app

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	sessioncache "vibechart/internal/cache/session"
	"vibechart/internal/gateway/config"
	datasetrepo "vibechart/internal/gateway/repository/dataset"
	sessionrepo "vibechart/internal/gateway/repository/session"
)

type gatewayStores struct {
	sessions *sessioncache.CachedStore
	datasets datasetrepo.Store
	closers  []io.Closer
}

func initStores(cfg *config.Config, logger *zap.Logger) (*gatewayStores, error) {
	stores := &gatewayStores{}

	var origin sessionrepo.Store
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		pg, err := sessionrepo.OpenPostgres(dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open session db: %w", err)
		}
		stores.closers = append(stores.closers, pg)
		origin = pg
		logger.Info("session store: postgres")
	} else {
		origin = sessionrepo.NewMemoryStore()
		logger.Info("session store: in-memory")
	}

	cacheCfg := sessioncache.DefaultCacheConfig()
	if cfg.Cache.TTL > 0 {
		cacheCfg.TTL = cfg.Cache.TTL
	}
	if cfg.Cache.Size > 0 {
		cacheCfg.MaxEntries = cfg.Cache.Size
	}
	stores.sessions = sessioncache.NewCachedStore(origin, cacheCfg)
	stores.datasets = chooseDatasetStore(cfg, logger)
	return stores, nil
}

// chooseDatasetStore prefers S3 when configured and falls back to memory when
// the client cannot be built.
func chooseDatasetStore(cfg *config.Config, logger *zap.Logger) datasetrepo.Store {
	if !cfg.Dataset.CanUseS3() {
		logger.Info("dataset store: in-memory")
		return datasetrepo.NewMemoryStore()
	}
	s3Cfg := datasetrepo.S3Config{
		Endpoint:  cfg.Dataset.Endpoint,
		Region:    cfg.Dataset.Region,
		AccessKey: cfg.Dataset.AccessKey,
		SecretKey: cfg.Dataset.SecretKey,
		Bucket:    cfg.Dataset.Bucket,
		UseSSL:    cfg.Dataset.UseSSL,
	}
	store, err := datasetrepo.NewS3Store(s3Cfg)
	if err != nil {
		logger.Warn("dataset s3 store unavailable, using in-memory", zap.Error(err))
		return datasetrepo.NewMemoryStore()
	}
	logger.Info("dataset store: s3", zap.String("bucket", s3Cfg.Bucket), zap.String("endpoint", s3Cfg.Endpoint))
	return store
}

func (s *gatewayStores) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
