package app

import (
	"context"
	"fmt"

	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/cache"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/pdf"
)

// Clients are the process-wide collaborators that sit outside the database.
type Clients struct {
	Cache    cache.Cache
	Renderer pdf.Renderer
	Metrics  *observability.Metrics

	redis *cache.Redis
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	c, rdb, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return Clients{}, err
	}
	log.Info("Catalog cache ready", "backend", cfg.Cache.Backend)

	renderer := pdf.NewChromeRenderer(log, pdf.Options{
		Assets: pdf.AssetResolver{
			MediaURL:   cfg.Media.MediaURL,
			MediaRoot:  cfg.Media.MediaRoot,
			StaticURL:  cfg.Media.StaticURL,
			StaticRoot: cfg.Media.StaticRoot,
		},
		Timeout:  cfg.PDF.Timeout,
		ExecPath: cfg.PDF.ExecPath,
	})

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	return Clients{Cache: c, Renderer: renderer, Metrics: metrics, redis: rdb}, nil
}

func newCache(ctx context.Context, cfg CacheConfig) (cache.Cache, *cache.Redis, error) {
	switch cfg.Backend {
	case "redis":
		rdb, err := cache.NewRedis(ctx, cfg.RedisAddr, "foodgram:")
		if err != nil {
			return nil, nil, fmt.Errorf("init redis cache: %w", err)
		}
		return rdb, rdb, nil
	case "none":
		return cache.Noop{}, nil, nil
	default:
		lru, err := cache.NewLRU(cfg.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("init lru cache: %w", err)
		}
		return lru, nil, nil
	}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}
