package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/cache"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const catalogCachePrefix = "catalog:"

type CatalogService interface {
	ListTags(ctx context.Context) ([]*types.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*types.Tag, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, error)

	ImportIngredients(ctx context.Context, rows []*types.Ingredient) (int64, error)
	ImportTags(ctx context.Context, rows []*types.Tag) (int64, error)
}

type catalogService struct {
	db      *gorm.DB
	log     *logger.Logger
	repo    repos.CatalogRepo
	cache   cache.Cache
	ttl     time.Duration
	metrics *observability.Metrics
	group   singleflight.Group
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, repo repos.CatalogRepo, c cache.Cache, ttl time.Duration, metrics *observability.Metrics) CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &catalogService{
		db:      db,
		log:     log.With("service", "CatalogService"),
		repo:    repo,
		cache:   c,
		ttl:     ttl,
		metrics: metrics,
	}
}

func (s *catalogService) ListTags(ctx context.Context) ([]*types.Tag, error) {
	var out []*types.Tag
	err := s.cached(ctx, catalogCachePrefix+"tags", &out, func() (interface{}, error) {
		return s.repo.ListTags(dbctx.Context{Ctx: ctx})
	})
	if err != nil {
		return nil, passThrough("catalog_failed", err)
	}
	return out, nil
}

func (s *catalogService) GetTag(ctx context.Context, id uuid.UUID) (*types.Tag, error) {
	var out *types.Tag
	err := s.cached(ctx, catalogCachePrefix+"tag:"+id.String(), &out, func() (interface{}, error) {
		t, err := s.repo.GetTag(dbctx.Context{Ctx: ctx}, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, notFoundError("tag_not_found", "tag %s not found", id)
		}
		return t, nil
	})
	if err != nil {
		return nil, passThrough("catalog_failed", err)
	}
	return out, nil
}

func (s *catalogService) ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error) {
	prefix := strings.ToLower(strings.TrimSpace(namePrefix))
	var out []*types.Ingredient
	err := s.cached(ctx, catalogCachePrefix+"ingredients:"+prefix, &out, func() (interface{}, error) {
		return s.repo.SearchIngredients(dbctx.Context{Ctx: ctx}, prefix)
	})
	if err != nil {
		return nil, passThrough("catalog_failed", err)
	}
	return out, nil
}

func (s *catalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, error) {
	var out *types.Ingredient
	err := s.cached(ctx, catalogCachePrefix+"ingredient:"+id.String(), &out, func() (interface{}, error) {
		i, err := s.repo.GetIngredient(dbctx.Context{Ctx: ctx}, id)
		if err != nil {
			return nil, err
		}
		if i == nil {
			return nil, notFoundError("ingredient_not_found", "ingredient %s not found", id)
		}
		return i, nil
	})
	if err != nil {
		return nil, passThrough("catalog_failed", err)
	}
	return out, nil
}

func (s *catalogService) ImportIngredients(ctx context.Context, rows []*types.Ingredient) (int64, error) {
	seen := map[[2]string]bool{}
	clean := make([]*types.Ingredient, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			continue
		}
		name := strings.TrimSpace(row.Name)
		unit := strings.TrimSpace(row.MeasurementUnit)
		if name == "" || unit == "" {
			return 0, validationError("invalid_ingredient", "row %d: name and measurement_unit are required", i+1)
		}
		key := [2]string{name, unit}
		if seen[key] {
			continue
		}
		seen[key] = true
		clean = append(clean, &types.Ingredient{Name: name, MeasurementUnit: unit})
	}
	var inserted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.repo.UpsertIngredients(dbctx.Context{Ctx: ctx, Tx: tx}, clean)
		inserted = n
		return err
	})
	if err != nil {
		return 0, internalError("import_failed", err)
	}
	s.invalidate(ctx)
	s.log.Info("Ingredients imported", "rows", len(clean), "inserted", inserted)
	return inserted, nil
}

var (
	tagColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	tagSlugRe  = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func (s *catalogService) ImportTags(ctx context.Context, rows []*types.Tag) (int64, error) {
	seen := map[string]bool{}
	clean := make([]*types.Tag, 0, len(rows))
	for i, row := range rows {
		if row == nil {
			continue
		}
		t := &types.Tag{
			Name:  strings.TrimSpace(row.Name),
			Color: strings.ToUpper(strings.TrimSpace(row.Color)),
			Slug:  strings.TrimSpace(row.Slug),
		}
		if t.Name == "" {
			return 0, validationError("invalid_tag", "row %d: name is required", i+1)
		}
		if !tagColorRe.MatchString(t.Color) {
			return 0, validationError("invalid_tag_color", "row %d: color %q is not #RRGGBB", i+1, row.Color)
		}
		if !tagSlugRe.MatchString(t.Slug) {
			return 0, validationError("invalid_tag_slug", "row %d: slug %q", i+1, row.Slug)
		}
		if seen[t.Slug] {
			continue
		}
		seen[t.Slug] = true
		clean = append(clean, t)
	}
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.repo.UpsertTags(dbctx.Context{Ctx: ctx, Tx: tx}, clean)
		affected = n
		return err
	})
	if err != nil {
		if isDuplicate(err) {
			return 0, conflictError("tag_exists", "tag name or color already used by another slug")
		}
		return 0, internalError("import_failed", err)
	}
	s.invalidate(ctx)
	s.log.Info("Tags imported", "rows", len(clean), "affected", affected)
	return affected, nil
}

// cached fills dst from the cache or from load, collapsing concurrent misses on the same key.
// Errors from load are never cached.
func (s *catalogService) cached(ctx context.Context, key string, dst interface{}, load func() (interface{}, error)) error {
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("Catalog cache read failed", "key", key, "error", err)
	} else if ok {
		if err := json.Unmarshal(raw, dst); err == nil {
			s.metrics.IncCacheLookup(true)
			return nil
		}
	}
	s.metrics.IncCacheLookup(false)

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		val, err := load()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.Warn("Catalog cache write failed", "key", key, "error", err)
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dst)
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, catalogCachePrefix); err != nil {
		s.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}
