package recipes

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type CatalogRepo interface {
	ListTags(dbc dbctx.Context) ([]*types.Tag, error)
	GetTag(dbc dbctx.Context, id uuid.UUID) (*types.Tag, error)
	GetTagsByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Tag, error)
	// SearchIngredients matches a case-insensitive name prefix; an empty prefix returns everything.
	SearchIngredients(dbc dbctx.Context, prefix string) ([]*types.Ingredient, error)
	GetIngredient(dbc dbctx.Context, id uuid.UUID) (*types.Ingredient, error)
	GetIngredientsByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Ingredient, error)
	// UpsertIngredients inserts rows whose (name, measurement_unit) is new and returns how many were inserted.
	UpsertIngredients(dbc dbctx.Context, rows []*types.Ingredient) (int64, error)
	// UpsertTags inserts new slugs and refreshes name/color of existing ones.
	UpsertTags(dbc dbctx.Context, rows []*types.Tag) (int64, error)
}

type catalogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogRepo(db *gorm.DB, baseLog *logger.Logger) CatalogRepo {
	return &catalogRepo{db: db, log: baseLog.With("repo", "CatalogRepo")}
}

func (r *catalogRepo) ListTags(dbc dbctx.Context) ([]*types.Tag, error) {
	var out []*types.Tag
	if err := dbc.Conn(r.db).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) GetTag(dbc dbctx.Context, id uuid.UUID) (*types.Tag, error) {
	var t types.Tag
	err := dbc.Conn(r.db).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepo) GetTagsByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Tag, error) {
	var out []*types.Tag
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *catalogRepo) SearchIngredients(dbc dbctx.Context, prefix string) ([]*types.Ingredient, error) {
	q := dbc.Conn(r.db)
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likeEscaper.Replace(strings.ToLower(prefix))+"%")
	}
	var out []*types.Ingredient
	if err := q.Order("name ASC").Order("measurement_unit ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) GetIngredient(dbc dbctx.Context, id uuid.UUID) (*types.Ingredient, error) {
	var i types.Ingredient
	err := dbc.Conn(r.db).Where("id = ?", id).First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *catalogRepo) GetIngredientsByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Ingredient, error) {
	var out []*types.Ingredient
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) UpsertIngredients(dbc dbctx.Context, rows []*types.Ingredient) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "measurement_unit"}},
			DoNothing: true,
		}).
		CreateInBatches(rows, 500)
	return res.RowsAffected, res.Error
}

func (r *catalogRepo) UpsertTags(dbc dbctx.Context, rows []*types.Tag) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := dbc.Conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "color"}),
		}).
		Create(rows)
	return res.RowsAffected, res.Error
}
