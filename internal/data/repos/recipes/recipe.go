package recipes

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// RecipeQuery narrows List. Nil pointers and empty slices do not filter.
type RecipeQuery struct {
	AuthorID    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Offset      int
	Limit       int
}

type RecipeRepo interface {
	Create(dbc dbctx.Context, recipe *types.Recipe) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	// ReplaceIngredients deletes every ingredient row of the recipe and inserts rows in its place.
	ReplaceIngredients(dbc dbctx.Context, recipeID uuid.UUID, rows []*types.RecipeIngredient) error
	// ReplaceTags makes tags the exact tag set of the recipe.
	ReplaceTags(dbc dbctx.Context, recipe *types.Recipe, tags []*types.Tag) error
	// Delete removes the recipe and every row that references it.
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)

	Exists(dbc dbctx.Context, id uuid.UUID) (bool, error)
	// GetByID loads the recipe with author, tags and ingredients. Returns nil, nil when missing.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error)
	// GetByIDForUpdate loads only the recipe row, locking it where the dialect supports it.
	GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error)
	List(dbc dbctx.Context, q RecipeQuery) ([]*types.Recipe, int64, error)
	// ListByAuthor returns the newest recipes of one author without associations. limit <= 0 means all.
	ListByAuthor(dbc dbctx.Context, authorID uuid.UUID, limit int) ([]*types.Recipe, error)
	CountByAuthors(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(dbc dbctx.Context, recipe *types.Recipe) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *recipeRepo) ReplaceIngredients(dbc dbctx.Context, recipeID uuid.UUID, rows []*types.RecipeIngredient) error {
	conn := dbc.Conn(r.db)
	if err := conn.Where("recipe_id = ?", recipeID).Delete(&types.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		row.RecipeID = recipeID
	}
	return conn.Omit(clause.Associations).Create(rows).Error
}

func (r *recipeRepo) ReplaceTags(dbc dbctx.Context, recipe *types.Recipe, tags []*types.Tag) error {
	return dbc.Conn(r.db).
		Model(recipe).
		Omit("Tags.*").
		Association("Tags").
		Replace(tags)
}

func (r *recipeRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	conn := dbc.Conn(r.db)
	for _, model := range []interface{}{
		&types.RecipeIngredient{},
		&types.RecipeTag{},
		&types.Favorite{},
		&types.ShoppingCartEntry{},
	} {
		if err := conn.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
			return 0, err
		}
	}
	res := conn.Where("id = ?", id).Delete(&types.Recipe{})
	return res.RowsAffected, res.Error
}

func (r *recipeRepo) Exists(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	var out types.Recipe
	err := withDetails(dbc.Conn(r.db)).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *recipeRepo) GetByIDForUpdate(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	q := dbc.Conn(r.db)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out types.Recipe
	err := q.Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *recipeRepo) List(dbc dbctx.Context, q RecipeQuery) ([]*types.Recipe, int64, error) {
	base := dbc.Conn(r.db)
	filter := func(tx *gorm.DB) *gorm.DB {
		if q.AuthorID != nil {
			tx = tx.Where("recipe.author_id = ?", *q.AuthorID)
		}
		if len(q.TagSlugs) > 0 {
			tx = tx.Where("recipe.id IN (?)", base.
				Model(&types.RecipeTag{}).
				Select("recipe_tag.recipe_id").
				Joins("JOIN tag ON tag.id = recipe_tag.tag_id").
				Where("tag.slug IN ?", q.TagSlugs))
		}
		if q.FavoritedBy != nil {
			tx = tx.Where("recipe.id IN (?)", base.
				Model(&types.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", *q.FavoritedBy))
		}
		if q.InCartOf != nil {
			tx = tx.Where("recipe.id IN (?)", base.
				Model(&types.ShoppingCartEntry{}).
				Select("recipe_id").
				Where("user_id = ?", *q.InCartOf))
		}
		return tx
	}

	var total int64
	if err := base.Model(&types.Recipe{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []*types.Recipe
	if total == 0 {
		return out, 0, nil
	}
	if err := withDetails(base).
		Scopes(filter).
		Order("recipe.created_at DESC").
		Order("recipe.id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *recipeRepo) ListByAuthor(dbc dbctx.Context, authorID uuid.UUID, limit int) ([]*types.Recipe, error) {
	var out []*types.Recipe
	q := dbc.Conn(r.db).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) CountByAuthors(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := dbc.Conn(r.db).
		Model(&types.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AuthorID] = row.Total
	}
	return out, nil
}

func withDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag.name ASC") }).
		Preload("Ingredients.Ingredient")
}
