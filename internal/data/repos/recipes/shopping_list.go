package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type ShoppingListRepo interface {
	// Aggregate sums ingredient amounts over every recipe in the user's cart, one row per
	// (name, measurement_unit), ordered by name then unit.
	Aggregate(dbc dbctx.Context, userID uuid.UUID) ([]types.ShoppingListItem, error)
}

type shoppingListRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShoppingListRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingListRepo {
	return &shoppingListRepo{db: db, log: baseLog.With("repo", "ShoppingListRepo")}
}

func (r *shoppingListRepo) Aggregate(dbc dbctx.Context, userID uuid.UUID) ([]types.ShoppingListItem, error) {
	out := []types.ShoppingListItem{}
	if err := dbc.Conn(r.db).
		Table("shopping_cart AS sc").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, CAST(SUM(ri.amount) AS BIGINT) AS total_amount").
		Joins("JOIN recipe_ingredient AS ri ON ri.recipe_id = sc.recipe_id").
		Joins("JOIN ingredient AS i ON i.id = ri.ingredient_id").
		Where("sc.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Order("i.name ASC, i.measurement_unit ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
