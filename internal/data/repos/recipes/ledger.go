package recipes

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// LedgerRepo stores favorite and shopping_cart rows. Both tables share the (user_id, recipe_id) shape.
type LedgerRepo interface {
	// Add fails with gorm.ErrDuplicatedKey when the pair is already present.
	Add(dbc dbctx.Context, kind types.LedgerKind, userID, recipeID uuid.UUID) error
	Remove(dbc dbctx.Context, kind types.LedgerKind, userID, recipeID uuid.UUID) (int64, error)
	Exists(dbc dbctx.Context, kind types.LedgerKind, userID, recipeID uuid.UUID) (bool, error)
	// Marked returns the subset of recipeIDs present in the user's list.
	Marked(dbc dbctx.Context, kind types.LedgerKind, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type ledgerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLedgerRepo(db *gorm.DB, baseLog *logger.Logger) LedgerRepo {
	return &ledgerRepo{db: db, log: baseLog.With("repo", "LedgerRepo")}
}

func ledgerModel(kind types.LedgerKind) (interface{}, error) {
	switch kind {
	case types.LedgerFavorite:
		return &types.Favorite{}, nil
	case types.LedgerShoppingCart:
		return &types.ShoppingCartEntry{}, nil
	default:
		return nil, fmt.Errorf("unknown ledger kind %q", kind)
	}
}

func (r *ledgerRepo) Add(dbc dbctx.Context, kind types.LedgerKind, userID, recipeID uuid.UUID) error {
	var row interface{}
	switch kind {
	case types.LedgerFavorite:
		row = &types.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	case types.LedgerShoppingCart:
		row = &types.ShoppingCartEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	default:
		return fmt.Errorf("unknown ledger kind %q", kind)
	}
	return dbc.Conn(r.db).Create(row).Error
}

func (r *ledgerRepo) Remove(dbc dbctx.Context, kind types.LedgerKind, userID, recipeID uuid.UUID) (int64, error) {
	model, err := ledgerModel(kind)
	if err != nil {
		return 0, err
	}
	res := dbc.Conn(r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	return res.RowsAffected, res.Error
}

func (r *ledgerRepo) Exists(dbc dbctx.Context, kind types.LedgerKind, userID, recipeID uuid.UUID) (bool, error) {
	model, err := ledgerModel(kind)
	if err != nil {
		return false, err
	}
	var count int64
	if err := dbc.Conn(r.db).
		Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ledgerRepo) Marked(dbc dbctx.Context, kind types.LedgerKind, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(recipeIDs) == 0 {
		return out, nil
	}
	model, err := ledgerModel(kind)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	if err := dbc.Conn(r.db).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
