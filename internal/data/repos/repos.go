package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos/recipes"
	"github.com/yungbote/foodgram-backend/internal/data/repos/user"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type SubscriptionRepo = user.SubscriptionRepo

type CatalogRepo = recipes.CatalogRepo
type RecipeRepo = recipes.RecipeRepo
type RecipeQuery = recipes.RecipeQuery
type LedgerRepo = recipes.LedgerRepo
type ShoppingListRepo = recipes.ShoppingListRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return user.NewSubscriptionRepo(db, baseLog)
}

func NewCatalogRepo(db *gorm.DB, baseLog *logger.Logger) CatalogRepo {
	return recipes.NewCatalogRepo(db, baseLog)
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipes.NewRecipeRepo(db, baseLog)
}

func NewLedgerRepo(db *gorm.DB, baseLog *logger.Logger) LedgerRepo {
	return recipes.NewLedgerRepo(db, baseLog)
}

func NewShoppingListRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingListRepo {
	return recipes.NewShoppingListRepo(db, baseLog)
}
