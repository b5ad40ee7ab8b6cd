package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Subscription repos.SubscriptionRepo
	Catalog      repos.CatalogRepo
	Recipe       repos.RecipeRepo
	Ledger       repos.LedgerRepo
	ShoppingList repos.ShoppingListRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Subscription: repos.NewSubscriptionRepo(db, log),
		Catalog:      repos.NewCatalogRepo(db, log),
		Recipe:       repos.NewRecipeRepo(db, log),
		Ledger:       repos.NewLedgerRepo(db, log),
		ShoppingList: repos.NewShoppingListRepo(db, log),
	}
}
