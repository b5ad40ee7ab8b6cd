package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Catalog      services.CatalogService
	Recipe       services.RecipeService
	Ledger       services.LedgerService
	Subscription services.SubscriptionService
	User         services.UserService
	ShoppingList services.ShoppingListService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:         services.NewAuthService(log, r.User, cfg.JWTSecretKey),
		Catalog:      services.NewCatalogService(db, log, r.Catalog, c.Cache, cfg.Cache.TTL, c.Metrics),
		Recipe:       services.NewRecipeService(db, log, r.Recipe, r.Catalog, r.Ledger, r.Subscription),
		Ledger:       services.NewLedgerService(db, log, r.Recipe, r.Ledger, c.Metrics),
		Subscription: services.NewSubscriptionService(db, log, r.User, r.Subscription, r.Recipe, c.Metrics, cfg.RecipesPreviewLimit),
		User:         services.NewUserService(db, log, r.User, r.Subscription),
		ShoppingList: services.NewShoppingListService(db, log, r.ShoppingList, r.User, c.Renderer, cfg.PDF.Logo, c.Metrics),
	}
}
