package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/http"
	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Catalog *httpH.CatalogHandler
	Recipe  *httpH.RecipeHandler
	User    *httpH.UserHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	pagination := httpH.Pagination{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize}
	return Handlers{
		Health:  httpH.NewHealthHandler(db),
		Catalog: httpH.NewCatalogHandler(services.Catalog),
		Recipe:  httpH.NewRecipeHandler(services.Recipe, services.Ledger, services.ShoppingList, pagination),
		User:    httpH.NewUserHandler(services.User, services.Subscription, pagination),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, clients Clients, handlers Handlers, middleware Middleware) *http.Server {
	tracing := ""
	if cfg.Otel.Enabled {
		tracing = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:            log.With("middleware", "RequestLogger"),
		AuthMiddleware: middleware.Auth,
		Metrics:        clients.Metrics,
		CORSOrigins:    cfg.CORSOrigins,
		TracingService: tracing,
		HealthHandler:  handlers.Health,
		CatalogHandler: handlers.Catalog,
		RecipeHandler:  handlers.Recipe,
		UserHandler:    handlers.User,
	})
}
