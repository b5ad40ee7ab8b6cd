package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const metricsPath = "/metrics"

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	Metrics        *observability.Metrics
	CORSOrigins    []string
	// TracingService enables otelgin spans under this service name when set.
	TracingService string

	CatalogHandler *httpH.CatalogHandler
	RecipeHandler  *httpH.RecipeHandler
	UserHandler    *httpH.UserHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsPath))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.NoRoute(func(c *gin.Context) {
		response.RespondError(c, http.StatusNotFound, "route_not_found", nil)
	})

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsPath, gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	requireAuth := func(c *gin.Context) { c.Next() }
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.Authenticate())
		requireAuth = cfg.AuthMiddleware.RequireAuth()
	}

	// Catalog (public)
	if cfg.CatalogHandler != nil {
		api.GET("/tags", cfg.CatalogHandler.ListTags)
		api.GET("/tags/:id", cfg.CatalogHandler.GetTag)
		api.GET("/ingredients", cfg.CatalogHandler.ListIngredients)
		api.GET("/ingredients/:id", cfg.CatalogHandler.GetIngredient)
	}

	// Recipes
	if h := cfg.RecipeHandler; h != nil {
		api.GET("/recipes", h.List)
		api.GET("/recipes/:id", h.Get)

		protected := api.Group("/recipes", requireAuth)
		protected.POST("", h.Create)
		protected.PATCH("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
		protected.POST("/:id/favorite", h.AddTo(types.LedgerFavorite))
		protected.DELETE("/:id/favorite", h.RemoveFrom(types.LedgerFavorite))
		protected.POST("/:id/shopping_cart", h.AddTo(types.LedgerShoppingCart))
		protected.DELETE("/:id/shopping_cart", h.RemoveFrom(types.LedgerShoppingCart))
		protected.GET("/download_shopping_cart", h.DownloadShoppingCart)
	}

	// Users
	if h := cfg.UserHandler; h != nil {
		api.GET("/users", h.List)
		api.GET("/users/:id", h.Get)

		protected := api.Group("/users", requireAuth)
		protected.GET("/me", h.Me)
		protected.GET("/subscriptions", h.Subscriptions)
		protected.POST("/:id/subscribe", h.Subscribe)
		protected.DELETE("/:id/subscribe", h.Unsubscribe)
	}

	return r
}
