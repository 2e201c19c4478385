package api

import (
	"context"
	"net/http"
	"time"

	"pantry-tracker/internal/api/handlers/health"
	pantryHandler "pantry-tracker/internal/api/handlers/pantry"
	recipesHandler "pantry-tracker/internal/api/handlers/recipes"
	shoppingHandler "pantry-tracker/internal/api/handlers/shopping"
	"pantry-tracker/internal/api/middleware"
	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/product"
	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/core/shopping"
	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// Per-request deadline; the generation call has its own tighter timeout.
	requestTimeout = 60 * time.Second
	// Request body size limit (1MB). The API carries no image payloads.
	maxBodySize = 1 << 20
)

// Services bundles everything the router needs.
type Services struct {
	Inventory    *inventory.Service
	ShoppingList *shopping.Aggregator
	Orchestrator *recipe.Orchestrator
	Lookup       *product.Lookup
}

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrorResponse{
				Code:    common.ErrCodeGatewayTimeout,
				Message: "request timed out",
			})
		}
	})

	healthH := health.NewHandler(cfg)
	router.GET("/health", healthH.Check)
	router.GET("/ready", healthH.Ready)
	router.GET("/live", healthH.Live)

	pantryH := pantryHandler.NewHandler(svc.Inventory, svc.Lookup)
	shoppingH := shoppingHandler.NewHandler(svc.ShoppingList)
	recipesH := recipesHandler.NewHandler(svc.Orchestrator, svc.Inventory)

	api := router.Group("/api/v1")
	{
		items := api.Group("/items")
		{
			items.GET("", pantryH.ListItems)
			items.GET("/expiring", pantryH.ExpiringItems)
			items.POST("", pantryH.AddItem)
			items.DELETE("/:id", pantryH.DeleteItem)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", pantryH.ListCategories)
			categories.POST("", pantryH.AddCategory)
			categories.DELETE("/:id", pantryH.DeleteCategory)
		}

		list := api.Group("/shopping")
		{
			list.GET("", shoppingH.List)
			list.GET("/stats", shoppingH.Stats)
			list.GET("/export", shoppingH.Export)
			list.POST("", shoppingH.Add)
			list.POST("/from-recipe", shoppingH.AddFromRecipe)
			list.POST("/:id/toggle", shoppingH.Toggle)
			list.DELETE("", shoppingH.ClearAll)
			list.DELETE("/checked", shoppingH.ClearChecked)
			list.DELETE("/:id", shoppingH.Remove)
		}

		api.POST("/recipes/suggest", recipesH.Suggest)
		api.GET("/products/:barcode", pantryH.LookupProduct)
	}

	common.LogInfo("router setup completed",
		zap.Bool("generation_configured", cfg.Generation.Configured()),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router
}
