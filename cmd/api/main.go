package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pantry-tracker/internal/api"
	aiService "pantry-tracker/internal/core/ai"
	"pantry-tracker/internal/core/ai/azure"
	"pantry-tracker/internal/core/ai/cache"
	"pantry-tracker/internal/core/inventory"
	"pantry-tracker/internal/core/product"
	"pantry-tracker/internal/core/recipe"
	"pantry-tracker/internal/core/shopping"
	"pantry-tracker/internal/infrastructure/config"
	"pantry-tracker/internal/infrastructure/store"
	"pantry-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.Bool("generation_configured", cfg.Generation.Configured()),
		zap.Bool("fallback_enabled", cfg.Generation.Fallback),
		zap.String("store_path", cfg.Store.Path),
	)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		common.LogFatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	scheduler := inventory.NewLocalScheduler()
	inventorySvc, err := inventory.NewService(st, scheduler)
	if err != nil {
		common.LogFatal("failed to initialize inventory", zap.Error(err))
	}

	shoppingList, err := shopping.NewAggregator(st)
	if err != nil {
		common.LogFatal("failed to initialize shopping list", zap.Error(err))
	}

	var generator recipe.Generator
	if cfg.Generation.Configured() {
		var completionCache aiService.Cache
		if cfg.Cache.Enabled {
			if cfg.Cache.RedisAddr != "" {
				redisCache, err := cache.NewRedisCache(cfg.Cache)
				if err != nil {
					common.LogFatal("failed to connect completion cache", zap.Error(err))
				}
				defer redisCache.Close()
				completionCache = redisCache
			} else if m := cache.NewManager(cfg.Cache); m != nil {
				completionCache = m
			}
		}
		generator = aiService.NewService(cfg.Generation, azure.NewClient(cfg.Generation), completionCache)
	}

	orchestrator := recipe.NewOrchestrator(cfg.Generation, generator)
	lookup := product.NewLookup(cfg.Lookup)

	router := api.SetupRouter(cfg, api.Services{
		Inventory:    inventorySvc,
		ShoppingList: shoppingList,
		Orchestrator: orchestrator,
		Lookup:       lookup,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("starting server",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.App.Version),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
