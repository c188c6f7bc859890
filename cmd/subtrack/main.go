package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"subtrack/internal/api"
	"subtrack/internal/api/handlers"
	"subtrack/internal/cache"
	"subtrack/internal/reminder"
	"subtrack/internal/repository"
	"subtrack/internal/service"
	"subtrack/pkg/auth"
	"subtrack/pkg/config"
	"subtrack/pkg/logger"
	"subtrack/pkg/postgres"

	"go.uber.org/zap"
)

// @title Subtrack API
// @version 1.0
// @description Учёт подписок: нормализация стоимости, бюджет и рекомендации партнёрских сервисов
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting subtrack service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	subRepo := repository.NewSubscriptionRepository(db, appLogger)
	budgetRepo := repository.NewBudgetRepository(db, appLogger)
	partnerRepo := repository.NewPartnerRepository(db, appLogger)
	recRepo := repository.NewRecommendationRepository(db, appLogger)

	redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
	}
	var cacheClient cache.RedisClient
	if redisClient != nil {
		cacheClient = redisClient
		defer redisClient.Close()
	}
	catalog := cache.NewCatalogCache(cacheClient, partnerRepo, cfg.Redis.Prefix, cfg.Redis.CatalogTTL, logger.Named("catalog-cache"))

	var assistant service.Assistant
	if cfg.GigaChat.Enabled() {
		llmService, err := service.NewLLMService(&cfg.GigaChat, logger.Named("llm"))
		if err != nil {
			appLogger.Warn("GigaChat unavailable, AI features disabled", zap.Error(err))
		} else {
			assistant = llmService
			defer llmService.Close()
		}
	} else {
		appLogger.Info("GIGACHAT_API_KEY not set, AI features disabled")
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	subService := service.NewSubscriptionService(subRepo, assistant, appLogger)
	budgetService := service.NewBudgetService(budgetRepo, subRepo, appLogger)
	catalogService := service.NewCatalogService(catalog, partnerRepo, appLogger)
	recService := service.NewRecommendationService(subRepo, catalog, recRepo, assistant, &cfg.Recommendation, appLogger)

	app := api.SetupRouter(api.Handlers{
		Auth:           handlers.NewAuthHandler(authService, appLogger),
		Subscription:   handlers.NewSubscriptionHandler(subService, appLogger),
		Budget:         handlers.NewBudgetHandler(budgetService, appLogger),
		Recommendation: handlers.NewRecommendationHandler(recService, catalogService, appLogger),
	}, jwtManager, db.Ping, &cfg.Server, appLogger)

	if cfg.Reminder.Enabled {
		sweeper := reminder.NewSweeper(subRepo, cfg.Reminder.Interval, logger.Named("reminder"))
		go sweeper.Run(ctx)
	}

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
