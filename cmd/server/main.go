package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/git-pulkit3010/blackfeel-voting/internal/config"
	"github.com/git-pulkit3010/blackfeel-voting/internal/db"
	"github.com/git-pulkit3010/blackfeel-voting/internal/handler"
	"github.com/git-pulkit3010/blackfeel-voting/internal/middleware"
	"github.com/git-pulkit3010/blackfeel-voting/internal/openrouter"
	"github.com/git-pulkit3010/blackfeel-voting/internal/repository"
	"github.com/git-pulkit3010/blackfeel-voting/internal/router"
	"github.com/git-pulkit3010/blackfeel-voting/internal/service"
	"github.com/git-pulkit3010/blackfeel-voting/internal/tmdb"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "blackfeel-api")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	trendRepo := repository.NewTrendRepo(pool)
	historyRepo := repository.NewHistoryRepo(pool)

	textProvider := openrouter.NewClient(cfg.OpenRouterKey, cfg.OpenRouterModel)
	imageResolver := tmdb.NewClient(cfg.TMDBKey)

	trendSvc := service.NewTrendService(trendRepo, cache)
	voteSvc := service.NewVoteService(trendRepo, cache)
	genSvc := service.NewGenerationService(trendRepo, historyRepo, textProvider,
		cache, cfg.HistoryMonths, cfg.ProviderTimeout)
	backfillSvc := service.NewBackfillService(trendRepo, imageResolver,
		cache, cfg.ProviderTimeout)

	app := fiber.New(fiber.Config{
		AppName:      "Blackfeel Voting API",
		ServerHeader: "Blackfeel",
	})

	router.Setup(app, &router.Handlers{
		Trend:  handler.NewTrendHandler(trendSvc),
		Vote:   handler.NewVoteHandler(voteSvc),
		Cron:   handler.NewCronHandler(genSvc, backfillSvc),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins, cfg.CronSecret)

	log.Printf("blackfeel backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
