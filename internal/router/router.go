package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/git-pulkit3010/blackfeel-voting/internal/handler"
	"github.com/git-pulkit3010/blackfeel-voting/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Trend  *handler.TrendHandler
	Vote   *handler.VoteHandler
	Cron   *handler.CronHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins, cronSecret string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (outside the API group, not rate limited)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	// Trend reads
	trends := api.Group("/trends")
	trends.Use(middleware.NewTrendsRateLimiter().Handler())
	trends.Get("", h.Trend.GetActive)

	// Votes
	votes := api.Group("/votes")
	votes.Use(middleware.NewVoteRateLimiter().Handler())
	votes.Post("", h.Vote.Submit)

	// Scheduled triggers (external scheduler, shared secret)
	cron := api.Group("/cron")
	cron.Use(middleware.NewCronAuth(cronSecret))
	cron.Post("/regenerate", h.Cron.Regenerate)
	cron.Post("/backfill-images", h.Cron.BackfillImages)
}
