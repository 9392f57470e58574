package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/git-pulkit3010/blackfeel-voting/internal/middleware"
	"github.com/git-pulkit3010/blackfeel-voting/internal/service"
)

// CronHandler exposes the externally scheduled jobs. Per-item failures are
// observability events, not caller-facing errors: both endpoints answer 200
// with an outcome summary as long as the run itself could execute.
type CronHandler struct {
	gen      *service.GenerationService
	backfill *service.BackfillService
}

func NewCronHandler(gen *service.GenerationService, backfill *service.BackfillService) *CronHandler {
	return &CronHandler{gen: gen, backfill: backfill}
}

// Regenerate handles POST /api/cron/regenerate
func (h *CronHandler) Regenerate(c fiber.Ctx) error {
	summary, err := h.gen.Run(c.Context())
	if err != nil {
		// The retire phase failed; nothing was generated.
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "UNAVAILABLE",
			"Regeneration could not run")
	}

	for _, o := range summary.Outcomes {
		Metrics.GenerationCategories.WithLabelValues(o.Status).Inc()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
	})
}

// BackfillImages handles POST /api/cron/backfill-images
func (h *CronHandler) BackfillImages(c fiber.Ctx) error {
	summary, err := h.backfill.Run(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "UNAVAILABLE",
			"Image backfill could not run")
	}

	Metrics.BackfillImages.WithLabelValues("resolved").Add(float64(summary.Resolved))
	Metrics.BackfillImages.WithLabelValues("miss").Add(float64(summary.Misses))
	Metrics.BackfillImages.WithLabelValues("error").Add(float64(summary.Errors))

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
	})
}
