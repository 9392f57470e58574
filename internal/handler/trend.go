package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/git-pulkit3010/blackfeel-voting/internal/middleware"
	"github.com/git-pulkit3010/blackfeel-voting/internal/service"
)

type TrendHandler struct {
	svc *service.TrendService
}

func NewTrendHandler(svc *service.TrendService) *TrendHandler {
	return &TrendHandler{svc: svc}
}

// GetActive handles GET /api/trends — the active trend per category.
// Categories without an active trend are absent from the response; the
// frontend renders an empty state for them.
func (h *TrendHandler) GetActive(c fiber.Ctx) error {
	trends, cached, err := h.svc.ActiveByCategory(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable,
			"UNAVAILABLE", "Failed to fetch trends")
	}

	if cached {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	// Clients and intermediaries must always re-fetch vote counts.
	c.Set("Cache-Control", "no-store")
	return c.JSON(trends)
}
