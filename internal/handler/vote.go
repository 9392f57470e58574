package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/git-pulkit3010/blackfeel-voting/internal/middleware"
	"github.com/git-pulkit3010/blackfeel-voting/internal/model"
	"github.com/git-pulkit3010/blackfeel-voting/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Submit handles POST /api/votes
func (h *VoteHandler) Submit(c fiber.Ctx) error {
	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	trendID, errMsg := middleware.ValidateTrendID(req.TrendID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", errMsg)
	}

	choice, errMsg := middleware.ValidateChoice(req.Choice)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", errMsg)
	}

	trend, err := h.svc.Vote(c.Context(), trendID, choice)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_REQUEST", err.Error())
		case errors.Is(err, service.ErrNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Trend not found")
		case errors.Is(err, service.ErrUnavailable):
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "UNAVAILABLE",
				"Vote not applied, please retry")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
				"Failed to record vote")
		}
	}

	Metrics.VotesTotal.WithLabelValues(trend.Category, choice).Inc()

	return c.JSON(trend)
}
