package controller

import (
	"music-match-be/internal/pkg/serverutils"
	"music-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITrackController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type trackController struct {
	service service.ITrackService
}

func NewTrackController(service service.ITrackService) ITrackController {
	return &trackController{service: service}
}

func (c *trackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tracks/v1")
	h.Get("/search", c.Search)
}

func (c *trackController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q", "")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "q parameter is required"))
	}
	limit := ctx.QueryInt("limit", 0)

	res, err := c.service.Search(ctx.Context(), query, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
