package controller

import (
	"music-match-be/internal/dto"
	"music-match-be/internal/pkg/serverutils"
	"music-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMatchController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	NextTrack(ctx *fiber.Ctx) error
	Swipe(ctx *fiber.Ctx) error
}

type matchController struct {
	service service.ISessionService
}

func NewMatchController(service service.ISessionService) IMatchController {
	return &matchController{service: service}
}

func (c *matchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/match/v1")
	h.Post("/sessions", c.StartSession)
	h.Get("/next", c.NextTrack)
	h.Post("/swipe", c.Swipe)
}

func (c *matchController) StartSession(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StartSession(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session started", res))
}

func (c *matchController) NextTrack(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id", "")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id parameter is required"))
	}

	res, err := c.service.NextTrack(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Next track", res))
}

func (c *matchController) Swipe(ctx *fiber.Ctx) error {
	var req dto.SwipeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Swipe(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Swipe recorded", res))
}
