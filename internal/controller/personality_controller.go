package controller

import (
	"music-match-be/internal/dto"
	"music-match-be/internal/pkg/serverutils"
	"music-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPersonalityController interface {
	RegisterRoutes(r fiber.Router)
	GetPersonality(ctx *fiber.Ctx) error
}

type personalityController struct {
	service service.IPersonalityService
}

func NewPersonalityController(service service.IPersonalityService) IPersonalityController {
	return &personalityController{service: service}
}

func (c *personalityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/personality/v1")
	h.Post("/", c.GetPersonality)
}

func (c *personalityController) GetPersonality(ctx *fiber.Ctx) error {
	var req dto.PersonalityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GetPersonality(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Music personality", res))
}
