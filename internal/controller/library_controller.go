package controller

import (
	"music-match-be/internal/dto"
	"music-match-be/internal/pkg/serverutils"
	"music-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILibraryController interface {
	RegisterRoutes(r fiber.Router)
	GetLibrary(ctx *fiber.Ctx) error
	AddTrack(ctx *fiber.Ctx) error
	RemoveTrack(ctx *fiber.Ctx) error
}

type libraryController struct {
	service service.ILibraryService
}

func NewLibraryController(service service.ILibraryService) ILibraryController {
	return &libraryController{service: service}
}

func (c *libraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/library/v1")
	h.Get("/", c.GetLibrary)
	h.Post("/add", c.AddTrack)
	h.Delete("/:trackId", c.RemoveTrack)
}

func (c *libraryController) GetLibrary(ctx *fiber.Ctx) error {
	username := ctx.Query("username", "")
	if username == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "username parameter is required"))
	}

	res, err := c.service.GetLibrary(ctx.Context(), username)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User library", res))
}

func (c *libraryController) AddTrack(ctx *fiber.Ctx) error {
	var req dto.AddLibraryTrackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddTrack(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Track added to library", res))
}

func (c *libraryController) RemoveTrack(ctx *fiber.Ctx) error {
	trackId := ctx.Params("trackId")
	username := ctx.Query("username", "")
	if username == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "username parameter is required"))
	}

	res, err := c.service.RemoveTrack(ctx.Context(), username, trackId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Track removed from library", res))
}
