package controller

import (
	"music-match-be/internal/dto"
	"music-match-be/internal/pkg/serverutils"
	"music-match-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreviewController interface {
	RegisterRoutes(r fiber.Router)
	GetPreview(ctx *fiber.Ctx) error
}

type previewController struct {
	trackService      service.ITrackService
	enrichmentService service.IEnrichmentService
}

func NewPreviewController(trackService service.ITrackService, enrichmentService service.IEnrichmentService) IPreviewController {
	return &previewController{
		trackService:      trackService,
		enrichmentService: enrichmentService,
	}
}

func (c *previewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/songs/v1")
	h.Get("/preview", c.GetPreview)
}

func (c *previewController) GetPreview(ctx *fiber.Ctx) error {
	trackId := ctx.Query("track_id", "")
	if trackId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "track_id parameter is required"))
	}

	track, err := c.trackService.GetTrack(ctx.Context(), trackId)
	if err != nil {
		return err
	}

	record := c.enrichmentService.Resolve(ctx.Context(), track)
	return ctx.JSON(serverutils.SuccessResponse("Track preview", dto.PreviewResponse{
		TrackId:     record.TrackId,
		PreviewURL:  record.PreviewURL,
		AlbumArtURL: record.AlbumArtURL,
		Source:      record.Source,
	}))
}
