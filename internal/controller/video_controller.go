package controller

import (
	"strconv"

	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/pkg/serverutils"
	"ai-sportscast-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router)
	Load(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
}

type videoController struct {
	sessionService service.ISessionService
}

func NewVideoController(sessionService service.ISessionService) IVideoController {
	return &videoController{
		sessionService: sessionService,
	}
}

func (c *videoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/video/v1")
	h.Post("load", c.Load)
	h.Get(":id/transcript", c.Transcript)
}

func (c *videoController) Load(ctx *fiber.Ctx) error {
	var req dto.LoadVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.LoadVideo(ctx.Context(), req.URL)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load video", res))
}

func (c *videoController) Transcript(ctx *fiber.Ctx) error {
	videoID := ctx.Params("id")

	start := ctx.QueryFloat("start", 0)
	var end *float64
	if raw := ctx.Query("end"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid end time.")
		}
		end = &parsed
	}

	res, err := c.sessionService.GetTranscript(videoID, start, end)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}
