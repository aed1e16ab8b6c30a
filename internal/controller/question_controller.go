package controller

import (
	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/pkg/serverutils"
	"ai-sportscast-be/internal/repository/memory"
	"ai-sportscast-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Explain(ctx *fiber.Ctx) error
	Audio(ctx *fiber.Ctx) error
}

type questionController struct {
	agentService service.IAgentService
	audioRepo    *memory.AudioRepository
}

func NewQuestionController(agentService service.IAgentService, audioRepo *memory.AudioRepository) IQuestionController {
	return &questionController{
		agentService: agentService,
		audioRepo:    audioRepo,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router) {
	q := r.Group("/question/v1")
	q.Post("ask", c.Ask)
	q.Post("explain", c.Explain)

	a := r.Group("/audio/v1")
	a.Get(":id", c.Audio)
}

func (c *questionController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskQuestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Answer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

func (c *questionController) Explain(ctx *fiber.Ctx) error {
	var req dto.ExplainSportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Explain(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success explain sport", res))
}

func (c *questionController) Audio(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	audio, ok := c.audioRepo.Get(id)
	if !ok {
		return serverutils.NewApiError(fiber.StatusNotFound, "Audio not found or expired.")
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	return ctx.Send(audio)
}
