package controller

import (
	"ai-sportscast-be/internal/dto"
	"ai-sportscast-be/internal/pkg/serverutils"
	"ai-sportscast-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICommentaryController interface {
	RegisterRoutes(r fiber.Router)
	Push(ctx *fiber.Ctx) error
	EventUpdate(ctx *fiber.Ctx) error
}

type commentaryController struct {
	commentaryService service.ICommentaryService
}

func NewCommentaryController(commentaryService service.ICommentaryService) ICommentaryController {
	return &commentaryController{
		commentaryService: commentaryService,
	}
}

func (c *commentaryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/commentary/v1")
	h.Post("push", c.Push)

	e := r.Group("/event/v1")
	e.Post("update", c.EventUpdate)
}

func (c *commentaryController) Push(ctx *fiber.Ctx) error {
	var req dto.PushCommentaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.commentaryService.PushCard(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success push commentary", res))
}

func (c *commentaryController) EventUpdate(ctx *fiber.Ctx) error {
	var req dto.EventUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.commentaryService.PushEventUpdate(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success push event update", res))
}
