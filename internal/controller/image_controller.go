package controller

import (
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type imageController struct {
	service service.IImageService
}

func NewImageController(service service.IImageService) IImageController {
	return &imageController{service: service}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/images/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/search", c.Search)
}

func (c *imageController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("query")
	if query == "" {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Missing query")
	}
	page := ctx.QueryInt("page", 1)

	res, err := c.service.Search(ctx.Context(), query, page)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search images", res))
}
