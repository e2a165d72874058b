package controller

import (
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IBlogController exposes the public, unauthenticated read surface.
type IBlogController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type blogController struct {
	service service.IBlogService
}

func NewBlogController(service service.IBlogService) IBlogController {
	return &blogController{service: service}
}

func (c *blogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/blog/v1")
	h.Get("/posts", c.List)
	h.Get("/posts/:slug", c.Show)
}

func (c *blogController) List(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	search := ctx.Query("search")

	res, err := c.service.ListPublished(ctx.Context(), page, limit, search)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get posts", res))
}

func (c *blogController) Show(ctx *fiber.Ctx) error {
	slug := ctx.Params("slug")
	if slug == "" {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Missing slug")
	}

	res, err := c.service.GetBySlug(ctx.Context(), slug)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get post", res))
}
