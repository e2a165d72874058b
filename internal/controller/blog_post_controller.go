package controller

import (
	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBlogPostController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type blogPostController struct {
	service service.IBlogPostService
}

func NewBlogPostController(service service.IBlogPostService) IBlogPostController {
	return &blogPostController{service: service}
}

func (c *blogPostController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/blog-admin/v1/posts")
	h.Use(serverutils.AdminMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *blogPostController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create post", res))
}

func (c *blogPostController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid post id")
	}

	var req dto.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update post", res))
}

func (c *blogPostController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid post id")
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get post", res))
}

func (c *blogPostController) List(ctx *fiber.Ctx) error {
	filter := service.PostListFilter{
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 10),
		Search: ctx.Query("search"),
	}
	if authorStr := ctx.Query("author_id"); authorStr != "" {
		authorId, err := uuid.Parse(authorStr)
		if err != nil {
			return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid author_id filter")
		}
		filter.AuthorId = authorId
	}

	res, err := c.service.List(ctx.Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get posts", res))
}

func (c *blogPostController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid post id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete post", nil))
}
