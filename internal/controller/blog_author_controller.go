package controller

import (
	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBlogAuthorController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type blogAuthorController struct {
	service service.IBlogAuthorService
}

func NewBlogAuthorController(service service.IBlogAuthorService) IBlogAuthorController {
	return &blogAuthorController{service: service}
}

func (c *blogAuthorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/blog-admin/v1/authors")
	h.Use(serverutils.AdminMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Post("me", c.Mine)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *blogAuthorController) Create(ctx *fiber.Ctx) error {
	var req dto.SaveAuthorRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Success create author", res))
}

// Mine resolves the caller's author profile, creating it on first use.
func (c *blogAuthorController) Mine(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return serverutils.NewApiError(fiber.StatusUnauthorized, "Invalid user id in token")
	}

	res, err := c.service.GetOrCreateForUser(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get author profile", res))
}

func (c *blogAuthorController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid author id")
	}

	var req dto.SaveAuthorRequest
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
	return ctx.JSON(serverutils.SuccessResponse("Success update author", res))
}

func (c *blogAuthorController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid author id")
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get author", res))
}

func (c *blogAuthorController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get authors", res))
}

func (c *blogAuthorController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid author id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete author", nil))
}
