package controller

import (
	"context"
	"strconv"

	"ai-blogcms-be/internal/dto"
	"ai-blogcms-be/internal/pkg/serverutils"
	"ai-blogcms-be/internal/service"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	SetSelection(ctx *fiber.Ctx) error
	ClearSelection(ctx *fiber.Ctx) error
	SetContent(ctx *fiber.Ctx) error
	InsertImage(ctx *fiber.Ctx) error
	ReplaceImage(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Events(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
}

type editorController struct {
	service service.IEditorService
	stream  message.Subscriber
}

func NewEditorController(service service.IEditorService, stream message.Subscriber) IEditorController {
	return &editorController{service: service, stream: stream}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/sessions", c.Open)
	h.Post("/generate", c.Generate)
	h.Get("/sessions/:id", c.Show)
	h.Post("/sessions/:id/chat", c.Chat)
	h.Post("/sessions/:id/approve", c.Approve)
	h.Post("/sessions/:id/reject", c.Reject)
	h.Put("/sessions/:id/selection", c.SetSelection)
	h.Delete("/sessions/:id/selection", c.ClearSelection)
	h.Put("/sessions/:id/content", c.SetContent)
	h.Post("/sessions/:id/images", c.InsertImage)
	h.Put("/sessions/:id/images/:ordinal", c.ReplaceImage)
	h.Get("/sessions/:id/preview", c.Preview)
	h.Get("/sessions/:id/events", c.Events)
	h.Delete("/sessions/:id", c.Close)
}

func (c *editorController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.Open(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Editor session opened", res))
}

func (c *editorController) Show(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *editorController) Chat(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Request processed", res))
}

func (c *editorController) Approve(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Approve(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Changes applied", res))
}

func (c *editorController) Reject(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Reject(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Changes rejected", res))
}

func (c *editorController) SetSelection(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetSelection(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *editorController) ClearSelection(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.ClearSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.ClearSelection(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection cleared", res))
}

func (c *editorController) SetContent(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.SetContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.SetContent(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Content updated", res))
}

func (c *editorController) InsertImage(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.InsertImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.InsertImage(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Image inserted", res))
}

func (c *editorController) ReplaceImage(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}
	ordinal, err := strconv.Atoi(ctx.Params("ordinal"))
	if err != nil {
		return serverutils.NewApiError(fiber.StatusBadRequest, "Invalid image ordinal")
	}

	var req dto.ReplaceImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ReplaceImage(ctx.Context(), id, ordinal, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Image replaced", res))
}

// Events streams session state pushes over a WebSocket. Each frame is the
// same JSON envelope the REST endpoints return, emitted after every
// discrete session event.
func (c *editorController) Events(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}
	if _, err := c.service.Get(ctx.Context(), id); err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		sctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		messages, err := c.stream.Subscribe(sctx, service.EditorStreamTopic(id))
		if err != nil {
			return
		}

		// The read pump only exists to notice the client going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}()

		for msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
				msg.Ack()
				return
			}
			msg.Ack()
		}
	})(ctx)
}

func (c *editorController) Preview(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Preview(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success render preview", res))
}

func (c *editorController) Close(ctx *fiber.Ctx) error {
	id, err := sessionId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Close(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session closed", nil))
}

func (c *editorController) Generate(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GenerateArticleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Article generated", res))
}

func sessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewApiError(fiber.StatusBadRequest, "Invalid session id")
	}
	return id, nil
}
