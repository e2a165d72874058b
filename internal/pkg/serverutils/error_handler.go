// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-blogcms-be/internal/pkg/logger"
)

// ApiError carries an HTTP status with a domain error so services can
// signal the response code without importing fiber.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string { return e.Message }

func NewApiError(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

// ErrorHandlerMiddleware converts errors escaping controllers into the
// standard response envelope. Unknown errors are logged and masked as 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.Code).JSON(ErrorResponse(apiErr.Code, apiErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled request error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
