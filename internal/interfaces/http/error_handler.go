package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// ErrorResponse cuerpo uniforme de error de la API.
type ErrorResponse struct {
	ErrorType  string         `json:"error_type"`
	Detail     string         `json:"detail"`
	StatusCode int            `json:"status_code"`
	RequestID  string         `json:"request_id"`
	Timestamp  string         `json:"timestamp"`
	Data       map[string]any `json:"data,omitempty"`
}

// ErrorHandler mapea errores de dominio al cuerpo uniforme. Los CoreError
// traen su propio status; cualquier otro error es un 500 genérico.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID := RequestID(c)
		resp := ErrorResponse{
			ErrorType:  "InternalError",
			Detail:     "Error interno del servidor",
			StatusCode: fiber.StatusInternalServerError,
			RequestID:  requestID,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		}

		var coreErr *domain.CoreError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &coreErr):
			resp.ErrorType = coreErr.Type
			resp.Detail = coreErr.Message
			resp.StatusCode = coreErr.StatusCode
			resp.Data = coreErr.Data
		case errors.As(err, &fiberErr):
			resp.ErrorType = "HTTPError"
			resp.Detail = fiberErr.Message
			resp.StatusCode = fiberErr.Code
		}

		log.Error().
			Str("request_id", requestID).
			Str("error_type", resp.ErrorType).
			Int("status", resp.StatusCode).
			Str("path", c.Path()).
			Err(err).
			Msg("request fallida")

		return c.Status(resp.StatusCode).JSON(resp)
	}
}

const requestIDKey = "request_id"

// RequestIDMiddleware asigna un UUID por request para correlacionar logs.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

// RequestID devuelve el identificador asignado a la request.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
