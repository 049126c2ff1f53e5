package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/internal/infrastructure/secrets"
)

// SecretsHandler expone la configuración dinámica guardada en Secrets Manager.
type SecretsHandler struct {
	manager *secrets.Manager
}

// NewSecretsHandler construye el handler.
func NewSecretsHandler(manager *secrets.Manager) *SecretsHandler {
	return &SecretsHandler{manager: manager}
}

// Get devuelve el valor de una clave.
// GET /api/secrets/:key
func (h *SecretsHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	value, err := h.manager.Get(c.Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

// Set escribe una clave.
// PUT /api/secrets/:key
func (h *SecretsHandler) Set(c *fiber.Ctx) error {
	key := c.Params("key")
	var body struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return domain.NewFieldError("body", "se esperaba un objeto JSON con value")
	}
	if err := h.manager.Set(c.Context(), key, body.Value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"key": key, "updated": true})
}

// Delete elimina una clave del documento.
// DELETE /api/secrets/:key
func (h *SecretsHandler) Delete(c *fiber.Ctx) error {
	key := c.Params("key")
	if err := h.manager.Delete(c.Context(), key); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
