package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/extraccion-core/internal/infrastructure/secrets"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Log     *logger.Logger
	Secrets *secrets.Manager
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestIDMiddleware())

	api := app.Group("/api")

	// Salud
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Extracción y normalización de documentos
	extractGroup := api.Group("/extract")
	extractHandler := NewExtractHandler(deps.Log)
	extractGroup.Post("/invoice", extractHandler.Invoice)
	extractGroup.Post("/metadata", extractHandler.Metadata)
	extractGroup.Post("/party", extractHandler.Party)
	extractGroup.Post("/invoice-number", extractHandler.InvoiceNumber)

	// Selección de impuestos
	taxes := api.Group("/taxes")
	taxHandler := NewTaxHandler(deps.Log)
	taxes.Post("/match", taxHandler.Match)

	// Payloads para el conector Odoo
	odooGroup := api.Group("/odoo")
	odooHandler := NewOdooHandler()
	odooGroup.Post("/supplier-payload", odooHandler.SupplierPayload)
	odooGroup.Post("/invoice-payload", odooHandler.InvoicePayload)

	// Configuración dinámica (catálogos, credenciales de conectores)
	if deps.Secrets != nil {
		secretsGroup := api.Group("/secrets")
		secretsHandler := NewSecretsHandler(deps.Secrets)
		secretsGroup.Get("/:key", secretsHandler.Get)
		secretsGroup.Put("/:key", secretsHandler.Set)
		secretsGroup.Delete("/:key", secretsHandler.Delete)
	}
}
