// Package http expone los pipelines de extracción como una API Fiber.
// Los handlers son adaptadores delgados: decodifican el JSON crudo del
// extractor, delegan en el pipeline y devuelven el registro validado.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/extraccion-core/internal/application/extract"
	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// ExtractHandler maneja las peticiones de normalización de documentos.
type ExtractHandler struct {
	invoices  *extract.InvoicePipeline
	metadata  *extract.MetadataPipeline
	parties   *extract.PartyPipeline
	docnumber *extract.DocNumberPipeline
}

// NewExtractHandler construye el handler con sus cuatro pipelines.
func NewExtractHandler(log *logger.Logger) *ExtractHandler {
	return &ExtractHandler{
		invoices:  extract.NewInvoicePipeline(log),
		metadata:  extract.NewMetadataPipeline(log),
		parties:   extract.NewPartyPipeline(log),
		docnumber: extract.NewDocNumberPipeline(log),
	}
}

// Invoice valida y reconcilia una factura extraída.
// POST /api/extract/invoice
func (h *ExtractHandler) Invoice(c *fiber.Ctx) error {
	raw, err := parseBody(c)
	if err != nil {
		return err
	}
	record, err := h.invoices.Run(raw)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Metadata normaliza los metadatos fiscales de un documento.
// POST /api/extract/metadata
func (h *ExtractHandler) Metadata(c *fiber.Ctx) error {
	raw, err := parseBody(c)
	if err != nil {
		return err
	}
	record, err := h.metadata.Run(raw)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// Party normaliza emisor, receptor e identificadores fiscales detectados.
// POST /api/extract/party
func (h *ExtractHandler) Party(c *fiber.Ctx) error {
	raw, err := parseBody(c)
	if err != nil {
		return err
	}
	record, err := h.parties.Run(raw)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// InvoiceNumber valida la extracción del número de documento.
// POST /api/extract/invoice-number
func (h *ExtractHandler) InvoiceNumber(c *fiber.Ctx) error {
	raw, err := parseBody(c)
	if err != nil {
		return err
	}
	record, err := h.docnumber.Run(raw)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func parseBody(c *fiber.Ctx) (map[string]any, error) {
	var raw map[string]any
	if err := c.BodyParser(&raw); err != nil {
		return nil, domain.NewFieldError("body", "se esperaba un objeto JSON")
	}
	if raw == nil {
		return nil, domain.NewFieldError("body", "el cuerpo no puede estar vacío")
	}
	return raw, nil
}
