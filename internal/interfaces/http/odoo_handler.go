package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/extraccion-core/internal/application/odoo"
	"github.com/jhoicas/extraccion-core/internal/domain"
)

// OdooHandler valida y arma los payloads destinados al conector Odoo.
type OdooHandler struct{}

// NewOdooHandler construye el handler.
func NewOdooHandler() *OdooHandler {
	return &OdooHandler{}
}

// SupplierPayload normaliza un proveedor y devuelve el payload de res.partner.
// POST /api/odoo/supplier-payload
func (h *OdooHandler) SupplierPayload(c *fiber.Ctx) error {
	var in odoo.SupplierCreate
	if err := c.BodyParser(&in); err != nil {
		return domain.NewFieldError("body", "se esperaba un objeto JSON de proveedor")
	}
	supplier, err := in.Normalize()
	if err != nil {
		return err
	}
	return c.JSON(supplier.AsOdooPayload())
}

// InvoicePayload valida una factura de proveedor y devuelve el payload de
// account.move con las líneas como triples (0, 0, values).
// POST /api/odoo/invoice-payload
func (h *OdooHandler) InvoicePayload(c *fiber.Ctx) error {
	var in odoo.InvoiceCreate
	if err := c.BodyParser(&in); err != nil {
		return domain.NewFieldError("body", "se esperaba un objeto JSON de factura")
	}
	if err := in.Validate(); err != nil {
		return err
	}
	return c.JSON(in.AsOdooPayload())
}
