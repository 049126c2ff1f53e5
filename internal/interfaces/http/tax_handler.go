package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/extraccion-core/internal/application/odoo"
	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/internal/domain/taxmatch"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// TaxHandler resuelve la selección batch de impuestos.
type TaxHandler struct {
	log *logger.Logger
}

// NewTaxHandler construye el handler.
func NewTaxHandler(log *logger.Logger) *TaxHandler {
	return &TaxHandler{log: log}
}

// MatchRequest catálogo de Odoo más los porcentajes primarios del documento.
// Un elemento null en primary_amounts significa que ese documento no traía
// impuesto primario.
type MatchRequest struct {
	Taxes          []odoo.ResponseTax `json:"taxes"`
	PrimaryAmounts []*float64         `json:"primary_amounts"`
}

// Match produce una entrada por porcentaje pedido y el estado global derivado.
// POST /api/taxes/match
func (h *TaxHandler) Match(c *fiber.Ctx) error {
	var req MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewFieldError("body", "se esperaba un objeto JSON con taxes y primary_amounts")
	}

	candidates := odoo.Candidates(req.Taxes)
	resp := taxmatch.MatchBatch(candidates, req.PrimaryAmounts)

	h.log.Info().
		Str("request_id", RequestID(c)).
		Int("amounts", len(req.PrimaryAmounts)).
		Int("candidates", len(candidates)).
		Str("status", string(resp.Status)).
		Msg("batch de impuestos resuelto")

	return c.JSON(resp)
}
