package odoo

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/extraccion-core/internal/domain"
)

// InvoiceLine línea de factura destinada a account.move.line.
// A diferencia de los ítems extraídos, aquí las cantidades deben ser
// estrictamente positivas: Odoo rechaza movimientos con qty<=0.
type InvoiceLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	PriceUnit decimal.Decimal `json:"price_unit"`
	TaxIDs    []int64         `json:"tax_ids,omitempty"`
	Name      string          `json:"name,omitempty"`
}

// Validate aplica las reglas duras de la línea.
func (l InvoiceLine) Validate() error {
	if l.ProductID <= 0 {
		return domain.NewFieldError("product_id", "product_id debe ser mayor que cero")
	}
	if !l.Quantity.IsPositive() {
		return domain.NewFieldError("quantity", "quantity debe ser mayor que cero")
	}
	return nil
}

// AsOdooTriple arma el triple (0, 0, values) que espera el ORM de Odoo para
// crear la línea en el mismo write de la factura. Los impuestos van como
// (6, 0, ids) dentro de values.
func (l InvoiceLine) AsOdooTriple() []any {
	values := map[string]any{
		"product_id": l.ProductID,
		"quantity":   l.Quantity.InexactFloat64(),
		"price_unit": l.PriceUnit.InexactFloat64(),
	}
	if l.Name != "" {
		values["name"] = l.Name
	}
	if len(l.TaxIDs) > 0 {
		values["tax_ids"] = []any{[]any{6, 0, l.TaxIDs}}
	}
	return []any{0, 0, values}
}

// InvoiceCreate factura de proveedor lista para account.move.
type InvoiceCreate struct {
	PartnerID     int64         `json:"partner_id"`
	Ref           string        `json:"ref,omitempty"` // número de documento del proveedor
	InvoiceDate   string        `json:"invoice_date,omitempty"`
	PurchaseOrder string        `json:"purchase_order,omitempty"` // enlaza la factura con su orden de compra
	CurrencyID    *int64        `json:"currency_id,omitempty"`
	Lines         []InvoiceLine `json:"lines"`
}

// Validate comprueba la factura y todas sus líneas.
func (i InvoiceCreate) Validate() error {
	if i.PartnerID <= 0 {
		return domain.NewFieldError("partner_id", "partner_id debe ser mayor que cero")
	}
	if len(i.Lines) == 0 {
		return domain.NewFieldError("lines", "la factura necesita al menos una línea")
	}
	for _, l := range i.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AsOdooPayload arma el payload de account.move con move_type in_invoice y
// las líneas como triples (0, 0, values).
func (i InvoiceCreate) AsOdooPayload() map[string]any {
	lines := make([]any, 0, len(i.Lines))
	for _, l := range i.Lines {
		lines = append(lines, l.AsOdooTriple())
	}
	payload := map[string]any{
		"move_type":        "in_invoice",
		"partner_id":       i.PartnerID,
		"invoice_line_ids": lines,
	}
	putIfSet(payload, "ref", i.Ref)
	putIfSet(payload, "invoice_date", i.InvoiceDate)
	putIfSet(payload, "invoice_origin", i.PurchaseOrder)
	if i.CurrencyID != nil {
		payload["currency_id"] = *i.CurrencyID
	}
	return payload
}
