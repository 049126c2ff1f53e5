// Package invoice contiene el modelo tipado de la extracción de facturas y el
// motor de conciliación aritmética en tres niveles: línea → desglose de IVA →
// total del documento. line_total es el importe ANTES de IVA (base imponible
// de la línea) y los valores negativos se preservan en todos los campos
// derivados (notas de crédito, devoluciones).
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency moneda del documento.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyARS Currency = "ARS"
)

// ParseCurrency coacciona un string libre a moneda; no reconocida → EUR,
// la moneda por defecto de los documentos procesados.
func ParseCurrency(s string) Currency {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyEUR, CurrencyUSD, CurrencyARS:
		return Currency(strings.ToUpper(strings.TrimSpace(s)))
	default:
		return CurrencyEUR
	}
}

// LineItem es un ítem/línea de factura ya coaccionado a decimales exactos.
type LineItem struct {
	Date         string `json:"date,omitempty"`
	DeliveryCode string `json:"delivery_code,omitempty"`
	ProductCode  string `json:"product_code,omitempty"`
	Description  string `json:"description"`

	Quantity  decimal.Decimal `json:"quantity"` // puede ser negativa (devoluciones)
	Unit      string          `json:"unit,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount,omitempty"`

	NetPrice  *decimal.Decimal `json:"net_price,omitempty"` // neto por unidad post-descuento
	LineTotal decimal.Decimal  `json:"line_total"`          // base imponible de la línea (pre-IVA)

	VATPercent decimal.Decimal `json:"vat_percent"` // 0 si exento
	VATAmount  decimal.Decimal `json:"vat_amount"`  // negativo para créditos
	VATLabel   string          `json:"vat_label,omitempty"`
	TaxID      *int64          `json:"tax_id,omitempty"`

	Measurements string           `json:"measurements,omitempty"`
	Color        string           `json:"color,omitempty"`
	WeightKg     *decimal.Decimal `json:"weight_kg,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// VATEntry entrada del desglose de IVA: una por tasa distinta.
type VATEntry struct {
	Percent     decimal.Decimal `json:"percent"`
	TaxableBase decimal.Decimal `json:"taxable_base"` // puede ser negativa
	Amount      decimal.Decimal `json:"amount"`
}

// DiscountEntry descuento: se RESTA del total. El monto se guarda positivo;
// la dirección la codifica la fórmula del total, no el signo almacenado.
type DiscountEntry struct {
	Label   string           `json:"label"`
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Amount  decimal.Decimal  `json:"amount"`
}

// WithholdingEntry retención (IRPF, etc.): se RESTA del total.
type WithholdingEntry struct {
	Label   string           `json:"label"`
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Amount  decimal.Decimal  `json:"amount"`
}

// PerceptionEntry percepción AR (IIBB, SIRCREB, ARBA, AGIP): se SUMA al total.
// No confundir con retenciones.
type PerceptionEntry struct {
	Label   string           `json:"label"`
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Amount  decimal.Decimal  `json:"amount"`
}

// Totals bloque de totales del documento.
type Totals struct {
	Subtotal    *decimal.Decimal `json:"subtotal,omitempty"`
	TaxableBase decimal.Decimal  `json:"taxable_base"`
	VATPercent  decimal.Decimal  `json:"vat_percent"`
	VATAmount   decimal.Decimal  `json:"vat_amount"`

	VATBreakdown []VATEntry `json:"vat_breakdown"` // nunca debería venir vacío

	Discounts          *decimal.Decimal `json:"discounts,omitempty"`
	DiscountsBreakdown []DiscountEntry  `json:"discounts_breakdown,omitempty"`

	Withholding           *decimal.Decimal   `json:"withholding,omitempty"`
	WithholdingPercent    *decimal.Decimal   `json:"withholding_percent,omitempty"`
	WithholdingsBreakdown []WithholdingEntry `json:"withholdings_breakdown,omitempty"`

	Perceptions          *decimal.Decimal  `json:"perceptions,omitempty"`
	PerceptionsBreakdown []PerceptionEntry `json:"perceptions_breakdown,omitempty"`

	OtherTaxes *decimal.Decimal `json:"other_taxes,omitempty"`
	GrandTotal decimal.Decimal  `json:"grand_total"`

	Notes string `json:"notes,omitempty"` // discrepancias detectadas, unidas con " | "
}

// SecondaryTotal segundo total impreso en otra moneda (TOTAL U$S / TOTAL PESOS).
type SecondaryTotal struct {
	Currency Currency         `json:"currency,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	FxRate   *decimal.Decimal `json:"fx_rate,omitempty"`
}

// InvoiceExtraction es el contenedor raíz del resultado de extracción de
// ítems + totales de un documento.
type InvoiceExtraction struct {
	Currency       Currency        `json:"currency"`
	SecondaryTotal *SecondaryTotal `json:"secondary_total,omitempty"`
	Items          []LineItem      `json:"items"`
	Totals         Totals          `json:"totals"`
}
