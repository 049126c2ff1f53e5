package extract

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/internal/domain/invoice"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// InvoicePipeline decodifica y valida el resultado de extracción de
// ítems + totales de una factura.
type InvoicePipeline struct {
	log *logger.Logger
}

// NewInvoicePipeline construye el pipeline.
func NewInvoicePipeline(log *logger.Logger) *InvoicePipeline {
	return &InvoicePipeline{log: log}
}

// Run ejecuta el pipeline completo en orden fijo: moneda → ítems (cada uno
// con sus reglas de línea) → totales (redondeo + conciliación de desgloses) →
// cruce documento-ítems. Devuelve error solo ante fallos estructurales; las
// discrepancias aritméticas quedan como notas en el registro.
func (p *InvoicePipeline) Run(raw map[string]any) (*invoice.InvoiceExtraction, error) {
	doc := invoice.InvoiceExtraction{
		Currency: invoice.ParseCurrency(getString(raw, "currency")),
	}

	if st := getMap(raw, "secondary_total"); st != nil {
		sec, err := decodeSecondaryTotal(st)
		if err != nil {
			return nil, err
		}
		doc.SecondaryTotal = sec
	}

	rawItems := getSlice(raw, "items")
	doc.Items = make([]invoice.LineItem, 0, len(rawItems))
	for i, rv := range rawItems {
		rm, ok := rv.(map[string]any)
		if !ok {
			return nil, domainError(fmt.Sprintf("items[%d] no es un objeto", i))
		}
		item, err := decodeLineItem(rm)
		if err != nil {
			return nil, err
		}
		doc.Items = append(doc.Items, item)
	}

	totalsMap := getMap(raw, "totals")
	if totalsMap == nil {
		return nil, domainError("totals ausente")
	}
	totals, err := decodeTotals(totalsMap)
	if err != nil {
		return nil, err
	}
	doc.Totals = invoice.ReconcileTotals(totals)

	doc = invoice.CrossValidate(doc)

	if p.log != nil && doc.Totals.Notes != "" {
		p.log.Warn().
			Int("items", len(doc.Items)).
			Str("notes", doc.Totals.Notes).
			Msg("extracción de factura con discrepancias")
	}
	return &doc, nil
}

func decodeLineItem(m map[string]any) (invoice.LineItem, error) {
	var zero invoice.LineItem

	description := getString(m, "description")
	if description == "" {
		return zero, domainError("line item sin description")
	}

	quantity, err := requireDecimal(m, "quantity")
	if err != nil {
		return zero, err
	}
	unitPrice, err := requireDecimal(m, "unit_price")
	if err != nil {
		return zero, err
	}
	lineTotal, err := requireDecimal(m, "line_total")
	if err != nil {
		return zero, err
	}

	// vat_percent ausente se asume 0 (exento); vat_amount ausente se completa
	// con el esperado dentro de FinalizeLineItem.
	vatPercent, _, err := getDecimal(m, "vat_percent")
	if err != nil {
		return zero, err
	}
	vatAmount, vatProvided, err := getDecimal(m, "vat_amount")
	if err != nil {
		return zero, err
	}

	discountPercent, err := optDecimal(m, "discount_percent")
	if err != nil {
		return zero, err
	}
	discountAmount, err := optDecimal(m, "discount_amount")
	if err != nil {
		return zero, err
	}
	netPrice, err := optDecimal(m, "net_price")
	if err != nil {
		return zero, err
	}
	weightKg, err := optDecimal(m, "weight_kg")
	if err != nil {
		return zero, err
	}

	item := invoice.LineItem{
		Date:            getString(m, "date"),
		DeliveryCode:    getString(m, "delivery_code"),
		ProductCode:     getString(m, "product_code"),
		Description:     description,
		Quantity:        quantity,
		Unit:            getString(m, "unit"),
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		NetPrice:        netPrice,
		LineTotal:       lineTotal,
		VATPercent:      vatPercent,
		VATAmount:       vatAmount,
		VATLabel:        getString(m, "vat_label"),
		TaxID:           getInt64(m, "tax_id"),
		Measurements:    getString(m, "measurements"),
		Color:           getString(m, "color"),
		WeightKg:        weightKg,
		Notes:           getString(m, "notes"),
	}
	return invoice.FinalizeLineItem(item, vatProvided), nil
}

func decodeTotals(m map[string]any) (invoice.Totals, error) {
	var zero invoice.Totals

	taxableBase, err := requireDecimal(m, "taxable_base")
	if err != nil {
		return zero, err
	}
	vatPercent, err := requireDecimal(m, "vat_percent")
	if err != nil {
		return zero, err
	}
	vatAmount, err := requireDecimal(m, "vat_amount")
	if err != nil {
		return zero, err
	}
	grandTotal, err := requireDecimal(m, "grand_total")
	if err != nil {
		return zero, err
	}

	subtotal, err := optDecimal(m, "subtotal")
	if err != nil {
		return zero, err
	}
	discounts, err := optDecimal(m, "discounts")
	if err != nil {
		return zero, err
	}
	withholding, err := optDecimal(m, "withholding")
	if err != nil {
		return zero, err
	}
	withholdingPercent, err := optDecimal(m, "withholding_percent")
	if err != nil {
		return zero, err
	}
	perceptions, err := optDecimal(m, "perceptions")
	if err != nil {
		return zero, err
	}
	otherTaxes, err := optDecimal(m, "other_taxes")
	if err != nil {
		return zero, err
	}

	t := invoice.Totals{
		Subtotal:           subtotal,
		TaxableBase:        taxableBase,
		VATPercent:         vatPercent,
		VATAmount:          vatAmount,
		Discounts:          discounts,
		Withholding:        withholding,
		WithholdingPercent: withholdingPercent,
		Perceptions:        perceptions,
		OtherTaxes:         otherTaxes,
		GrandTotal:         grandTotal,
		Notes:              getString(m, "notes"),
	}

	for i, rv := range getSlice(m, "vat_breakdown") {
		em, ok := rv.(map[string]any)
		if !ok {
			return zero, domainError(fmt.Sprintf("vat_breakdown[%d] no es un objeto", i))
		}
		percent, err := requireDecimal(em, "percent")
		if err != nil {
			return zero, err
		}
		base, err := requireDecimal(em, "taxable_base")
		if err != nil {
			return zero, err
		}
		amount, err := requireDecimal(em, "amount")
		if err != nil {
			return zero, err
		}
		t.VATBreakdown = append(t.VATBreakdown, invoice.VATEntry{
			Percent: percent, TaxableBase: base, Amount: amount,
		})
	}

	for _, rv := range getSlice(m, "discounts_breakdown") {
		if em, ok := rv.(map[string]any); ok {
			label, percent, amount, err := decodeLabeledEntry(em)
			if err != nil {
				return zero, err
			}
			t.DiscountsBreakdown = append(t.DiscountsBreakdown, invoice.DiscountEntry{
				Label: label, Percent: percent, Amount: amount,
			})
		}
	}
	for _, rv := range getSlice(m, "withholdings_breakdown") {
		if em, ok := rv.(map[string]any); ok {
			label, percent, amount, err := decodeLabeledEntry(em)
			if err != nil {
				return zero, err
			}
			t.WithholdingsBreakdown = append(t.WithholdingsBreakdown, invoice.WithholdingEntry{
				Label: label, Percent: percent, Amount: amount,
			})
		}
	}
	for _, rv := range getSlice(m, "perceptions_breakdown") {
		if em, ok := rv.(map[string]any); ok {
			label, percent, amount, err := decodeLabeledEntry(em)
			if err != nil {
				return zero, err
			}
			t.PerceptionsBreakdown = append(t.PerceptionsBreakdown, invoice.PerceptionEntry{
				Label: label, Percent: percent, Amount: amount,
			})
		}
	}
	return t, nil
}

// decodeLabeledEntry decodifica las entradas {label, percent?, amount} de los
// desgloses de descuentos, retenciones y percepciones. Los tres guardan el
// monto en magnitud positiva; la dirección la pone la fórmula del total.
func decodeLabeledEntry(m map[string]any) (string, *decimal.Decimal, decimal.Decimal, error) {
	label := getString(m, "label")
	percent, err := optDecimal(m, "percent")
	if err != nil {
		return "", nil, decimal.Decimal{}, err
	}
	amount, err := requireDecimal(m, "amount")
	if err != nil {
		return "", nil, decimal.Decimal{}, err
	}
	return label, percent, amount, nil
}

func decodeSecondaryTotal(m map[string]any) (*invoice.SecondaryTotal, error) {
	amount, err := optDecimal(m, "amount")
	if err != nil {
		return nil, err
	}
	fxRate, err := optDecimal(m, "fx_rate")
	if err != nil {
		return nil, err
	}
	return &invoice.SecondaryTotal{
		Currency: invoice.ParseCurrency(getString(m, "currency")),
		Amount:   amount,
		FxRate:   fxRate,
	}, nil
}

func domainError(detail string) error {
	return domain.NewInvoiceParsingError(detail)
}
