package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

// Tolerancias de conciliación. Las líneas admiten 3 centavos de diferencia en
// el IVA calculado; los totales y el cruce documento-ítems admiten 10.
var (
	tolLine   = decimal.RequireFromString("0.03")
	tolTotals = decimal.RequireFromString("0.10")

	hundred = decimal.NewFromInt(100)
)

// FinalizeLineItem aplica las reglas de línea sobre una copia del ítem:
//  1. calcula vat_amount esperado = round2(line_total * vat_percent / 100)
//  2. si vat_amount no vino (vatProvided=false) lo completa con el esperado
//  3. si vino y difiere más de la tolerancia, CONSERVA el valor provisto
//     (el valor impreso manda) y agrega una nota explicativa
//  4. deriva net_price = round2(line_total / quantity) si falta y quantity ≠ 0
//
// Nunca corrige signos: cantidades y totales negativos pasan intactos.
func FinalizeLineItem(item LineItem, vatProvided bool) LineItem {
	expected := normalize.Round2(item.LineTotal.Mul(item.VATPercent).Div(hundred))

	if !vatProvided {
		item.VATAmount = expected
	} else {
		diff := item.VATAmount.Sub(expected).Abs()
		if diff.GreaterThan(tolLine) {
			note := fmt.Sprintf(
				"IVA línea difiere de esperado: provisto=%s esperado=%s (Δ=%s).",
				item.VATAmount.String(), expected.String(), normalize.Round2(diff).String(),
			)
			item.Notes = appendNote(item.Notes, note)
		}
	}

	if item.NetPrice == nil && !item.Quantity.IsZero() {
		net := normalize.Round2(item.LineTotal.Div(item.Quantity))
		item.NetPrice = &net
	}
	return item
}

// ReconcileTotals redondea todos los montos/porcentajes a 2 decimales y
// valida, con tolerancia, las tres igualdades del bloque de totales:
//
//	Σ vat_breakdown.taxable_base ≈ taxable_base
//	Σ vat_breakdown.amount       ≈ vat_amount
//	grand_total ≈ taxable_base + vat_amount + perceptions + other_taxes
//	              − discounts − withholding
//
// Cada comprobación fallida agrega una nota legible; ninguna lanza error.
// La entrada proviene de extracciones imperfectas y el resultado debe seguir
// siendo utilizable para revisión humana.
func ReconcileTotals(t Totals) Totals {
	var notes []string

	// Redondeo de escalares.
	t.Subtotal = roundOpt(t.Subtotal)
	t.TaxableBase = normalize.Round2(t.TaxableBase)
	t.VATPercent = normalize.Round2(t.VATPercent)
	t.VATAmount = normalize.Round2(t.VATAmount)
	t.Discounts = roundOpt(t.Discounts)
	t.Withholding = roundOpt(t.Withholding)
	t.WithholdingPercent = roundOpt(t.WithholdingPercent)
	t.Perceptions = roundOpt(t.Perceptions)
	t.OtherTaxes = roundOpt(t.OtherTaxes)
	t.GrandTotal = normalize.Round2(t.GrandTotal)

	// Redondeo de los desgloses.
	vbd := make([]VATEntry, len(t.VATBreakdown))
	for i, v := range t.VATBreakdown {
		v.Percent = normalize.Round2(v.Percent)
		v.TaxableBase = normalize.Round2(v.TaxableBase)
		v.Amount = normalize.Round2(v.Amount)
		vbd[i] = v
	}
	t.VATBreakdown = vbd
	t.DiscountsBreakdown = roundDiscounts(t.DiscountsBreakdown)
	t.WithholdingsBreakdown = roundWithholdings(t.WithholdingsBreakdown)
	t.PerceptionsBreakdown = roundPerceptions(t.PerceptionsBreakdown)

	// vat_breakdown vacío: advertencia, no rechazo (extracciones parciales).
	if len(t.VATBreakdown) == 0 {
		notes = append(notes, "ADVERTENCIA: vat_breakdown está vacío, debería tener al menos 1 entrada")
	} else {
		var sumBase, sumAmount decimal.Decimal
		for _, v := range t.VATBreakdown {
			sumBase = sumBase.Add(v.TaxableBase)
			sumAmount = sumAmount.Add(v.Amount)
		}
		if diff := sumBase.Sub(t.TaxableBase).Abs(); diff.GreaterThan(tolTotals) {
			notes = append(notes, fmt.Sprintf(
				"sum(vat_breakdown.taxable_base)=%s ≠ taxable_base=%s (Δ=%s)",
				sumBase.String(), t.TaxableBase.String(), normalize.Round2(diff).String(),
			))
		}
		if diff := sumAmount.Sub(t.VATAmount).Abs(); diff.GreaterThan(tolTotals) {
			notes = append(notes, fmt.Sprintf(
				"sum(vat_breakdown.amount)=%s ≠ vat_amount=%s (Δ=%s)",
				sumAmount.String(), t.VATAmount.String(), normalize.Round2(diff).String(),
			))
		}
	}

	expectedGrand := t.TaxableBase.
		Add(t.VATAmount).
		Add(optOrZero(t.Perceptions)).
		Add(optOrZero(t.OtherTaxes)).
		Sub(optOrZero(t.Discounts)).
		Sub(optOrZero(t.Withholding))
	if diff := t.GrandTotal.Sub(expectedGrand).Abs(); diff.GreaterThan(tolTotals) {
		notes = append(notes, fmt.Sprintf(
			"grand_total=%s ≠ calculado=%s (Δ=%s)",
			t.GrandTotal.String(), normalize.Round2(expectedGrand).String(), normalize.Round2(diff).String(),
		))
	}

	if len(notes) > 0 {
		t.Notes = appendNote(t.Notes, strings.Join(notes, " | "))
	}
	return t
}

// CrossValidate concilia la suma de ítems contra el bloque de totales:
// Σ items.line_total ≈ totals.taxable_base y Σ items.vat_amount ≈
// totals.vat_amount. Las discrepancias se anotan en un Totals NUEVO que
// reemplaza al original (actualización inmutable, no mutación in situ).
// Con items vacío no hay nada que cruzar.
func CrossValidate(doc InvoiceExtraction) InvoiceExtraction {
	if len(doc.Items) == 0 {
		return doc
	}

	var notes []string
	var sumLineTotals, sumVATAmounts decimal.Decimal
	for _, item := range doc.Items {
		sumLineTotals = sumLineTotals.Add(item.LineTotal)
		sumVATAmounts = sumVATAmounts.Add(item.VATAmount)
	}

	if diff := sumLineTotals.Sub(doc.Totals.TaxableBase).Abs(); diff.GreaterThan(tolTotals) {
		notes = append(notes, fmt.Sprintf(
			"sum(items.line_total)=%s ≠ taxable_base=%s (Δ=%s)",
			normalize.Round2(sumLineTotals).String(), doc.Totals.TaxableBase.String(), normalize.Round2(diff).String(),
		))
	}
	if diff := sumVATAmounts.Sub(doc.Totals.VATAmount).Abs(); diff.GreaterThan(tolTotals) {
		notes = append(notes, fmt.Sprintf(
			"sum(items.vat_amount)=%s ≠ vat_amount=%s (Δ=%s)",
			normalize.Round2(sumVATAmounts).String(), doc.Totals.VATAmount.String(), normalize.Round2(diff).String(),
		))
	}

	if len(notes) > 0 {
		updated := doc.Totals
		updated.Notes = appendNote(updated.Notes, strings.Join(notes, " | "))
		doc.Totals = updated
	}
	return doc
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + " | " + note
}

func roundOpt(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := normalize.Round2(*d)
	return &r
}

func optOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func roundDiscounts(in []DiscountEntry) []DiscountEntry {
	out := make([]DiscountEntry, len(in))
	for i, e := range in {
		e.Percent = roundOpt(e.Percent)
		e.Amount = normalize.Round2(e.Amount)
		out[i] = e
	}
	return out
}

func roundWithholdings(in []WithholdingEntry) []WithholdingEntry {
	out := make([]WithholdingEntry, len(in))
	for i, e := range in {
		e.Percent = roundOpt(e.Percent)
		e.Amount = normalize.Round2(e.Amount)
		out[i] = e
	}
	return out
}

func roundPerceptions(in []PerceptionEntry) []PerceptionEntry {
	out := make([]PerceptionEntry, len(in))
	for i, e := range in {
		e.Percent = roundOpt(e.Percent)
		e.Amount = normalize.Round2(e.Amount)
		out[i] = e
	}
	return out
}
