package extract_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/extraccion-core/internal/application/extract"
	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/internal/domain/invoice"
	"github.com/jhoicas/extraccion-core/pkg/afip"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

func TestInvoicePipeline_FacturaCompleta(t *testing.T) {
	p := extract.NewInvoicePipeline(logger.Nop())

	raw := map[string]any{
		"currency": "ARS",
		"items": []any{
			map[string]any{
				"description": "Tornillos M6",
				"quantity":    10,
				"unit_price":  "5",
				"line_total":  "50",
				"vat_percent": "21",
				// sin vat_amount: se completa con el esperado
			},
			map[string]any{
				"description": "Arandelas",
				"quantity":    "100",
				"unit_price":  "0,50",
				"line_total":  "50",
				"vat_percent": 21,
				"vat_amount":  "10.50",
			},
		},
		"totals": map[string]any{
			"taxable_base": "100",
			"vat_percent":  "21",
			"vat_amount":   "21",
			"grand_total":  "121",
			"vat_breakdown": []any{
				map[string]any{"percent": "21", "taxable_base": "100", "amount": "21"},
			},
		},
	}

	doc, err := p.Run(raw)
	require.NoError(t, err)

	assert.Equal(t, invoice.CurrencyARS, doc.Currency)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "10.50", doc.Items[0].VATAmount.String(), "vat_amount ausente se completa")
	assert.True(t, doc.Items[1].UnitPrice.Equal(decimal.RequireFromString("0.50")),
		"la coma decimal se normaliza")
	assert.Empty(t, doc.Totals.Notes, "la factura cuadra en los tres niveles")
}

func TestInvoicePipeline_DiscrepanciasQuedanComoNotas(t *testing.T) {
	p := extract.NewInvoicePipeline(logger.Nop())

	raw := map[string]any{
		"items": []any{
			map[string]any{
				"description": "Servicio",
				"quantity":    1,
				"unit_price":  "60",
				"line_total":  "60",
				"vat_percent": "21",
			},
		},
		"totals": map[string]any{
			"taxable_base":  "100",
			"vat_percent":   "21",
			"vat_amount":    "21",
			"grand_total":   "121",
			"vat_breakdown": []any{},
		},
	}

	doc, err := p.Run(raw)
	require.NoError(t, err, "las discrepancias aritméticas nunca son error")

	assert.Contains(t, doc.Totals.Notes, "vat_breakdown está vacío")
	assert.Contains(t, doc.Totals.Notes, "sum(items.line_total)=60.00 ≠ taxable_base=100.00")
}

func TestInvoicePipeline_FallosEstructurales(t *testing.T) {
	p := extract.NewInvoicePipeline(logger.Nop())

	_, err := p.Run(map[string]any{"items": []any{}})
	require.Error(t, err, "totals es obligatorio")
	var coreErr *domain.CoreError
	require.ErrorAs(t, err, &coreErr)
	assert.Equal(t, 422, coreErr.StatusCode)

	_, err = p.Run(map[string]any{
		"items": []any{map[string]any{"quantity": 1, "unit_price": "5", "line_total": "5"}},
		"totals": map[string]any{
			"taxable_base": "5", "vat_percent": "21", "vat_amount": "1.05", "grand_total": "6.05",
		},
	})
	assert.Error(t, err, "un ítem sin description es fallo duro")

	_, err = p.Run(map[string]any{
		"items": []any{map[string]any{
			"description": "x", "quantity": "doce", "unit_price": "5", "line_total": "5",
		}},
		"totals": map[string]any{
			"taxable_base": "5", "vat_percent": "21", "vat_amount": "1.05", "grand_total": "6.05",
		},
	})
	assert.Error(t, err, "una cantidad no numérica es fallo duro")
}

func TestMetadataPipeline_NormalizaEnOrden(t *testing.T) {
	p := extract.NewMetadataPipeline(logger.Nop())

	out, err := p.Run(map[string]any{
		"document_type":   "Factura A",
		"document_code":   "COD. 8",
		"document_number": "0001 00001234",
		"cae":             "CAE N° 74.1234.5678.9012",
		"cae_due_date":    "10/02/2024",
	})
	require.NoError(t, err)

	assert.Equal(t, "A", out.DocumentType)
	assert.Equal(t, "08", out.DocumentCode)
	assert.Equal(t, "0001-00001234", out.DocumentNumber)
	assert.Equal(t, afip.VoucherCreditNote, out.VoucherType,
		"sin texto de tipo, el código 08 ya normalizado decide")
	assert.Equal(t, "74123456789012", out.CAE)
	assert.Equal(t, "2024-02-10", out.CAEDueDate)
}

func TestPartyPipeline_NormalizaYVerifica(t *testing.T) {
	p := extract.NewPartyPipeline(logger.Nop())

	out, err := p.Run(map[string]any{
		"invoice": map[string]any{
			"invoice_date":   "25/12/2023",
			"invoice_number": "0001-00001234",
		},
		"supplier": map[string]any{
			"name":   "ACME S.A.",
			"tax_id": "20-26756539-3",
			"contact": map[string]any{
				"email":   "vibrahotels.com - maritimo@vibrahotels.com",
				"website": "acme.com",
			},
		},
		"detected_tax_ids": []any{
			map[string]any{"value": "20267565393", "tax_id_type": "CUIT", "context_label": "Supplier"},
			map[string]any{"value": "B12345678", "tax_id_type": "CIF"},
			map[string]any{"value": ""},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "25-12-2023", out.Invoice.InvoiceDate)
	assert.Equal(t, "maritimo@vibrahotels.com", out.Supplier.Contact.Email)
	assert.Equal(t, "https://acme.com", out.Supplier.Contact.Website)
	assert.Equal(t, "N/A", out.Supplier.Contact.Phone)
	assert.Equal(t, "N/A", out.Client.Name, "cliente ausente queda todo en N/A")

	require.Len(t, out.DetectedTaxIDs, 2, "detecciones sin valor se descartan")
	require.NotNil(t, out.DetectedTaxIDs[0].IsValidChecksum)
	assert.True(t, *out.DetectedTaxIDs[0].IsValidChecksum)
	assert.Nil(t, out.DetectedTaxIDs[1].IsValidChecksum, "el CIF no tiene algoritmo conocido")
}

func TestDocNumberPipeline_ReglasCruzadas(t *testing.T) {
	p := extract.NewDocNumberPipeline(logger.Nop())

	out, err := p.Run(map[string]any{
		"invoice_number":     "FAC-001",
		"has_invoice_number": true,
		"confidence":         0.9,
		"metadata": map[string]any{
			"evidence_snippet": "Factura Nº FAC-001",
			"candidates":       []any{"FAC-001"},
			"confidence_factors": map[string]any{
				"keyword_proximity": 0.8,
				"comentario":        "no numérico", // se descarta en silencio
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "FAC-001", out.InvoiceNumber)
	require.NotNil(t, out.Metadata)
	assert.Equal(t, map[string]float64{"keyword_proximity": 0.8}, out.Metadata.ConfidenceFactors)

	_, err = p.Run(map[string]any{"invoice_number": "", "has_invoice_number": true})
	assert.Error(t, err)

	out, err = p.Run(map[string]any{"invoice_number": "FAC-001", "has_invoice_number": false})
	require.NoError(t, err)
	assert.Empty(t, out.InvoiceNumber)
	assert.Equal(t, 0.0, out.Confidence, "confianza ausente se asume 0")
}
