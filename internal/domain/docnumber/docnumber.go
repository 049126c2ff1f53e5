// Package docnumber modela el resultado de la detección del número de factura
// en el texto del documento, con su evidencia y desglose de confianza.
package docnumber

import (
	"strings"

	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

// Metadata evidencia de la detección.
type Metadata struct {
	EvidenceSnippet   string             `json:"evidence_snippet"`
	Pattern           string             `json:"pattern,omitempty"` // keyword o regex que disparó la detección
	Candidates        []string           `json:"candidates"`
	ConfidenceFactors map[string]float64 `json:"confidence_factors"`
}

// Normalized recorta la evidencia, deduplica candidatos preservando orden y
// descarta factores de confianza fuera de [0, 1].
func (m Metadata) Normalized() Metadata {
	m.EvidenceSnippet = strings.TrimSpace(m.EvidenceSnippet)
	m.Pattern = strings.TrimSpace(m.Pattern)
	m.Candidates = normalize.DedupeOrdered(m.Candidates, 0)
	factors := make(map[string]float64, len(m.ConfidenceFactors))
	for k, v := range m.ConfidenceFactors {
		if v >= 0 && v <= 1 {
			factors[k] = v
		}
	}
	m.ConfidenceFactors = factors
	return m
}

// Result respuesta de la detección del número de factura.
type Result struct {
	InvoiceNumber    string    `json:"invoice_number,omitempty"` // vacío si no se encontró
	HasInvoiceNumber bool      `json:"has_invoice_number"`
	Confidence       float64   `json:"confidence"` // ∈ [0, 1]
	Metadata         *Metadata `json:"metadata,omitempty"`
}

// New construye el resultado aplicando las reglas cruzadas:
//   - has_invoice_number=false fuerza invoice_number vacío
//   - has_invoice_number=true con número vacío es un fallo duro
//   - confidence fuera de [0, 1] es un fallo duro
func New(invoiceNumber string, hasInvoiceNumber bool, confidence float64, md *Metadata) (Result, error) {
	number := strings.TrimSpace(invoiceNumber)

	if confidence < 0 || confidence > 1 {
		return Result{}, domain.NewFieldError("confidence", "debe estar en [0, 1]")
	}
	if !hasInvoiceNumber {
		number = ""
	}
	if hasInvoiceNumber && number == "" {
		return Result{}, domain.NewFieldError("invoice_number",
			"debe venir no vacío cuando has_invoice_number=true")
	}

	if md != nil {
		normalized := md.Normalized()
		md = &normalized
	}
	return Result{
		InvoiceNumber:    number,
		HasInvoiceNumber: hasInvoiceNumber,
		Confidence:       confidence,
		Metadata:         md,
	}, nil
}
