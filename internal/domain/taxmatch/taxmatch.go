// Package taxmatch modela la selección batch de impuestos del catálogo contra
// los porcentajes primarios extraídos de un documento. Cada porcentaje pedido
// produce exactamente una entrada ok|error (preservando orden y multiplicidad)
// y el estado global del batch se deriva del contenido, nunca se fija a mano.
package taxmatch

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/extraccion-core/internal/domain"
)

// TypeTaxUse uso del impuesto en el catálogo.
type TypeTaxUse string

const (
	TaxUseSale     TypeTaxUse = "sale"
	TaxUsePurchase TypeTaxUse = "purchase"
	TaxUseNone     TypeTaxUse = "none"
)

// EntryStatus discriminador de cada entrada del batch.
type EntryStatus string

const (
	EntryOK    EntryStatus = "ok"
	EntryError EntryStatus = "error"
)

// GlobalStatus estado agregado del batch, siempre derivado.
type GlobalStatus string

const (
	StatusOK           GlobalStatus = "ok"
	StatusError        GlobalStatus = "error"
	StatusPartialError GlobalStatus = "partial_error"
)

// ErrorCode conjunto cerrado de códigos de error por entrada.
type ErrorCode string

const (
	CodePrimaryTaxNotAvailable ErrorCode = "PRIMARY_TAX_NOT_AVAILABLE"
	CodeNoCandidate            ErrorCode = "NO_CANDIDATE"
	CodeAmbiguous              ErrorCode = "AMBIGUOUS"
	CodeInvalidInput           ErrorCode = "INVALID_INPUT"
)

// TaxCandidate candidato de impuesto tal como viene del catálogo validado.
type TaxCandidate struct {
	ID         *int64     `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Amount     *float64   `json:"amount,omitempty"` // porcentaje, ej. 21.0
	TypeTaxUse TypeTaxUse `json:"type_tax_use,omitempty"`
}

// ResultPayload payload cuando hubo match para un primary_amount dado.
type ResultPayload struct {
	BestTax      TaxCandidate   `json:"best_tax"`
	Confidence   float64        `json:"confidence"` // ∈ [0, 1]
	Reason       string         `json:"reason"`
	Alternatives []TaxCandidate `json:"alternatives"` // máximo 3
}

// ErrorPayload detalle de error para un primary_amount sin candidato válido.
type ErrorPayload struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// ResultEntry entrada del batch: exactamente uno de Result/Error está
// presente según Status. Se construye solo vía NewOkEntry/NewErrorEntry.
type ResultEntry struct {
	Status        EntryStatus    `json:"status"`
	PrimaryAmount *float64       `json:"primary_amount"` // nil cuando no hubo primary_tax
	Result        *ResultPayload `json:"result,omitempty"`
	Error         *ErrorPayload  `json:"error,omitempty"`
}

// NewOkEntry construye una entrada ok. Confidence fuera de [0,1] es un fallo
// duro; alternatives se trunca a 3.
func NewOkEntry(primaryAmount *float64, payload ResultPayload) (ResultEntry, error) {
	if payload.Confidence < 0 || payload.Confidence > 1 {
		return ResultEntry{}, domain.NewFieldError("confidence", fmt.Sprintf("debe estar en [0, 1], vino %v", payload.Confidence))
	}
	if len(payload.Alternatives) > 3 {
		payload.Alternatives = payload.Alternatives[:3]
	}
	return ResultEntry{Status: EntryOK, PrimaryAmount: primaryAmount, Result: &payload}, nil
}

// NewErrorEntry construye una entrada error.
func NewErrorEntry(primaryAmount *float64, payload ErrorPayload) ResultEntry {
	if payload.Details == nil {
		payload.Details = map[string]any{}
	}
	return ResultEntry{Status: EntryError, PrimaryAmount: primaryAmount, Error: &payload}
}

// Meta información acompañante del batch.
type Meta struct {
	ValidatedUniqueAmounts []float64 `json:"validated_unique_amounts"`
	Notes                  string    `json:"notes,omitempty"`
}

// BatchResponse respuesta batch de selección de impuestos.
type BatchResponse struct {
	Status  GlobalStatus  `json:"status"`
	Results []ResultEntry `json:"results"`
	Meta    Meta          `json:"meta"`
}

// NewBatchResponse arma la respuesta derivando el estado global:
// ok ⟺ todas las entradas ok; error ⟺ todas error (o batch vacío);
// partial_error en cualquier mezcla.
func NewBatchResponse(results []ResultEntry, meta Meta) BatchResponse {
	return BatchResponse{Status: deriveStatus(results), Results: results, Meta: meta}
}

func deriveStatus(results []ResultEntry) GlobalStatus {
	if len(results) == 0 {
		return StatusError
	}
	var oks, errs int
	for _, r := range results {
		if r.Status == EntryOK {
			oks++
		} else {
			errs++
		}
	}
	switch {
	case errs == 0:
		return StatusOK
	case oks == 0:
		return StatusError
	default:
		return StatusPartialError
	}
}

// amountTolerance margen para considerar que un candidato coincide con el
// porcentaje primario (los catálogos guardan 21.0, los documentos 21).
const amountTolerance = 0.01

// Match resuelve un porcentaje primario contra los candidatos del catálogo.
// Reglas: sin candidatos → NO_CANDIDATE; primario nil → PRIMARY_TAX_NOT_AVAILABLE;
// un único candidato con el mismo porcentaje → ok con confianza 1.0; varios con
// el mismo porcentaje → ok con el primero y el resto como alternativas (hasta 3,
// confianza degradada); ninguno coincide → NO_CANDIDATE con el detalle.
func Match(candidates []TaxCandidate, primaryAmount *float64) ResultEntry {
	if primaryAmount == nil {
		return NewErrorEntry(nil, ErrorPayload{
			Code:    CodePrimaryTaxNotAvailable,
			Message: "no hubo primary_tax en el documento",
		})
	}
	if len(candidates) == 0 {
		return NewErrorEntry(primaryAmount, ErrorPayload{
			Code:    CodeNoCandidate,
			Message: "el catálogo de impuestos está vacío",
		})
	}

	var matches []TaxCandidate
	for _, c := range candidates {
		if c.Amount != nil && math.Abs(*c.Amount-*primaryAmount) <= amountTolerance {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return NewErrorEntry(primaryAmount, ErrorPayload{
			Code:    CodeNoCandidate,
			Message: fmt.Sprintf("ningún candidato coincide con %v%%", *primaryAmount),
			Details: map[string]any{"primary_amount": *primaryAmount, "candidates": len(candidates)},
		})
	}

	confidence := 1.0
	reason := fmt.Sprintf("coincidencia exacta de porcentaje %v%%", *primaryAmount)
	if len(matches) > 1 {
		confidence = 1.0 / float64(len(matches))
		reason = fmt.Sprintf("%d candidatos con porcentaje %v%%, se eligió el primero", len(matches), *primaryAmount)
	}
	entry, err := NewOkEntry(primaryAmount, ResultPayload{
		BestTax:      matches[0],
		Confidence:   confidence,
		Reason:       reason,
		Alternatives: matches[1:],
	})
	if err != nil {
		// confidence siempre cae en [0,1] por construcción
		return NewErrorEntry(primaryAmount, ErrorPayload{Code: CodeInvalidInput, Message: err.Error()})
	}
	return entry
}

// MatchBatch produce una entrada por cada porcentaje pedido, en el mismo
// orden y con la misma multiplicidad, y deriva el estado global.
func MatchBatch(candidates []TaxCandidate, primaryAmounts []*float64) BatchResponse {
	results := make([]ResultEntry, 0, len(primaryAmounts))
	for _, p := range primaryAmounts {
		results = append(results, Match(candidates, p))
	}
	return NewBatchResponse(results, Meta{ValidatedUniqueAmounts: uniqueAmounts(candidates)})
}

func uniqueAmounts(candidates []TaxCandidate) []float64 {
	seen := make(map[float64]struct{}, len(candidates))
	out := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c.Amount == nil {
			continue
		}
		if _, dup := seen[*c.Amount]; dup {
			continue
		}
		seen[*c.Amount] = struct{}{}
		out = append(out, *c.Amount)
	}
	sort.Float64s(out)
	return out
}
