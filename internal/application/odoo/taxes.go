package odoo

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/extraccion-core/internal/domain/taxmatch"
)

// ResponseTax fila del catálogo de impuestos tal como la devuelve Odoo
// (account.tax). Es la entrada del emparejador de impuestos.
type ResponseTax struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	TypeTaxUse  string          `json:"type_tax_use"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
}

// AsCandidate convierte la fila en un candidato para el emparejador.
func (t ResponseTax) AsCandidate() taxmatch.TaxCandidate {
	id := t.ID
	amount := t.Amount.InexactFloat64()
	return taxmatch.TaxCandidate{
		ID:         &id,
		Name:       t.Name,
		Amount:     &amount,
		TypeTaxUse: taxmatch.TypeTaxUse(t.TypeTaxUse),
	}
}

// Candidates convierte el catálogo completo, descartando filas inactivas.
func Candidates(rows []ResponseTax) []taxmatch.TaxCandidate {
	out := make([]taxmatch.TaxCandidate, 0, len(rows))
	for _, r := range rows {
		if !r.Active {
			continue
		}
		out = append(out, r.AsCandidate())
	}
	return out
}
