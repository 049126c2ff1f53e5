// Package odoo construye los payloads que consume el conector Odoo a partir
// de los registros ya validados. Renombrado y reempaquetado de campos; la
// única regla dura es la integridad estructural de cada payload.
package odoo

import (
	"strings"

	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

// CompanyType tipo de entidad del partner en Odoo.
type CompanyType string

const (
	CompanyTypeCompany CompanyType = "company"
	CompanyTypePerson  CompanyType = "person"
)

// SupplierCreate datos para dar de alta un proveedor.
type SupplierCreate struct {
	Name        string      `json:"name"`
	VAT         string      `json:"vat"` // identificación fiscal (NIT, CIF, etc.)
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	CompanyType CompanyType `json:"company_type"`
	IsCompany   bool        `json:"is_company"`
	Street      string      `json:"street,omitempty"`
	Zip         string      `json:"zip,omitempty"`
	City        string      `json:"city,omitempty"`
	StateID     *int64      `json:"state_id,omitempty"`
	CountryID   *int64      `json:"country_id,omitempty"`
	Website     string      `json:"website,omitempty"`
}

// Normalize limpia placeholders en los campos de texto, valida el correo y
// antepone esquema al sitio web. company_type vacío se asume company.
func (s SupplierCreate) Normalize() (SupplierCreate, error) {
	s.Name = strings.TrimSpace(s.Name)
	s.VAT = strings.TrimSpace(s.VAT)
	s.Phone = normalize.CleanOptional(s.Phone)
	s.Street = normalize.CleanOptional(s.Street)
	s.Zip = normalize.CleanOptional(s.Zip)
	s.City = normalize.CleanOptional(s.City)
	s.Email = normalize.Email(s.Email)
	s.Website = normalize.Website(s.Website)

	if s.Name == "" {
		return s, domain.NewFieldError("name", "nombre del proveedor requerido")
	}
	if s.VAT == "" {
		return s, domain.NewFieldError("vat", "identificación fiscal requerida")
	}
	switch s.CompanyType {
	case "":
		s.CompanyType = CompanyTypeCompany
	case CompanyTypeCompany, CompanyTypePerson:
	default:
		return s, domain.NewFieldError("company_type", "debe ser 'company' o 'person'")
	}
	s.IsCompany = s.CompanyType == CompanyTypeCompany
	return s, nil
}

// AsOdooPayload arma el payload final del partner. Los campos vacíos se
// omiten; supplier_rank=1 marca al partner como proveedor.
func (s SupplierCreate) AsOdooPayload() map[string]any {
	payload := map[string]any{
		"name":          s.Name,
		"vat":           s.VAT,
		"company_type":  string(s.CompanyType),
		"is_company":    s.IsCompany,
		"supplier_rank": 1,
	}
	putIfSet(payload, "email", s.Email)
	putIfSet(payload, "phone", s.Phone)
	putIfSet(payload, "street", s.Street)
	putIfSet(payload, "zip", s.Zip)
	putIfSet(payload, "city", s.City)
	putIfSet(payload, "website", s.Website)
	if s.StateID != nil {
		payload["state_id"] = *s.StateID
	}
	if s.CountryID != nil {
		payload["country_id"] = *s.CountryID
	}
	return payload
}

func putIfSet(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
