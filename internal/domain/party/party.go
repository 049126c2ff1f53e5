// Package party modela la identificación de CLIENT y SUPPLIER de una factura
// junto con todos los identificadores fiscales detectados en el texto del
// documento. Los campos de texto sin valor usan el centinela "N/A".
package party

import (
	"strings"

	"github.com/jhoicas/extraccion-core/pkg/afip"
	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

// ContextLabel rol inferido de la zona del documento donde apareció un
// identificador fiscal.
type ContextLabel string

const (
	ContextClient   ContextLabel = "Client"
	ContextSupplier ContextLabel = "Supplier"
	ContextHeader   ContextLabel = "Header"
	ContextFooter   ContextLabel = "Footer"
	ContextUnknown  ContextLabel = "Unknown"
)

// ParseContextLabel coacciona un string libre al enum; no reconocido → Unknown.
func ParseContextLabel(s string) ContextLabel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return ContextClient
	case "supplier":
		return ContextSupplier
	case "header":
		return ContextHeader
	case "footer":
		return ContextFooter
	default:
		return ContextUnknown
	}
}

// Address dirección postal normalizada de una parte.
type Address struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	CountryCode string `json:"country_code"`
	PostalCode  string `json:"postal_code"`
}

// Normalized devuelve la dirección con blancos → N/A y país en mayúsculas.
func (a Address) Normalized() Address {
	a.Street = normalize.BlankToNA(a.Street)
	a.City = normalize.BlankToNA(a.City)
	a.State = normalize.BlankToNA(a.State)
	a.CountryCode = normalize.BlankToNA(strings.ToUpper(strings.TrimSpace(a.CountryCode)))
	a.PostalCode = normalize.BlankToNA(a.PostalCode)
	return a
}

// Contact datos de contacto de una parte.
type Contact struct {
	Phone   string `json:"phone"`
	Fax     string `json:"fax"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// Normalized limpia placeholders; el correo pasa por la extracción de
// sub-string con forma de e-mail y el sitio web recibe esquema https.
func (c Contact) Normalized() Contact {
	c.Phone = normalize.BlankToNA(c.Phone)
	c.Fax = normalize.BlankToNA(c.Fax)
	if email := normalize.Email(c.Email); email != "" {
		c.Email = email
	} else {
		c.Email = normalize.NA
	}
	if site := normalize.Website(c.Website); site != "" {
		c.Website = site
	} else {
		c.Website = normalize.NA
	}
	return c
}

// Party cliente o proveedor identificado en el documento.
type Party struct {
	Name             string         `json:"name"`
	TaxID            string         `json:"tax_id"`
	TaxIDType        afip.TaxIDType `json:"tax_id_type"`
	Address          Address        `json:"address"`
	Contact          Contact        `json:"contact"`
	RawBlock         string         `json:"raw_block"`
	EvidenceSnippets []string       `json:"evidence_snippets"`
}

// Normalized aplica los normalizadores de campo y limita la evidencia a 3
// recortes por compacidad.
func (p Party) Normalized() Party {
	p.Name = normalize.BlankToNA(p.Name)
	p.TaxID = normalize.BlankToNA(p.TaxID)
	if p.TaxIDType == "" {
		p.TaxIDType = afip.TaxIDUnknown
	}
	p.Address = p.Address.Normalized()
	p.Contact = p.Contact.Normalized()
	p.RawBlock = normalize.BlankToNA(p.RawBlock)
	p.EvidenceSnippets = normalize.DedupeOrdered(p.EvidenceSnippets, 3)
	return p
}

// InvoiceInfo metadatos mínimos de la factura dentro de la extracción de partes.
type InvoiceInfo struct {
	InvoiceDate   string `json:"invoice_date"`
	InvoiceNumber string `json:"invoice_number"`
}

// DetectedTaxID una ocurrencia de identificador fiscal en el texto, etiquetada
// con el rol inferido. IsValidChecksum queda nil cuando el tipo no tiene
// algoritmo de verificación conocido.
type DetectedTaxID struct {
	Value           string         `json:"value"`
	TaxIDType       afip.TaxIDType `json:"tax_id_type"`
	IsValidChecksum *bool          `json:"is_valid_checksum,omitempty"`
	ContextLabel    ContextLabel   `json:"context_label"`
	EvidenceSnippet string         `json:"evidence_snippet"`
}

// Verified devuelve la detección con el flag de checksum calculado según el
// tipo (CUIT módulo 11, NIF letra de control).
func (d DetectedTaxID) Verified() DetectedTaxID {
	d.EvidenceSnippet = normalize.BlankToNA(d.EvidenceSnippet)
	if d.TaxIDType == "" {
		d.TaxIDType = afip.TaxIDUnknown
	}
	if d.ContextLabel == "" {
		d.ContextLabel = ContextUnknown
	}
	d.IsValidChecksum = afip.Checksum(d.Value, d.TaxIDType)
	return d
}

// PartyExtraction raíz del resultado de identificación de partes + metadatos.
type PartyExtraction struct {
	Invoice        InvoiceInfo     `json:"invoice"`
	Client         Party           `json:"client"`
	Supplier       Party           `json:"supplier"`
	DetectedTaxIDs []DetectedTaxID `json:"detected_tax_ids"`
}
