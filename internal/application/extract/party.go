package extract

import (
	"github.com/jhoicas/extraccion-core/internal/domain/party"
	"github.com/jhoicas/extraccion-core/pkg/afip"
	"github.com/jhoicas/extraccion-core/pkg/logger"
	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

// PartyPipeline normaliza la identificación de cliente y proveedor junto con
// los identificadores fiscales detectados en el documento.
type PartyPipeline struct {
	log *logger.Logger
}

// NewPartyPipeline construye el pipeline.
func NewPartyPipeline(log *logger.Logger) *PartyPipeline {
	return &PartyPipeline{log: log}
}

// Run decodifica y normaliza la extracción de partes. La fecha de emisión
// siempre lleva valor (N/A si no se pudo interpretar); las detecciones de
// identificadores calculan su flag de checksum según el tipo.
func (p *PartyPipeline) Run(raw map[string]any) (*party.PartyExtraction, error) {
	out := party.PartyExtraction{}

	if inv := getMap(raw, "invoice"); inv != nil {
		out.Invoice = party.InvoiceInfo{
			InvoiceDate:   normalize.ParseDateMulti(getString(inv, "invoice_date"), normalize.MissingNA),
			InvoiceNumber: normalize.BlankToNA(getString(inv, "invoice_number")),
		}
	} else {
		out.Invoice = party.InvoiceInfo{InvoiceDate: normalize.NA, InvoiceNumber: normalize.NA}
	}

	out.Client = decodeParty(getMap(raw, "client"))
	out.Supplier = decodeParty(getMap(raw, "supplier"))

	for _, rv := range getSlice(raw, "detected_tax_ids") {
		dm, ok := rv.(map[string]any)
		if !ok {
			continue
		}
		det := party.DetectedTaxID{
			Value:           getString(dm, "value"),
			TaxIDType:       afip.ParseTaxIDType(getString(dm, "tax_id_type")),
			ContextLabel:    party.ParseContextLabel(getString(dm, "context_label")),
			EvidenceSnippet: getString(dm, "evidence_snippet"),
		}
		if det.Value == "" {
			continue
		}
		out.DetectedTaxIDs = append(out.DetectedTaxIDs, det.Verified())
	}

	if p.log != nil {
		p.log.Debug().
			Int("detected_tax_ids", len(out.DetectedTaxIDs)).
			Str("supplier", out.Supplier.Name).
			Msg("extracción de partes normalizada")
	}
	return &out, nil
}

func decodeParty(m map[string]any) party.Party {
	pt := party.Party{}
	if m != nil {
		pt.Name = getString(m, "name")
		pt.TaxID = getString(m, "tax_id")
		pt.TaxIDType = afip.ParseTaxIDType(getString(m, "tax_id_type"))
		pt.RawBlock = getString(m, "raw_block")
		pt.EvidenceSnippets = getStringSlice(m, "evidence_snippets")
		if am := getMap(m, "address"); am != nil {
			pt.Address = party.Address{
				Street:      getString(am, "street"),
				City:        getString(am, "city"),
				State:       getString(am, "state"),
				CountryCode: getString(am, "country_code"),
				PostalCode:  getString(am, "postal_code"),
			}
		}
		if cm := getMap(m, "contact"); cm != nil {
			pt.Contact = party.Contact{
				Phone:   getString(cm, "phone"),
				Fax:     getString(cm, "fax"),
				Email:   getString(cm, "email"),
				Website: getString(cm, "website"),
			}
		}
	}
	return pt.Normalized()
}
