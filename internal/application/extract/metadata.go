package extract

import (
	"github.com/jhoicas/extraccion-core/internal/domain/metadata"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// MetadataPipeline normaliza los metadatos AFIP de un comprobante.
type MetadataPipeline struct {
	log *logger.Logger
}

// NewMetadataPipeline construye el pipeline.
func NewMetadataPipeline(log *logger.Logger) *MetadataPipeline {
	return &MetadataPipeline{log: log}
}

// Run procesa los campos en orden fijo. El orden importa: document_code se
// normaliza ANTES que voucher_type porque el tipo de comprobante usa el
// código ya validado como cadena de respaldo cuando el texto es ambiguo.
func (p *MetadataPipeline) Run(raw map[string]any) (*metadata.DocumentMetadata, error) {
	out := metadata.DocumentMetadata{}

	if v := getString(raw, "document_type"); v != "" {
		out.DocumentType = metadata.ExtractDocLetter(v)
	}

	if v := getString(raw, "document_code"); v != "" {
		if code := metadata.ExtractDocCode(v); code != "" {
			out.DocumentCode = code
		} else {
			out.DocumentCode = v
		}
	}

	if v := getString(raw, "document_number"); v != "" {
		out.DocumentNumber = metadata.NormalizeDocNumber(v)
	}

	// voucher_type consulta document_code, ya normalizado arriba.
	out.VoucherType = metadata.InferVoucherType(getString(raw, "voucher_type"), out.DocumentCode)

	if v := getString(raw, "cae"); v != "" {
		out.CAE = metadata.NormalizeCAE(v)
	}
	if v := getString(raw, "cae_due_date"); v != "" {
		out.CAEDueDate = metadata.NormalizeCAEDueDate(v)
	}

	out.InvID = getInt64(raw, "inv_id")
	out.PurchaseOrderNumber = getString(raw, "purchase_order_number")

	if p.log != nil {
		p.log.Debug().
			Str("voucher_type", string(out.VoucherType)).
			Str("document_number", out.DocumentNumber).
			Msg("metadatos de comprobante normalizados")
	}
	return &out, nil
}
