package extract

import (
	"github.com/jhoicas/extraccion-core/internal/domain/docnumber"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// DocNumberPipeline decodifica la respuesta de detección del número de factura.
type DocNumberPipeline struct {
	log *logger.Logger
}

// NewDocNumberPipeline construye el pipeline.
func NewDocNumberPipeline(log *logger.Logger) *DocNumberPipeline {
	return &DocNumberPipeline{log: log}
}

// Run aplica las reglas cruzadas del envelope (número obligatorio cuando
// has_invoice_number=true). La confianza ausente se asume 0.
func (p *DocNumberPipeline) Run(raw map[string]any) (*docnumber.Result, error) {
	has, _ := getBool(raw, "has_invoice_number")

	confidence := 0.0
	if f, err := getFloat(raw, "confidence"); err != nil {
		return nil, err
	} else if f != nil {
		confidence = *f
	}

	var md *docnumber.Metadata
	if mm := getMap(raw, "metadata"); mm != nil {
		md = &docnumber.Metadata{
			EvidenceSnippet: getString(mm, "evidence_snippet"),
			Pattern:         getString(mm, "pattern"),
			Candidates:      getStringSlice(mm, "candidates"),
		}
		if factors := getMap(mm, "confidence_factors"); factors != nil {
			md.ConfidenceFactors = make(map[string]float64, len(factors))
			for k := range factors {
				// valores no numéricos se descartan en silencio
				if f, err := getFloat(factors, k); err == nil && f != nil {
					md.ConfidenceFactors[k] = *f
				}
			}
		}
	}

	result, err := docnumber.New(getString(raw, "invoice_number"), has, confidence, md)
	if err != nil {
		return nil, err
	}
	if p.log != nil {
		p.log.Debug().
			Bool("has_invoice_number", result.HasInvoiceNumber).
			Float64("confidence", result.Confidence).
			Msg("número de factura validado")
	}
	return &result, nil
}
