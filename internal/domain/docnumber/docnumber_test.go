package docnumber_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/extraccion-core/internal/domain/docnumber"
)

func TestNew_SinNumeroFuerzaVacio(t *testing.T) {
	r, err := docnumber.New("FAC-001", false, 0.3, nil)
	require.NoError(t, err)

	assert.False(t, r.HasInvoiceNumber)
	assert.Empty(t, r.InvoiceNumber, "has_invoice_number=false descarta el número que vino")
}

func TestNew_NumeroObligatorioCuandoHay(t *testing.T) {
	_, err := docnumber.New("   ", true, 0.9, nil)
	assert.Error(t, err, "has_invoice_number=true exige número no vacío")
}

func TestNew_ConfianzaFueraDeRango(t *testing.T) {
	_, err := docnumber.New("FAC-001", true, 1.2, nil)
	assert.Error(t, err)

	_, err = docnumber.New("FAC-001", true, -0.1, nil)
	assert.Error(t, err)
}

func TestNew_CasoValido(t *testing.T) {
	md := &docnumber.Metadata{
		EvidenceSnippet: "  Factura Nº FAC-001  ",
		Candidates:      []string{"FAC-001", "FAC-001", "FAC-002"},
		ConfidenceFactors: map[string]float64{
			"keyword_proximity": 0.8,
			"format_match":      1.5, // fuera de rango, se descarta
		},
	}

	r, err := docnumber.New(" FAC-001 ", true, 0.85, md)
	require.NoError(t, err)

	assert.Equal(t, "FAC-001", r.InvoiceNumber)
	assert.Equal(t, 0.85, r.Confidence)
	require.NotNil(t, r.Metadata)
	assert.Equal(t, "Factura Nº FAC-001", r.Metadata.EvidenceSnippet)
	assert.Equal(t, []string{"FAC-001", "FAC-002"}, r.Metadata.Candidates)
	assert.Equal(t, map[string]float64{"keyword_proximity": 0.8}, r.Metadata.ConfidenceFactors)
}
