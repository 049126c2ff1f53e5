package taxmatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/extraccion-core/internal/domain/taxmatch"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int64) *int64     { return &i }

func catalogo() []taxmatch.TaxCandidate {
	return []taxmatch.TaxCandidate{
		{ID: iptr(1), Name: "IVA 21%", Amount: fptr(21), TypeTaxUse: taxmatch.TaxUsePurchase},
		{ID: iptr(2), Name: "IVA 10.5%", Amount: fptr(10.5), TypeTaxUse: taxmatch.TaxUsePurchase},
		{ID: iptr(3), Name: "IVA 0%", Amount: fptr(0), TypeTaxUse: taxmatch.TaxUsePurchase},
	}
}

func TestMatch_PrimarioAusente(t *testing.T) {
	entry := taxmatch.Match(catalogo(), nil)

	assert.Equal(t, taxmatch.EntryError, entry.Status)
	assert.Nil(t, entry.PrimaryAmount)
	require.NotNil(t, entry.Error)
	assert.Equal(t, taxmatch.CodePrimaryTaxNotAvailable, entry.Error.Code)
	assert.Nil(t, entry.Result, "una entrada error no lleva payload de resultado")
}

func TestMatch_CatalogoVacio(t *testing.T) {
	entry := taxmatch.Match(nil, fptr(21))

	assert.Equal(t, taxmatch.EntryError, entry.Status)
	require.NotNil(t, entry.Error)
	assert.Equal(t, taxmatch.CodeNoCandidate, entry.Error.Code)
}

func TestMatch_CoincidenciaUnica(t *testing.T) {
	entry := taxmatch.Match(catalogo(), fptr(21))

	assert.Equal(t, taxmatch.EntryOK, entry.Status)
	require.NotNil(t, entry.Result)
	require.NotNil(t, entry.Result.BestTax.ID)
	assert.Equal(t, int64(1), *entry.Result.BestTax.ID)
	assert.Equal(t, 1.0, entry.Result.Confidence)
	assert.Empty(t, entry.Result.Alternatives)
}

func TestMatch_SinCandidatoParaElPorcentaje(t *testing.T) {
	entry := taxmatch.Match(catalogo(), fptr(27))

	assert.Equal(t, taxmatch.EntryError, entry.Status)
	require.NotNil(t, entry.Error)
	assert.Equal(t, taxmatch.CodeNoCandidate, entry.Error.Code)
	assert.Equal(t, 27.0, entry.Error.Details["primary_amount"])
}

func TestMatch_EmpateDegradaConfianza(t *testing.T) {
	cat := append(catalogo(), taxmatch.TaxCandidate{
		ID: iptr(4), Name: "IVA 21% bis", Amount: fptr(21), TypeTaxUse: taxmatch.TaxUseSale,
	})

	entry := taxmatch.Match(cat, fptr(21))

	assert.Equal(t, taxmatch.EntryOK, entry.Status)
	require.NotNil(t, entry.Result)
	assert.Equal(t, int64(1), *entry.Result.BestTax.ID, "gana el primero del catálogo")
	assert.Equal(t, 0.5, entry.Result.Confidence)
	require.Len(t, entry.Result.Alternatives, 1)
	assert.Equal(t, int64(4), *entry.Result.Alternatives[0].ID)
}

func TestNewOkEntry_ConfianzaFueraDeRango(t *testing.T) {
	_, err := taxmatch.NewOkEntry(fptr(21), taxmatch.ResultPayload{Confidence: 1.5})
	assert.Error(t, err)

	_, err = taxmatch.NewOkEntry(fptr(21), taxmatch.ResultPayload{Confidence: -0.1})
	assert.Error(t, err)
}

func TestNewOkEntry_TruncaAlternativas(t *testing.T) {
	alts := []taxmatch.TaxCandidate{{}, {}, {}, {}, {}}
	entry, err := taxmatch.NewOkEntry(fptr(21), taxmatch.ResultPayload{Confidence: 0.2, Alternatives: alts})
	require.NoError(t, err)
	assert.Len(t, entry.Result.Alternatives, 3)
}

func TestMatchBatch_EstadoGlobalDerivado(t *testing.T) {
	cat := catalogo()

	resp := taxmatch.MatchBatch(cat, []*float64{fptr(21), fptr(10.5)})
	assert.Equal(t, taxmatch.StatusOK, resp.Status)

	resp = taxmatch.MatchBatch(cat, []*float64{fptr(21), nil})
	assert.Equal(t, taxmatch.StatusPartialError, resp.Status)

	resp = taxmatch.MatchBatch(cat, []*float64{nil, fptr(99)})
	assert.Equal(t, taxmatch.StatusError, resp.Status)

	resp = taxmatch.MatchBatch(cat, nil)
	assert.Equal(t, taxmatch.StatusError, resp.Status, "un batch vacío es error")
	assert.Empty(t, resp.Results)
}

func TestMatchBatch_OrdenYMultiplicidad(t *testing.T) {
	resp := taxmatch.MatchBatch(catalogo(), []*float64{fptr(21), fptr(21), nil})

	require.Len(t, resp.Results, 3, "una entrada por porcentaje pedido, repetidos incluidos")
	assert.Equal(t, taxmatch.EntryOK, resp.Results[0].Status)
	assert.Equal(t, taxmatch.EntryOK, resp.Results[1].Status)
	assert.Equal(t, taxmatch.EntryError, resp.Results[2].Status)
}

func TestMatchBatch_MetaConPorcentajesUnicos(t *testing.T) {
	cat := append(catalogo(), taxmatch.TaxCandidate{ID: iptr(4), Amount: fptr(21)})

	resp := taxmatch.MatchBatch(cat, nil)

	assert.Equal(t, []float64{0, 10.5, 21}, resp.Meta.ValidatedUniqueAmounts,
		"únicos y ordenados ascendente")
}
