package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

func TestToDecimal_StringConComa(t *testing.T) {
	d, ok, err := normalize.ToDecimal("7,50")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("7.50")), "la coma decimal debe normalizarse a punto")
}

func TestToDecimal_FloatSinArrastreBinario(t *testing.T) {
	d, ok, err := normalize.ToDecimal(1.1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.1", d.String(), "el float debe convertirse por su representación decimal más corta")
}

func TestToDecimal_NilYVacioSonAusentes(t *testing.T) {
	_, ok, err := normalize.ToDecimal(nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = normalize.ToDecimal("   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToDecimal_TiposNumericos(t *testing.T) {
	d, ok, err := normalize.ToDecimal(42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "42", d.String())

	d, ok, err = normalize.ToDecimal(json.Number("21.5"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "21.5", d.String())

	passthrough := decimal.RequireFromString("99.99")
	d, ok, err = normalize.ToDecimal(passthrough)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, d.Equal(passthrough))
}

func TestToDecimal_FormatoInvalido(t *testing.T) {
	_, _, err := normalize.ToDecimal("doce pesos")
	require.Error(t, err)
	assert.ErrorIs(t, err, normalize.ErrInvalidNumericFormat)

	_, _, err = normalize.ToDecimal(struct{}{})
	require.Error(t, err)
	assert.ErrorIs(t, err, normalize.ErrInvalidNumericFormat)
}

func TestRound2_MitadesLejosDeCero(t *testing.T) {
	assert.Equal(t, "2.68", normalize.Round2(decimal.RequireFromString("2.675")).String())
	assert.Equal(t, "-2.68", normalize.Round2(decimal.RequireFromString("-2.675")).String())
	assert.Equal(t, "10.50", normalize.Round2(decimal.RequireFromString("10.5")).String(),
		"el redondeo reescala a 2 decimales aunque no haya nada que redondear")
}
