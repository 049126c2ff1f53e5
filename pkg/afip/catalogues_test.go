package afip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/extraccion-core/pkg/afip"
)

func TestVoucherFromCode(t *testing.T) {
	v, ok := afip.VoucherFromCode("1")
	require.True(t, ok)
	assert.Equal(t, afip.VoucherInvoice, v)

	v, ok = afip.VoucherFromCode("08")
	require.True(t, ok, "los ceros a la izquierda no cambian el código")
	assert.Equal(t, afip.VoucherCreditNote, v)

	v, ok = afip.VoucherFromCode(" 52 ")
	require.True(t, ok)
	assert.Equal(t, afip.VoucherDebitNote, v)

	_, ok = afip.VoucherFromCode("99")
	assert.False(t, ok)
	_, ok = afip.VoucherFromCode("")
	assert.False(t, ok)
}

func TestIsDocumentLetter(t *testing.T) {
	for _, l := range []string{"A", "B", "C", "M", "E", "T"} {
		assert.True(t, afip.IsDocumentLetter(l), "letra %s", l)
	}
	assert.False(t, afip.IsDocumentLetter("X"))
	assert.False(t, afip.IsDocumentLetter("a"), "la comparación es sobre mayúsculas")
}
