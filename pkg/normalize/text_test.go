package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, normalize.IsPlaceholder("N/A"))
	assert.True(t, normalize.IsPlaceholder("  - "))
	assert.True(t, normalize.IsPlaceholder("Sin Correo"))
	assert.True(t, normalize.IsPlaceholder("no aplica"))
	assert.False(t, normalize.IsPlaceholder("ACME S.A."))
}

func TestBlankToNA(t *testing.T) {
	assert.Equal(t, "N/A", normalize.BlankToNA(""))
	assert.Equal(t, "N/A", normalize.BlankToNA("  s/n "))
	assert.Equal(t, "ACME S.A.", normalize.BlankToNA("  ACME S.A. "))
}

func TestCleanOptional(t *testing.T) {
	assert.Equal(t, "", normalize.CleanOptional("n/a"))
	assert.Equal(t, "", normalize.CleanOptional("   "))
	assert.Equal(t, "911234567", normalize.CleanOptional(" 911234567 "))
}

func TestDedupeOrdered_PreservaOrdenYTrunca(t *testing.T) {
	in := []string{" a ", "b", "a", "", "c", "d"}
	assert.Equal(t, []string{"a", "b", "c"}, normalize.DedupeOrdered(in, 3))
	assert.Equal(t, []string{"a", "b", "c", "d"}, normalize.DedupeOrdered(in, 0))
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Credito", normalize.FoldAccents("Crédito"))
	assert.Equal(t, "NOTA DE CREDITO", normalize.FoldAccents("NOTA DE CRÉDITO"))
	assert.Equal(t, "CAMION", normalize.FoldAccents("CAMIÓN"))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "maritimo@vibrahotels.com", normalize.Email("maritimo@vibrahotels.com"))
	assert.Equal(t, "maritimo@vibrahotels.com",
		normalize.Email("vibrahotels.com - maritimo@vibrahotels.com"),
		"debe rescatar el sub-string con forma de correo")
	assert.Equal(t, "", normalize.Email("n/a"))
	assert.Equal(t, "", normalize.Email("sin correo"))
	assert.Equal(t, "", normalize.Email("esto no es un correo"))
}

func TestWebsite(t *testing.T) {
	assert.Equal(t, "https://acme.com", normalize.Website("acme.com"))
	assert.Equal(t, "http://acme.com", normalize.Website("http://acme.com"))
	assert.Equal(t, "", normalize.Website("-"))
}
