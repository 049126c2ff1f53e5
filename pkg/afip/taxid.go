package afip

import (
	"fmt"
	"strings"
	"unicode"
)

// TaxIDType es el tipo de identificador fiscal detectado en el documento.
type TaxIDType string

const (
	TaxIDNIF     TaxIDType = "NIF"
	TaxIDNIE     TaxIDType = "NIE"
	TaxIDCIF     TaxIDType = "CIF"
	TaxIDVAT     TaxIDType = "VAT"
	TaxIDCUIT    TaxIDType = "CUIT"
	TaxIDUnknown TaxIDType = "UNKNOWN"
)

// ParseTaxIDType coacciona un string libre al enum; valores no reconocidos
// quedan como UNKNOWN.
func ParseTaxIDType(s string) TaxIDType {
	switch TaxIDType(strings.ToUpper(strings.TrimSpace(s))) {
	case TaxIDNIF, TaxIDNIE, TaxIDCIF, TaxIDVAT, TaxIDCUIT:
		return TaxIDType(strings.ToUpper(strings.TrimSpace(s)))
	default:
		return TaxIDUnknown
	}
}

// pesos para el dígito verificador del CUIT (módulo 11, AFIP). Se aplican a
// los 10 primeros dígitos, de izquierda a derecha.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidateCUIT valida el dígito verificador de un CUIT/CUIL de 11 dígitos.
// Acepta formatos con guiones o puntos: "20-26756539-3", "20267565393".
func ValidateCUIT(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 11 {
		return fmt.Errorf("afip: CUIT debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * cuitWeights[i]
	}
	dv := 11 - sum%11
	switch dv {
	case 11:
		dv = 0
	case 10:
		dv = 9
	}
	if byte('0'+dv) != digits[10] {
		return fmt.Errorf("afip: dígito verificador de CUIT inválido (esperado %d)", dv)
	}
	return nil
}

// letras de control del NIF español, indexadas por (número módulo 23).
const nifControlLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// ValidateNIF valida la letra de control de un NIF español (8 dígitos + letra).
func ValidateNIF(taxID string) error {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(taxID), "-", ""))
	if len(s) != 9 {
		return fmt.Errorf("afip: NIF debe tener 9 caracteres, se encontraron %d", len(s))
	}
	var n int
	for _, r := range s[:8] {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("afip: NIF debe comenzar con 8 dígitos")
		}
		n = n*10 + int(r-'0')
	}
	if expected := nifControlLetters[n%23]; s[8] != expected {
		return fmt.Errorf("afip: letra de control de NIF inválida (esperada %c)", expected)
	}
	return nil
}

// Checksum verifica el identificador según su tipo. Devuelve nil cuando el
// tipo no tiene algoritmo de verificación conocido (CIF, NIE, VAT, UNKNOWN):
// el flag queda sin asignar en lugar de mentir con false.
func Checksum(value string, typ TaxIDType) *bool {
	var err error
	switch typ {
	case TaxIDCUIT:
		err = ValidateCUIT(value)
	case TaxIDNIF:
		err = ValidateNIF(value)
	default:
		return nil
	}
	ok := err == nil
	return &ok
}

func extractDigits(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return out
}
