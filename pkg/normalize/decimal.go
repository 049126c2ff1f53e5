// Package normalize contiene normalizadores puros para los valores sueltos
// que producen los extractores LLM: números en formatos heterogéneos, fechas
// en varios patrones, correos con basura alrededor, placeholders tipo "n/a".
// Ninguna función de este paquete hace I/O ni guarda estado.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumericFormat indica que un string no vacío no pudo interpretarse
// como número (ni con coma ni con punto decimal).
var ErrInvalidNumericFormat = errors.New("formato numérico inválido")

// ToDecimal convierte representaciones numéricas heterogéneas a decimal exacto.
// Acepta nil (→ ok=false), decimal.Decimal (passthrough), enteros, floats
// (convertidos por su representación decimal más corta, sin arrastre binario),
// json.Number y strings ("7,50" se normaliza a "7.50").
// Un string vacío tras trim cuenta como ausente (ok=false). Cualquier otro
// tipo, o un string no parseable, devuelve ErrInvalidNumericFormat.
func ToDecimal(v any) (decimal.Decimal, bool, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false, nil
	case decimal.Decimal:
		return x, true, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Decimal{}, false, nil
		}
		return *x, true, nil
	case int:
		return decimal.NewFromInt(int64(x)), true, nil
	case int32:
		return decimal.NewFromInt(int64(x)), true, nil
	case int64:
		return decimal.NewFromInt(x), true, nil
	case float32:
		return decimal.NewFromFloat32(x), true, nil
	case float64:
		// NewFromFloat usa la representación decimal más corta del float,
		// equivalente a Decimal(str(x)): 1.1 queda como "1.1" exacto.
		return decimal.NewFromFloat(x), true, nil
	case json.Number:
		return parseDecimalString(string(x))
	case string:
		return parseDecimalString(x)
	default:
		return decimal.Decimal{}, false, fmt.Errorf("%w: tipo %T no soportado", ErrInvalidNumericFormat, v)
	}
}

func parseDecimalString(s string) (decimal.Decimal, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("%w: %q", ErrInvalidNumericFormat, s)
	}
	return d, true, nil
}

// Round2 aplica redondeo financiero a 2 decimales (mitades lejos de cero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
