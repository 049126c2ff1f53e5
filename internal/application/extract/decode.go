// Package extract implementa los pipelines que convierten la salida suelta de
// un LLM (map[string]any compatible con JSON) en los registros tipados del
// dominio. Cada pipeline es una secuencia explícita y ordenada de
// normalizadores por campo seguida de las validaciones de registro completo;
// los campos desconocidos se ignoran y los tipos vienen ampliados (números
// como strings, etc.).
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/extraccion-core/internal/domain"
	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

// getString lee un campo como string, aceptando números sueltos.
func getString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func getBool(m map[string]any, key string) (bool, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, false
	}
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		return b, err == nil
	default:
		return false, false
	}
}

func getMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func getSlice(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func getStringSlice(m map[string]any, key string) []string {
	raw := getSlice(m, key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// getDecimal coacciona un campo numérico. provided=false cuando el campo no
// vino o vino vacío; error duro cuando vino con formato inválido.
func getDecimal(m map[string]any, key string) (decimal.Decimal, bool, error) {
	v, ok := m[key]
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	d, provided, err := normalize.ToDecimal(v)
	if err != nil {
		return decimal.Decimal{}, false, domain.NewFieldError(key, err.Error())
	}
	return d, provided, nil
}

// requireDecimal igual que getDecimal pero la ausencia es un fallo duro.
func requireDecimal(m map[string]any, key string) (decimal.Decimal, error) {
	d, provided, err := getDecimal(m, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !provided {
		return decimal.Decimal{}, domain.NewFieldError(key, "campo numérico requerido ausente")
	}
	return d, nil
}

// optDecimal devuelve puntero nil cuando el campo no vino.
func optDecimal(m map[string]any, key string) (*decimal.Decimal, error) {
	d, provided, err := getDecimal(m, key)
	if err != nil {
		return nil, err
	}
	if !provided {
		return nil, nil
	}
	return &d, nil
}

// getFloat lee un float opcional (porcentajes del catálogo de impuestos).
func getFloat(m map[string]any, key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case float64:
		return &x, nil
	case int:
		f := float64(x)
		return &f, nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", ".")
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, domain.NewFieldError(key, fmt.Sprintf("número inválido %q", x))
		}
		return &f, nil
	default:
		return nil, domain.NewFieldError(key, fmt.Sprintf("tipo %T no soportado", v))
	}
}

func getInt64(m map[string]any, key string) *int64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		n := int64(x)
		return &n
	case int:
		n := int64(x)
		return &n
	case int64:
		return &x
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}
