package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NA es el centinela para campos de texto sin valor.
const NA = "N/A"

// placeholders que los extractores devuelven cuando un campo no existe en el
// documento. Se tratan igual que un campo vacío.
var emptyPlaceholders = map[string]struct{}{
	"":           {},
	"-":          {},
	"--":         {},
	"n/a":        {},
	"n/a.":       {},
	"na":         {},
	"n.a.":       {},
	"s/n":        {},
	"sin correo": {},
	"no aplica":  {},
}

// IsPlaceholder reporta si el valor, ya recortado y en minúsculas, es uno de
// los tokens placeholder conocidos.
func IsPlaceholder(s string) bool {
	_, ok := emptyPlaceholders[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// BlankToNA devuelve NA cuando el valor está en blanco o es placeholder; en
// caso contrario devuelve el valor recortado.
func BlankToNA(s string) string {
	t := strings.TrimSpace(s)
	if t == "" || IsPlaceholder(t) {
		return NA
	}
	return t
}

// CleanOptional recorta el valor y lo reduce a cadena vacía si está en blanco
// o es placeholder. La cadena vacía representa "sin valor" en campos opcionales.
func CleanOptional(s string) string {
	t := strings.TrimSpace(s)
	if IsPlaceholder(t) {
		return ""
	}
	return t
}

// DedupeOrdered limpia blancos y duplicados preservando el orden de primera
// aparición, y trunca a max elementos (max <= 0 no trunca).
func DedupeOrdered(items []string, max int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldAccents elimina diacríticos ("Crédito" → "Credito") para comparar
// vocabulario español sin depender de cómo vino tildado el texto.
func FoldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}
