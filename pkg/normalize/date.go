package normalize

import (
	"strings"
	"time"
)

// MissingPolicy decide qué devuelve ParseDateMulti cuando la fecha está vacía
// o no se pudo interpretar. La fecha de emisión siempre lleva string (NA);
// la fecha de vencimiento es anulable (cadena vacía).
type MissingPolicy int

const (
	// MissingNA devuelve el centinela "N/A".
	MissingNA MissingPolicy = iota
	// MissingEmpty devuelve cadena vacía (campo anulable).
	MissingEmpty
)

// Patrones de fecha aceptados, en orden de preferencia. Día primero, como se
// imprimen las facturas en español; ISO como alternativa.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"02 01 2006",
}

// CanonicalDateLayout es el formato canónico de salida (DD-MM-YYYY).
const CanonicalDateLayout = "02-01-2006"

// ParseDateMulti intenta los patrones aceptados y devuelve la fecha canónica
// DD-MM-YYYY. Entrada vacía o no parseable se resuelve según la política.
func ParseDateMulti(v string, onMissing MissingPolicy) string {
	s := strings.TrimSpace(v)
	if s == "" || IsPlaceholder(s) {
		return missingDate(onMissing)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}
	return missingDate(onMissing)
}

func missingDate(p MissingPolicy) string {
	if p == MissingNA {
		return NA
	}
	return ""
}

// ISODate reinterpreta la fecha con los mismos patrones pero en salida ISO
// (YYYY-MM-DD). Devuelve cadena vacía si no se pudo interpretar.
func ISODate(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
