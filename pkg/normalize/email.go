package normalize

import (
	"regexp"
	"strings"
)

var (
	emailStrictRe   = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	emailEmbeddedRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// Email normaliza un correo sucio de extracción. Placeholders quedan vacíos;
// si el string completo no es un correo válido se busca un sub-string con
// forma de correo ("vibrahotels.com - maritimo@vibrahotels.com" →
// "maritimo@vibrahotels.com"). Nunca falla: sin match devuelve "".
func Email(v string) string {
	s := CleanOptional(v)
	if s == "" {
		return ""
	}
	if emailStrictRe.MatchString(s) {
		return s
	}
	if m := emailEmbeddedRe.FindString(s); m != "" {
		return m
	}
	return ""
}

// Website normaliza una URL de sitio web. Placeholders quedan vacíos; si no
// trae esquema se antepone https:// para que el valor sea una URL completa.
func Website(v string) string {
	s := CleanOptional(v)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return s
}
