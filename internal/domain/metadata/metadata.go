// Package metadata extrae y normaliza los metadatos AFIP de un comprobante:
// letra, código, número ####-########, CAE y tipo de comprobante. Todo es
// función pura sobre texto crudo; los extractores por regex nunca fallan,
// devuelven cadena vacía cuando no hay match.
package metadata

import (
	"regexp"
	"strings"

	"github.com/jhoicas/extraccion-core/pkg/afip"
	"github.com/jhoicas/extraccion-core/pkg/normalize"
)

var (
	// "Factura A", "Nota de Crédito B": patrón más específico primero.
	docLetterRe       = regexp.MustCompile(`(?i)\b(Factura|Nota\s+de\s+Cr[eé]dito|Nota\s+de\s+D[eé]bito)\s*([ABCMET])\b`)
	docLetterTightRe  = regexp.MustCompile(`(?i)\bFactura\s*([ABCMET])\b`)
	docLetterPackedRe = regexp.MustCompile(`(?i)\bFactura?([ABCMET])\b`)

	// "COD. 01", "CÓDIGO: 006", "Cod.Nro. 11"
	codeRe       = regexp.MustCompile(`(?i)\b(COD(?:\.|IGO)?|C[óo]d(?:\.|igo)?|Cod\.?\.?Nro\.?)\s*[:.]?\s*(\d{1,3})\b`)
	codeDigitsRe = regexp.MustCompile(`\b(\d{1,3})\b`)

	// 0001-00001234 | 0001 00001234 | 00001-00000245
	docNumRe    = regexp.MustCompile(`\b(\d{4,5})\s*[-\s]\s*(\d{6,8})\b`)
	digitRunsRe = regexp.MustCompile(`\d+`)

	// CAE/CAEA con rótulo y 10+ caracteres de dígitos/puntuación.
	caeRe        = regexp.MustCompile(`(?i)\b(CAE|CAEA)\s*(?:N[°º]?)?\s*[:.#]?\s*([0-9.\s-]{10,})\b`)
	nonDigitsRe  = regexp.MustCompile(`\D+`)
	dateSlashRe  = regexp.MustCompile(`\b(\d{2})[/-](\d{2})[/-](\d{4})\b`)
	dateISORe    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// DocumentMetadata salida normalizada del prompt de metadatos AFIP. Todos los
// campos son opcionales (vacíos si no se encuentran) excepto VoucherType.
type DocumentMetadata struct {
	DocumentType        string           `json:"document_type,omitempty"` // letra A, B, C, M, E, T
	DocumentCode        string           `json:"document_code,omitempty"` // código AFIP (01, 02, 006, 011)
	DocumentNumber      string           `json:"document_number,omitempty"` // ####-########
	VoucherType         afip.VoucherType `json:"voucher_type"`
	CAE                 string           `json:"cae,omitempty"`          // 14 dígitos
	CAEDueDate          string           `json:"cae_due_date,omitempty"` // ISO YYYY-MM-DD si se pudo normalizar
	InvID               *int64           `json:"inv_id,omitempty"`
	PurchaseOrderNumber string           `json:"purchase_order_number,omitempty"`
}

// ExtractDocLetter busca la letra de comprobante con una cascada de patrones
// de especificidad decreciente y acepta solo letras del conjunto permitido.
func ExtractDocLetter(s string) string {
	if s == "" {
		return ""
	}
	for _, rx := range []*regexp.Regexp{docLetterRe, docLetterTightRe, docLetterPackedRe} {
		if m := rx.FindStringSubmatch(s); m != nil {
			letter := strings.ToUpper(strings.TrimSpace(m[len(m)-1]))
			if afip.IsDocumentLetter(letter) {
				return letter
			}
		}
	}
	// fallback: la cadena completa es una letra válida
	if s1 := strings.ToUpper(strings.TrimSpace(s)); afip.IsDocumentLetter(s1) {
		return s1
	}
	return ""
}

// ExtractDocCode busca un código de 1–3 dígitos tras un rótulo COD/CÓDIGO, o
// un token de dígitos aislado, y lo rellena a ancho 2 ("1" → "01").
func ExtractDocCode(s string) string {
	if s == "" {
		return ""
	}
	if m := codeRe.FindStringSubmatch(s); m != nil {
		return zfill(m[2], 2)
	}
	if m := codeDigitsRe.FindStringSubmatch(s); m != nil {
		return zfill(m[1], 2)
	}
	return ""
}

// NormalizeDocNumber devuelve ####-######## si detecta los dos bloques
// numéricos (punto de venta y número). Acepta separador espacio o guion y
// rellena con ceros a la izquierda (pv: 4 o 5 dígitos, num: 8).
func NormalizeDocNumber(s string) string {
	if s == "" {
		return ""
	}
	if m := docNumRe.FindStringSubmatch(s); m != nil {
		return padDocNumber(m[1], m[2])
	}
	// intento libre: dos grupos de dígitos cualesquiera
	if digits := digitRunsRe.FindAllString(s, -1); len(digits) >= 2 {
		return padDocNumber(digits[0], digits[1])
	}
	return ""
}

func padDocNumber(pv, num string) string {
	if len(pv) <= 4 {
		pv = zfill(pv, 4)
	} else {
		pv = zfill(pv, 5)
	}
	return pv + "-" + zfill(num, 8)
}

// NormalizeCAE extrae los dígitos del CAE/CAEA. El resultado esperado tiene
// 14 dígitos pero no se rechaza uno distinto: se devuelve el mejor esfuerzo.
func NormalizeCAE(s string) string {
	if s == "" {
		return ""
	}
	if m := caeRe.FindStringSubmatch(s); m != nil {
		return nonDigitsRe.ReplaceAllString(m[2], "")
	}
	return nonDigitsRe.ReplaceAllString(s, "")
}

// NormalizeCAEDueDate normaliza la fecha de vencimiento del CAE a ISO
// (YYYY-MM-DD). Sin match devuelve el texto recortado tal cual vino.
func NormalizeCAEDueDate(s string) string {
	if s == "" {
		return ""
	}
	if m := dateSlashRe.FindStringSubmatch(s); m != nil {
		if iso := normalize.ISODate(m[1] + "-" + m[2] + "-" + m[3]); iso != "" {
			return iso
		}
	}
	if m := dateISORe.FindStringSubmatch(s); m != nil {
		if iso := normalize.ISODate(m[1] + "-" + m[2] + "-" + m[3]); iso != "" {
			return iso
		}
	}
	return strings.TrimSpace(s)
}

// vocabulario de tipos de comprobante, sin tildes (la entrada se pliega con
// FoldAccents antes de comparar). Se chequea primero lo más específico para
// que "NOTA DE CRÉDITO A" no caiga en la regla genérica de factura.
var (
	creditTerms  = []string{"NOTA DE CREDITO", "NOTADECREDITO", "CREDIT NOTE", "CREDITNOTE"}
	debitTerms   = []string{"NOTA DE DEBITO", "NOTADEDEBITO", "DEBIT NOTE", "DEBITNOTE"}
	invoiceTerms = []string{"FACTURA", "INVOICE"}
)

// InferVoucherType clasifica el tipo de comprobante desde texto libre, con el
// código AFIP como cadena de respaldo. Maneja tres casos:
//  1. ya clasificado ("invoice", "credit_note", "debit_note") → tal cual
//  2. texto del documento ("FACTURA", "NOTA DE DÉBITO A") → clasificar
//  3. sin match → tabla código AFIP → default invoice
func InferVoucherType(s, docCode string) afip.VoucherType {
	if strings.TrimSpace(s) == "" {
		if v, ok := afip.VoucherFromCode(docCode); ok {
			return v
		}
		return afip.VoucherInvoice
	}

	switch afip.VoucherType(strings.ToLower(strings.TrimSpace(s))) {
	case afip.VoucherInvoice, afip.VoucherCreditNote, afip.VoucherDebitNote:
		return afip.VoucherType(strings.ToLower(strings.TrimSpace(s)))
	}

	folded := strings.ToUpper(normalize.FoldAccents(s))
	if containsAny(folded, creditTerms) {
		return afip.VoucherCreditNote
	}
	if containsAny(folded, debitTerms) {
		return afip.VoucherDebitNote
	}
	if containsAny(folded, invoiceTerms) {
		return afip.VoucherInvoice
	}

	if v, ok := afip.VoucherFromCode(docCode); ok {
		return v
	}
	return afip.VoucherInvoice
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func zfill(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
