// Package afip contiene catálogos y validaciones de identificadores fiscales
// alineados a la normativa AFIP (Argentina) y al vocabulario de comprobantes
// en español/inglés que imprimen las facturas procesadas.
package afip

import "strings"

// VoucherType clasifica un comprobante.
type VoucherType string

const (
	VoucherInvoice    VoucherType = "invoice"
	VoucherCreditNote VoucherType = "credit_note"
	VoucherDebitNote  VoucherType = "debit_note"
)

// =============================================================================
// Tabla AFIP de tipos de comprobante: código numérico → tipo.
// Los códigos con letra (A/B/C/M) comparten tipo; la letra vive aparte en
// document_type.
// =============================================================================

var codeToVoucher = map[string]VoucherType{
	"1":  VoucherInvoice,    // Factura A
	"2":  VoucherDebitNote,  // Nota de Débito A
	"3":  VoucherCreditNote, // Nota de Crédito A
	"6":  VoucherInvoice,    // Factura B
	"7":  VoucherDebitNote,  // Nota de Débito B
	"8":  VoucherCreditNote, // Nota de Crédito B
	"11": VoucherInvoice,    // Factura C
	"12": VoucherDebitNote,  // Nota de Débito C
	"13": VoucherCreditNote, // Nota de Crédito C
	"51": VoucherInvoice,    // Factura M
	"52": VoucherDebitNote,  // Nota de Débito M
	"53": VoucherCreditNote, // Nota de Crédito M
}

// VoucherFromCode resuelve el tipo de comprobante a partir del código AFIP
// ("08", "8" y "008" son equivalentes). ok=false si el código no está en la tabla.
func VoucherFromCode(code string) (VoucherType, bool) {
	c := strings.TrimLeft(strings.TrimSpace(code), "0")
	v, ok := codeToVoucher[c]
	return v, ok
}

// DocumentLetters son las letras de comprobante válidas (Factura A, B, C, M,
// E de exportación, T de turismo).
var DocumentLetters = map[string]bool{
	"A": true, "B": true, "C": true, "M": true, "E": true, "T": true,
}

// IsDocumentLetter reporta si la letra (ya en mayúscula) es válida.
func IsDocumentLetter(s string) bool {
	return DocumentLetters[s]
}
