// Package domain define los errores tipados del núcleo de extracción.
// Fallos duros solamente: campo requerido ausente, tipo fundamental incorrecto
// o regla de negocio incondicional. Las discrepancias aritméticas NUNCA llegan
// aquí; se registran como notas en el propio registro.
package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNotFound     = errors.New("recurso no encontrado")
)

// CoreError es el error de dominio que consume la capa de borde HTTP:
// mensaje legible, status sugerido y datos estructurados del fallo.
type CoreError struct {
	Type       string // nombre estable del error, p.ej. "InvoiceParsingError"
	Message    string
	StatusCode int
	Data       map[string]any
}

func (e *CoreError) Error() string { return e.Message }

// NewInvoiceParsingError fallo estructural al interpretar una factura.
func NewInvoiceParsingError(detail string) *CoreError {
	return &CoreError{
		Type:       "InvoiceParsingError",
		Message:    fmt.Sprintf("Error al parsear factura: %s", detail),
		StatusCode: 422,
		Data:       map[string]any{},
	}
}

// NewFieldError campo requerido ausente o de tipo incorrecto.
func NewFieldError(field, reason string) *CoreError {
	return &CoreError{
		Type:       "FieldValidationError",
		Message:    fmt.Sprintf("Campo '%s' inválido: %s", field, reason),
		StatusCode: 422,
		Data:       map[string]any{"field": field, "reason": reason},
	}
}

// NewTaxIDNotFoundError no se encontró impuesto para los porcentajes candidatos.
func NewTaxIDNotFoundError(invoiceNumber string, candidates []float64) *CoreError {
	return &CoreError{
		Type: "TaxIdNotFoundError",
		Message: fmt.Sprintf(
			"No se encontró un tax_id válido para la factura '%s'. Porcentajes candidatos: %v",
			invoiceNumber, candidates,
		),
		StatusCode: 422,
		Data:       map[string]any{"invoice_number": invoiceNumber, "candidates": candidates},
	}
}

// NewValidTaxIDNotFoundError ningún identificador fiscal detectado pasó validación.
func NewValidTaxIDNotFoundError(rawIDs []string) *CoreError {
	return &CoreError{
		Type:       "ValidTaxIdNotFoundError",
		Message:    "No se encontraron identificadores fiscales válidos.",
		StatusCode: 422,
		Data:       map[string]any{"candidates": rawIDs},
	}
}

// NewSecretNotFoundError el secreto no existe en el gestor.
func NewSecretNotFoundError(secretName string) *CoreError {
	return &CoreError{
		Type:       "SecretNotFoundError",
		Message:    fmt.Sprintf("El secreto '%s' no fue encontrado en AWS Secrets Manager.", secretName),
		StatusCode: 404,
		Data:       map[string]any{"secret_name": secretName},
	}
}

// NewMissingSecretKeyError el documento de secretos no trae la clave pedida.
func NewMissingSecretKeyError(secretName, key string) *CoreError {
	return &CoreError{
		Type:       "MissingSecretKey",
		Message:    fmt.Sprintf("Falta la clave secreta '%s' en el secreto '%s'.", key, secretName),
		StatusCode: 500,
		Data:       map[string]any{"secret_name": secretName, "missing_key": key},
	}
}

// NewAWSConnectionError fallo de comunicación con AWS.
func NewAWSConnectionError(detail string) *CoreError {
	if detail == "" {
		detail = "Error al conectar con AWS Secrets Manager"
	}
	return &CoreError{
		Type:       "AWSConnectionError",
		Message:    detail,
		StatusCode: 500,
		Data:       map[string]any{},
	}
}
