package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/extraccion-core/internal/interfaces/http"
	"github.com/jhoicas/extraccion-core/pkg/logger"
)

// buildTestApp construye la aplicación Fiber con el error handler y el router
// reales, sin capa de secretos.
func buildTestApp() *fiber.App {
	log := logger.Nop()
	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler(log),
	})
	apphttp.Router(app, apphttp.RouterDeps{Log: log})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(payload, &out))
	return resp.StatusCode, out
}

func TestExtractInvoice_DevuelveRegistroValidado(t *testing.T) {
	app := buildTestApp()

	status, out := postJSON(t, app, "/api/extract/invoice", map[string]any{
		"currency": "EUR",
		"items": []any{
			map[string]any{
				"description": "Servicio",
				"quantity":    1,
				"unit_price":  "100",
				"line_total":  "100",
				"vat_percent": "21",
			},
		},
		"totals": map[string]any{
			"taxable_base": "100",
			"vat_percent":  "21",
			"vat_amount":   "21",
			"grand_total":  "121",
			"vat_breakdown": []any{
				map[string]any{"percent": "21", "taxable_base": "100", "amount": "21"},
			},
		},
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "EUR", out["currency"])
	totals, ok := out["totals"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, totals, "notes", "una factura que cuadra no lleva notas")
}

func TestExtractInvoice_FalloEstructuralUsaElEnvelopeDeError(t *testing.T) {
	app := buildTestApp()

	status, out := postJSON(t, app, "/api/extract/invoice", map[string]any{
		"items": []any{},
	})

	require.Equal(t, 422, status)
	assert.Equal(t, "InvoiceParsingError", out["error_type"])
	assert.Equal(t, float64(422), out["status_code"])
	assert.NotEmpty(t, out["request_id"])
	assert.NotEmpty(t, out["timestamp"])
}

func TestTaxesMatch_BatchCompleto(t *testing.T) {
	app := buildTestApp()

	status, out := postJSON(t, app, "/api/taxes/match", map[string]any{
		"taxes": []any{
			map[string]any{"id": 1, "name": "IVA 21%", "amount": "21", "type_tax_use": "purchase", "active": true},
		},
		"primary_amounts": []any{21, nil},
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "partial_error", out["status"])
	results, ok := out["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)
}

func TestHealth(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
