package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/config"
	"github.com/pedidosfiliais/backend-go/internal/domain"
	"github.com/pedidosfiliais/backend-go/internal/repository/demo"
	"github.com/pedidosfiliais/backend-go/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := demo.NewProvider().Gateway()
	fallback := demo.NewProvider().Gateway()
	reportCache := cache.NewNoopReportCache()
	cfg := config.ReportConfig{PlannedPerCapita: 150, AccumulatedMonths: 3}

	return NewRouter(&Services{
		Orders:  service.NewOrderService(gw, fallback, reportCache),
		Reports: service.NewReportService(gw, fallback, reportCache, cfg),
		Catalog: service.NewCatalogService(gw, fallback, reportCache),
	}, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetForm(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/form?branch=sp-centro", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	var form domain.OrderForm
	require.NoError(t, json.Unmarshal(body["data"], &form))
	assert.Equal(t, "São Paulo - Centro", form.Branch.Name)
	assert.Len(t, form.Lines, 5)

	var degraded bool
	require.NoError(t, json.Unmarshal(body["degraded"], &degraded))
	assert.False(t, degraded)
}

func TestGetFormValidation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/form", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/form?branch=no-such-branch", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecalculate(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]any{
		"lines": []domain.OrderLine{
			{ProductID: "1", Quantity: 10, UnitValue: 0, Headcount: 2},
		},
		"product_id": "1",
		"field":      "unit_value",
		"value":      5,
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/recalculate", payload)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	var lines []domain.OrderLine
	require.NoError(t, json.Unmarshal(body["data"], &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, 50.0, lines[0].TotalValue)
	assert.Equal(t, 25.0, lines[0].PerCapita)
}

func TestSaveRejectsInvalidForm(t *testing.T) {
	router := newTestRouter(t)

	form := domain.OrderForm{
		Branch:     domain.Branch{ID: "4", Code: "rs-centro"},
		Products:   []domain.Product{{ID: "1", Code: "MAT001"}},
		Lines:      []domain.OrderLine{{ProductID: "1", Quantity: 1, UnitValue: 1, Headcount: 1}},
		ActiveIDs:  []string{"1"},
		LaunchDate: "2024-01-15",
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/save", form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)

	var reason string
	require.NoError(t, json.Unmarshal(body["reason"], &reason))
	assert.Equal(t, domain.ReasonMissingPeriod, reason)
}

func TestSaveRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	form := domain.OrderForm{
		Branch:     domain.Branch{ID: "4", Code: "rs-centro"},
		Products:   []domain.Product{{ID: "1", Code: "MAT001"}},
		Lines:      []domain.OrderLine{{ProductID: "1", Quantity: 10, UnitValue: 5, TotalValue: 50, Headcount: 2}},
		ActiveIDs:  []string{"1"},
		Period:     domain.PeriodMonthly,
		LaunchDate: "2024-01-15",
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/save", form)
	require.Equal(t, http.StatusOK, w.Code)

	// The saved line shows up on the next form load for that branch.
	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/form?branch=rs-centro", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded domain.OrderForm
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["data"], &reloaded))
	require.Len(t, reloaded.Lines, 5)
	assert.NotEmpty(t, reloaded.Lines[0].ID)
	assert.Equal(t, 10.0, reloaded.Lines[0].Quantity)
	assert.Equal(t, domain.StatusDraft, reloaded.Lines[0].Status)
}

func TestProductCRUD(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/products", domain.ProductInput{
		Code: "MAT010", Item: "Material Novo", Description: "Teste",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["data"], &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(t, router, http.MethodPut, "/api/v1/products/"+created.ID, domain.ProductInput{
		Code: "MAT010", Item: "Material Novo", Description: "Atualizado",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConsolidatedReportEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/consolidated?status=enviado", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []domain.ConsolidatedRow
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["data"], &rows))
	assert.Len(t, rows, 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary domain.ReportSummary
	require.NoError(t, json.Unmarshal(decodeBody(t, w)["data"], &summary))
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 1, summary.PendingCount)
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "relatorio-consolidado-")
	assert.Contains(t, w.Body.String(), "Empresa,Departamento,Posto")
}
