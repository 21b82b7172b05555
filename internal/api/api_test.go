package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := repository.NewMemoryStore()
	repos := repository.NewSet(store)
	services := service.New(repos, nil, nil, config.BusinessConfig{InvoicePrefix: "INV", DefaultTaxPercent: 5, PaymentTermsDays: 15})
	return NewRouter(Dependencies{Services: services, Store: store}, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createVendor(t *testing.T, router http.Handler) domain.Vendor {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/vendors", map[string]interface{}{
		"name": "ABC Traders",
		"ingredients": []map[string]interface{}{
			{"name": "Almonds", "quantity_available": 500, "unit": "kg", "price_per_unit": 600, "quality": 5},
			{"name": "Cashews", "quantity_available": 200, "unit": "kg", "price_per_unit": 800, "quality": 4},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var v domain.Vendor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createSKU(t *testing.T, router http.Handler, vendorID string) domain.SKU {
	t.Helper()
	recipes := map[string]interface{}{}
	for _, day := range domain.Weekdays {
		recipes[string(day)] = []map[string]interface{}{
			{"ingredient_name": "Almonds", "grams": 5, "vendor_id": vendorID},
			{"ingredient_name": "Cashews", "grams": 3, "vendor_id": vendorID},
		}
	}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/skus", map[string]interface{}{
		"name":                "Trail Mix",
		"sku_type":            "weekly",
		"target_weight_grams": 8,
		"recipes":             recipes,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res service.SKUResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.SKU)
	return *res.SKU
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	router := NewRouter(Dependencies{Store: failingPinger{}}, nil)
	rec = doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestVendorValidationAndNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/vendors", map[string]interface{}{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "fields")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/vendors/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/vendors", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVendorCRUD(t *testing.T) {
	router := newTestRouter(t)
	v := createVendor(t, router)
	require.NotEmpty(t, v.ID)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/vendors", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Vendor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/vendors/"+v.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/vendors/"+v.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVendorImport(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Vendor,Ingredient,Quantity,Unit,Price\nFresh Farms,Raisins,40,kg,300\nFresh Farms,Dates,25,kg,450\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vendors/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"Fresh Farms"}, res.Created)
	assert.Empty(t, res.Updated)
}

func TestProductionPlanAndExport(t *testing.T) {
	router := newTestRouter(t)
	v := createVendor(t, router)
	sku := createSKU(t, router, v.ID)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/production/plan?sku_id="+sku.ID+"&target_quantity=10&pack_type=weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var plan map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Contains(t, plan, "requirements")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/production/export?sku_id="+sku.ID+"&target_quantity=10&pack_type=weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), "attachment; filename=\"requirements_trail-mix_weekly_10_"))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ingredient", rows[0][0])
}

func TestProductionBadInput(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/production/plan?target_quantity=10", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/production/plan?sku_id=x&pack_type=yearly", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/production/plan?sku_id=missing&target_quantity=10", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/production/plan?sku_id=missing", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/production/export?sku_id=missing&target_quantity=1&format=pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInventoryLowStockRouteIsNotShadowed(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/inventory/low-stock", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDriveRoutesAbsentWithoutFetcher(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/drive/files", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.test, http://b.test", " "})
	assert.False(t, all)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, origins)

	_, all = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, all)
}
