package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/gesstock-service/internal/auth"
	"github.com/fekuna/gesstock-service/internal/pkg/i18n"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/fekuna/gesstock-service/internal/pkg/response"
	"github.com/fekuna/gesstock-service/internal/product/dto"
	"github.com/fekuna/gesstock-service/internal/product/repository"
	"github.com/fekuna/gesstock-service/internal/product/usecase"
	"github.com/fekuna/gesstock-service/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tr, err := i18n.New("en")
	require.NoError(t, err)

	s := store.New(store.NewMemoryBackend(), nil, logger.NewNop())
	uc := usecase.NewProductUseCase(repository.NewDocumentRepository(s, logger.NewNop()), nil, logger.NewNop())
	h := NewProductHandler(uc, response.NewResponder(tr, logger.NewNop()), logger.NewNop())

	engine := gin.New()
	engine.Use(auth.ContextMiddleware())
	h.Register(engine.Group("/api/v1"))
	return engine
}

func do(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderUserID, "u1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type productEnvelope struct {
	Message string              `json:"message"`
	Product dto.ProductResponse `json:"product"`
}

func TestCreateProductWithPriceText(t *testing.T) {
	engine := newEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/products",
		`{"name":"TV","quantity":2,"price":"R$ 1.500,00","category_id":"c1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out productEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, int64(150000), out.Product.PriceCents)
	assert.Equal(t, "$1500.00", out.Product.PriceDisplay)

	w = do(engine, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Products []dto.ProductResponse `json:"products"`
		Total    int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "$1500.00", list.Products[0].PriceDisplay)
}

func TestCreateProductValidation(t *testing.T) {
	engine := newEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/products", `{"name":"","quantity":0,"price":"abc"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 4)
}

func TestResolveBarcodeRoute(t *testing.T) {
	engine := newEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/products",
		`{"name":"TV","quantity":2,"price_cents":150000,"category_id":"c1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created productEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(engine, http.MethodGet, "/api/v1/products/barcode/"+created.Product.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found productEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, "Product found: TV", found.Message)

	w = do(engine, http.MethodGet, "/api/v1/products/barcode/0000", "", map[string]string{"Accept-Language": "pt-BR"})
	require.Equal(t, http.StatusNotFound, w.Code)
	var miss map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &miss))
	assert.Equal(t, "not_found", miss["error"])
	assert.NotEmpty(t, miss["action"])
	assert.NotEqual(t, "ScanAgain", miss["action"])
}

func TestUpdateAndDeleteProductRoutes(t *testing.T) {
	engine := newEngine(t)

	w := do(engine, http.MethodPost, "/api/v1/products",
		`{"name":"TV","quantity":2,"price_cents":150000,"category_id":"c1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created productEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(engine, http.MethodPut, "/api/v1/products/"+created.Product.ID,
		`{"name":"TV 50","quantity":3,"price_cents":199900,"category_id":"c1"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(engine, http.MethodPut, "/api/v1/products/missing",
		`{"name":"TV 50","quantity":3,"price_cents":199900,"category_id":"c1"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(engine, http.MethodDelete, "/api/v1/products/"+created.Product.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product deleted!")
}

func TestProductRoutesRequireOwner(t *testing.T) {
	engine := newEngine(t)

	w := do(engine, http.MethodGet, "/api/v1/products", "", map[string]string{auth.HeaderUserID: ""})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
