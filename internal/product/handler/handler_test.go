package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/boutique-catalog-service/internal/product/repository"
	"github.com/fekuna/boutique-catalog-service/internal/product/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/testutil"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	uc := usecase.NewProductUseCase(repository.NewSQLRepository(testutil.NewDB(t)), usecase.Options{}, log)

	r := gin.New()
	NewProductHandler(uc, nil, 10, log).RegisterAdmin(r.Group("/api/v1/admin"))
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type productJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
	InStock  bool     `json:"inStock"`
	Featured bool     `json:"featured"`
}

func create(t *testing.T, r http.Handler, body map[string]any) productJSON {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/admin/products", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p productJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestProductHandler_CreateUpdateDelete(t *testing.T) {
	r := newRouter(t)

	p := create(t, r, map[string]any{
		"name":     "Grand boubou",
		"price":    45000,
		"category": "bazin",
		"images":   []string{"https://cdn/a.jpg", "https://cdn/b.jpg"},
	})
	assert.True(t, p.InStock)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}, p.Images)

	w := do(r, http.MethodPatch, "/api/v1/admin/products/"+p.ID, map[string]any{"price": 50000, "featured": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated productJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 50000.0, updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Grand boubou", updated.Name)
	assert.Len(t, updated.Images, 2)

	w = do(r, http.MethodDelete, "/api/v1/admin/products/"+p.ID+"/images/0", nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/admin/products/"+p.ID+"/images/0?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, []string{"https://cdn/b.jpg"}, updated.Images)

	w = do(r, http.MethodDelete, "/api/v1/admin/products/"+p.ID+"/images/5?confirm=true", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/admin/products/"+p.ID, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	w = do(r, http.MethodDelete, "/api/v1/admin/products/"+p.ID+"?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/v1/admin/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_Validation(t *testing.T) {
	r := newRouter(t)

	w := do(r, http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "Sans prix", "category": "wax"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "Négatif", "price": -1, "category": "wax"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must not be negative")
}

func TestProductHandler_FeaturedFilter(t *testing.T) {
	r := newRouter(t)
	for i := 0; i < 10; i++ {
		create(t, r, map[string]any{
			"name":     fmt.Sprintf("Produit %d", i),
			"price":    1000,
			"category": "wax",
			"featured": i%2 == 0,
		})
	}

	w := do(r, http.MethodGet, "/api/v1/admin/products?featured=true&limit=4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Products []productJSON `json:"products"`
		Total    int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Products, 4)
	for _, p := range page.Products {
		assert.True(t, p.Featured)
	}
}
