package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	categoryrepo "github.com/fekuna/boutique-catalog-service/internal/category/repository"
	categoryuc "github.com/fekuna/boutique-catalog-service/internal/category/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/dashboard"
	productrepo "github.com/fekuna/boutique-catalog-service/internal/product/repository"
	productuc "github.com/fekuna/boutique-catalog-service/internal/product/usecase"
	"github.com/fekuna/boutique-catalog-service/internal/testutil"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_EmptyCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	log := logger.NewNop()
	svc := dashboard.NewService(
		productuc.NewProductUseCase(productrepo.NewSQLRepository(db), productuc.Options{}, log),
		categoryuc.NewCategoryUseCase(categoryrepo.NewSQLRepository(db), nil, log),
	)

	r := gin.New()
	NewDashboardHandler(svc).RegisterAdmin(r.Group("/api/v1/admin"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body["totalProducts"])
	assert.Equal(t, []any{}, body["recentProducts"])
}
