package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fekuna/boutique-catalog-service/config"
	"github.com/fekuna/boutique-catalog-service/internal/app"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@boutique.sn"
	adminPassword = "s3cret"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:   config.ServerConfig{AppEnv: "test", HTTPPort: "127.0.0.1:0", GRPCPort: "127.0.0.1:0", CORSOrigin: "*"},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		Storage: config.StorageConfig{
			Driver:        "local",
			Bucket:        "products",
			PublicBaseURL: "http://localhost:8080",
			LocalDir:      t.TempDir(),
		},
		Admin: config.AdminConfig{
			Email:        adminEmail,
			PasswordHash: string(hash),
			JWTSecret:    "secret",
			TokenTTL:     time.Hour,
		},
		Catalog: config.CatalogConfig{SettingsTTL: time.Minute, StorefrontPageSize: 12, AdminPageSize: 10},
	}

	a, err := app.New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) login() {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/v1/admin/login", map[string]string{"email": adminEmail, "password": adminPassword})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	c.token = resp.Token
}

func TestRouter_Health(t *testing.T) {
	c := &client{t: t, router: NewRouter(newApp(t))}
	w := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	c := &client{t: t, router: NewRouter(newApp(t))}

	for _, path := range []string{"/api/v1/admin/dashboard", "/api/v1/admin/products", "/api/v1/admin/settings"} {
		assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, path, nil).Code, path)
	}
	// Public reads stay open.
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/categories", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/storefront/home", nil).Code)
}

func TestRouter_CatalogRoundTrip(t *testing.T) {
	c := &client{t: t, router: NewRouter(newApp(t))}
	c.login()

	w := c.do(http.MethodPost, "/api/v1/admin/categories", map[string]any{"name": "Tissus & Wax"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/v1/admin/products", map[string]any{
		"name":     "Wax Hollandais",
		"price":    45000,
		"category": "tissus-wax",
		"featured": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	c.token = ""
	w = c.do(http.MethodGet, "/api/v1/storefront/products/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "45 000 FCFA")

	w = c.do(http.MethodGet, "/api/v1/storefront/products?category=tissus-wax", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wax Hollandais")

	c.login()
	w = c.do(http.MethodGet, "/api/v1/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalProducts   int `json:"totalProducts"`
		TotalCategories int `json:"totalCategories"`
		Featured        int `json:"featuredCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalCategories)
	assert.Equal(t, 1, stats.Featured)
}

func TestRouter_UploadServedFromLocalStorage(t *testing.T) {
	c := &client{t: t, router: NewRouter(newApp(t))}
	c.login()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("folder", "products"))
	part, err := mw.CreateFormFile("files", "boubou.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		URLs []string `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.URLs, 1)

	u, err := url.Parse(resp.URLs[0])
	require.NoError(t, err)
	w = httptest.NewRecorder()
	c.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, u.Path, nil))
	require.Equal(t, http.StatusOK, w.Code)
	data, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	srv := New(newApp(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
