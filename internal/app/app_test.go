package app

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/boutique-catalog-service/config"
	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns a configuration backed by in-memory SQLite and a
// temporary image directory, with every optional backend disabled.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{AppEnv: "test", HTTPPort: ":0", GRPCPort: ":0", CORSOrigin: "*"},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: memoryPath},
		Storage: config.StorageConfig{
			Driver:        "local",
			Bucket:        "products",
			PublicBaseURL: "http://localhost:8080",
			LocalDir:      t.TempDir(),
		},
		Admin:   config.AdminConfig{JWTSecret: "secret", TokenTTL: time.Hour},
		Catalog: config.CatalogConfig{SettingsTTL: time.Minute, StorefrontPageSize: 12, AdminPageSize: 10},
	}
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.Nil(t, a.Listener)
	assert.False(t, a.Authenticator.Enabled())

	id := a.Categories.AddCategory(ctx, &dto.CreateCategoryInput{Name: "Parfums", Slug: "parfums"})
	require.NotEmpty(t, id)

	home := a.Storefront.Home(ctx)
	assert.Len(t, home.Categories, 1)
}

func TestNew_RejectsUnknownDrivers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "oracle"
	_, err := New(context.Background(), cfg, logger.NewNop())
	assert.ErrorContains(t, err, "DB_DRIVER")

	cfg = testConfig(t)
	cfg.Storage.Driver = "ftp"
	_, err = New(context.Background(), cfg, logger.NewNop())
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}
