package server

import (
	"net/http"

	"github.com/fekuna/boutique-catalog-service/internal/app"
	"github.com/fekuna/boutique-catalog-service/internal/auth"
	authH "github.com/fekuna/boutique-catalog-service/internal/auth/handler"
	catH "github.com/fekuna/boutique-catalog-service/internal/category/handler"
	dashH "github.com/fekuna/boutique-catalog-service/internal/dashboard/handler"
	"github.com/fekuna/boutique-catalog-service/internal/media"
	mediaH "github.com/fekuna/boutique-catalog-service/internal/media/handler"
	prodH "github.com/fekuna/boutique-catalog-service/internal/product/handler"
	settingH "github.com/fekuna/boutique-catalog-service/internal/setting/handler"
	storeH "github.com/fekuna/boutique-catalog-service/internal/storefront/handler"
	"github.com/fekuna/boutique-catalog-service/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter mounts every HTTP route. Everything under /api/v1/admin except
// the login endpoint requires an admin bearer token.
func NewRouter(a *app.App) *gin.Engine {
	if !a.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(a.Logger),
		middleware.RequestLogger(a.Logger),
		middleware.CORS(a.Config.Server.CORSOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		if err := a.DB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	storage := a.Config.Storage
	if storage.Driver == "local" || storage.Driver == "" {
		r.Static(media.PublicPath(storage.Bucket), storage.LocalDir)
	}

	pageSize := a.Config.Catalog.AdminPageSize
	categories := catH.NewCategoryHandler(a.Categories, a.Uploader, pageSize, a.Logger)
	products := prodH.NewProductHandler(a.Products, a.Uploader, pageSize, a.Logger)
	settings := settingH.NewSettingHandler(a.Settings, a.Logger)
	login := authH.NewAuthHandler(a.Authenticator, a.Logger)

	api := r.Group("/api/v1")
	storeH.NewStorefrontHandler(a.Storefront, a.Logger).Register(api.Group("/storefront"))
	categories.RegisterPublic(api)
	settings.RegisterPublic(api)

	open := api.Group("/admin")
	login.Register(open)

	admin := api.Group("/admin", auth.RequireAdmin(a.Tokens, a.Logger))
	login.RegisterProtected(admin)
	dashH.NewDashboardHandler(a.Dashboard).RegisterAdmin(admin)
	categories.RegisterAdmin(admin)
	products.RegisterAdmin(admin)
	settings.RegisterAdmin(admin)
	mediaH.NewMediaHandler(a.Uploader, a.Logger).RegisterAdmin(admin)

	return r
}
