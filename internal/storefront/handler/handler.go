package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/boutique-catalog-service/internal/storefront"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StorefrontHandler struct {
	svc    *storefront.Service
	logger logger.ZapLogger
}

func NewStorefrontHandler(svc *storefront.Service, log logger.ZapLogger) *StorefrontHandler {
	return &StorefrontHandler{svc: svc, logger: log}
}

func (h *StorefrontHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/home", h.Home)
	rg.GET("/products", h.Products)
	rg.GET("/products/:id", h.Product)
	rg.GET("/about", h.About)
	rg.GET("/contact", h.Contact)
}

func (h *StorefrontHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Home(c.Request.Context()))
}

func (h *StorefrontHandler) Products(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	c.JSON(http.StatusOK, h.svc.Listing(c.Request.Context(), storefront.ListingQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
	}))
}

func (h *StorefrontHandler) Product(c *gin.Context) {
	id := c.Param("id")
	view := h.svc.Detail(c.Request.Context(), id, c.DefaultQuery("line", storefront.LineOne))
	if view.NotFound {
		h.logger.Debug("product not found", zap.String("id", id))
		c.JSON(http.StatusNotFound, view)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *StorefrontHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.About(c.Request.Context()))
}

func (h *StorefrontHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Contact(c.Request.Context()))
}
