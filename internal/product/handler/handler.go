package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/internal/httpx"
	"github.com/fekuna/boutique-catalog-service/internal/product"
	"github.com/fekuna/boutique-catalog-service/internal/product/dto"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/fekuna/boutique-catalog-service/internal/workflow"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc       product.UseCase
	uploader workflow.ImageUploader
	pageSize int
	logger   logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, uploader workflow.ImageUploader, pageSize int, log logger.ZapLogger) *ProductHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ProductHandler{uc: uc, uploader: uploader, pageSize: pageSize, logger: log}
}

func (h *ProductHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
	rg.POST("/products", h.Create)
	rg.GET("/products/:id", h.Get)
	rg.PATCH("/products/:id", h.Update)
	rg.DELETE("/products/:id", h.Delete)
	rg.DELETE("/products/:id/images/:index", h.RemoveImage)
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	SubCategory string   `json:"subCategory"`
	Images      []string `json:"images"`
	InStock     *bool    `json:"inStock"`
	Featured    bool     `json:"featured"`
}

type updateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	SubCategory *string   `json:"subCategory"`
	Images      *[]string `json:"images"`
	InStock     *bool     `json:"inStock"`
	Featured    *bool     `json:"featured"`
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func (h *ProductHandler) List(c *gin.Context) {
	page, limit := httpx.Page(c, h.pageSize)
	products, total := h.uc.ListProducts(c.Request.Context(), &dto.ProductFilters{
		Category:   c.Query("category"),
		Featured:   httpx.OptionalBool(c, "featured"),
		SearchTerm: c.Query("search"),
		Page:       page,
		Limit:      limit,
	})
	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": query.TotalPages(total, limit),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	p := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if p == nil {
		httpx.Fail(c, http.StatusNotFound, "product not found", nil)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	form := workflow.NewProductForm(h.uc, h.uploader)
	if err := errors.Join(
		form.Create(req.Category),
		form.SetImages(req.Images),
		form.SetFields(workflow.ProductFields{
			Name:        req.Name,
			Description: req.Description,
			Price:       formatPrice(*req.Price),
			Category:    req.Category,
			SubCategory: req.SubCategory,
			InStock:     inStock,
			Featured:    req.Featured,
		}),
	); err != nil {
		httpx.FailFor(c, "could not create product", err)
		return
	}

	ctx := c.Request.Context()
	id, err := form.Submit(ctx)
	if err != nil {
		h.logger.Warn("product create rejected", zap.Error(err))
		httpx.FailFor(c, "could not create product", err)
		return
	}
	c.JSON(http.StatusCreated, h.uc.GetProduct(ctx, id))
}

func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	existing := h.uc.GetProduct(ctx, c.Param("id"))
	if existing == nil {
		httpx.Fail(c, http.StatusNotFound, "product not found", nil)
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form := workflow.NewProductForm(h.uc, h.uploader)
	if err := form.Edit(existing); err != nil {
		httpx.FailFor(c, "could not update product", err)
		return
	}
	fields := form.Fields()
	if req.Name != nil {
		fields.Name = *req.Name
	}
	if req.Description != nil {
		fields.Description = *req.Description
	}
	if req.Price != nil {
		fields.Price = formatPrice(*req.Price)
	}
	if req.Category != nil {
		fields.Category = *req.Category
	}
	if req.SubCategory != nil {
		fields.SubCategory = *req.SubCategory
	}
	if req.InStock != nil {
		fields.InStock = *req.InStock
	}
	if req.Featured != nil {
		fields.Featured = *req.Featured
	}
	steps := []error{form.SetFields(fields)}
	if req.Images != nil {
		steps = append(steps, form.SetImages(*req.Images))
	}
	if err := errors.Join(steps...); err != nil {
		httpx.FailFor(c, "could not update product", err)
		return
	}

	id, err := form.Submit(ctx)
	if err != nil {
		h.logger.Warn("product update rejected", zap.String("id", existing.ID), zap.Error(err))
		httpx.FailFor(c, "could not update product", err)
		return
	}
	c.JSON(http.StatusOK, h.uc.GetProduct(ctx, id))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	del := workflow.NewProductForm(h.uc, h.uploader).RequestDelete(c.Param("id"))
	if httpx.Confirmed(c) {
		del.Confirm()
	}
	if err := del.Execute(c.Request.Context()); err != nil {
		httpx.FailFor(c, "could not delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveImage drops one image by position; like deletes it needs
// ?confirm=true.
func (h *ProductHandler) RemoveImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid image index", err)
		return
	}
	if !httpx.Confirmed(c) {
		httpx.FailFor(c, "image removal not confirmed", errs.ErrNotConfirmed)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if !h.uc.RemoveImage(ctx, id, index) {
		if h.uc.GetProduct(ctx, id) == nil {
			httpx.Fail(c, http.StatusNotFound, "product not found", nil)
			return
		}
		httpx.Fail(c, http.StatusUnprocessableEntity, "could not remove image", nil)
		return
	}
	c.JSON(http.StatusOK, h.uc.GetProduct(ctx, id))
}
