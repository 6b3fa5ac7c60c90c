package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/boutique-catalog-service/internal/category"
	"github.com/fekuna/boutique-catalog-service/internal/category/dto"
	"github.com/fekuna/boutique-catalog-service/internal/httpx"
	"github.com/fekuna/boutique-catalog-service/internal/query"
	"github.com/fekuna/boutique-catalog-service/internal/workflow"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc       category.UseCase
	uploader workflow.ImageUploader
	pageSize int
	logger   logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, uploader workflow.ImageUploader, pageSize int, log logger.ZapLogger) *CategoryHandler {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &CategoryHandler{uc: uc, uploader: uploader, pageSize: pageSize, logger: log}
}

// RegisterPublic mounts the read-only routes.
func (h *CategoryHandler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListAll)
}

// RegisterAdmin mounts the CRUD routes; rg is expected to be behind the
// admin auth middleware.
func (h *CategoryHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.GET("/categories/:id", h.Get)
	rg.PATCH("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func (h *CategoryHandler) ListAll(c *gin.Context) {
	categories, total := h.uc.ListCategories(c.Request.Context(), nil)
	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": total})
}

func (h *CategoryHandler) List(c *gin.Context) {
	page, limit := httpx.Page(c, h.pageSize)
	categories, total := h.uc.ListCategories(c.Request.Context(), &dto.CategoryFilters{
		SearchTerm: c.Query("search"),
		Page:       page,
		Limit:      limit,
	})
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": query.TotalPages(total, limit),
	})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat := h.uc.GetCategory(c.Request.Context(), c.Param("id"))
	if cat == nil {
		httpx.Fail(c, http.StatusNotFound, "category not found", nil)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form := workflow.NewCategoryForm(h.uc, h.uploader)
	steps := []error{form.Create(), form.SetName(req.Name)}
	if req.Slug != "" {
		steps = append(steps, form.SetSlug(req.Slug))
	}
	steps = append(steps, form.SetDescription(req.Description), form.SetImageURL(req.Image))
	if err := errors.Join(steps...); err != nil {
		httpx.FailFor(c, "could not create category", err)
		return
	}

	id, err := form.Submit(c.Request.Context())
	if err != nil {
		h.logger.Warn("category create rejected", zap.Error(err))
		httpx.FailFor(c, "could not create category", err)
		return
	}
	c.JSON(http.StatusCreated, h.uc.GetCategory(c.Request.Context(), id))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	existing := h.uc.GetCategory(ctx, c.Param("id"))
	if existing == nil {
		httpx.Fail(c, http.StatusNotFound, "category not found", nil)
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	form := workflow.NewCategoryForm(h.uc, h.uploader)
	steps := []error{form.Edit(existing)}
	if req.Name != nil {
		steps = append(steps, form.SetName(*req.Name))
	}
	if req.Slug != nil {
		steps = append(steps, form.SetSlug(*req.Slug))
	}
	if req.Description != nil {
		steps = append(steps, form.SetDescription(*req.Description))
	}
	if req.Image != nil {
		steps = append(steps, form.SetImageURL(*req.Image))
	}
	if err := errors.Join(steps...); err != nil {
		httpx.FailFor(c, "could not update category", err)
		return
	}

	id, err := form.Submit(ctx)
	if err != nil {
		h.logger.Warn("category update rejected", zap.String("id", existing.ID), zap.Error(err))
		httpx.FailFor(c, "could not update category", err)
		return
	}
	c.JSON(http.StatusOK, h.uc.GetCategory(ctx, id))
}

// Delete needs ?confirm=true. Products keep their category slug.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	del := workflow.NewCategoryForm(h.uc, h.uploader).RequestDelete(id)
	if httpx.Confirmed(c) {
		del.Confirm()
	}
	if err := del.Execute(c.Request.Context()); err != nil {
		httpx.FailFor(c, "could not delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}
