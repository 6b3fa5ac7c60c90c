package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fekuna/boutique-catalog-service/internal/httpx"
	"github.com/fekuna/boutique-catalog-service/internal/setting"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingHandler struct {
	uc     setting.UseCase
	logger logger.ZapLogger
}

func NewSettingHandler(uc setting.UseCase, log logger.ZapLogger) *SettingHandler {
	return &SettingHandler{uc: uc, logger: log}
}

// RegisterPublic exposes the cached snapshot used by the storefront pages.
func (h *SettingHandler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Snapshot)
	rg.GET("/settings/:key", h.Get)
}

func (h *SettingHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/settings", h.List)
	rg.PUT("/settings/:key", h.Update)
	rg.POST("/settings/cache/invalidate", h.Invalidate)
}

func (h *SettingHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.uc.GetSettings(c.Request.Context()))
}

func (h *SettingHandler) Get(c *gin.Context) {
	raw, ok := h.uc.GetSettingByKey(c.Request.Context(), c.Param("key"))
	if !ok {
		httpx.Fail(c, http.StatusNotFound, "setting not found", nil)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (h *SettingHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.uc.ListSettings(c.Request.Context())})
}

type updateSettingRequest struct {
	Value       json.RawMessage `json:"value" binding:"required"`
	Description *string         `json:"description"`
}

func (h *SettingHandler) Update(c *gin.Context) {
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	key := c.Param("key")
	if !setting.IsKnownKey(key) {
		h.logger.Info("storing unknown setting key", zap.String("key", key))
	}
	if err := h.uc.UpdateSetting(c.Request.Context(), key, req.Value, req.Description); err != nil {
		httpx.FailFor(c, "could not update setting", err)
		return
	}

	raw, _ := h.uc.GetSettingByKey(c.Request.Context(), key)
	c.JSON(http.StatusOK, gin.H{"key": key, "value": raw})
}

func (h *SettingHandler) Invalidate(c *gin.Context) {
	h.uc.InvalidateCache()
	c.Status(http.StatusNoContent)
}
