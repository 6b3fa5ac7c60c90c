package handler

import (
	"net/http"

	"github.com/fekuna/boutique-catalog-service/internal/dashboard"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Stats)
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats(c.Request.Context()))
}
