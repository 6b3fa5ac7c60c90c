package handler

import (
	"net/http"

	"github.com/fekuna/boutique-catalog-service/internal/auth"
	"github.com/fekuna/boutique-catalog-service/internal/httpx"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authenticator *auth.Authenticator
	logger        logger.ZapLogger
}

func NewAuthHandler(a *auth.Authenticator, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{authenticator: a, logger: log}
}

// Register mounts the routes that must stay reachable without a token.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// RegisterProtected mounts the routes served behind RequireAdmin.
func (h *AuthHandler) RegisterProtected(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token, expires, err := h.authenticator.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("admin login failed", zap.String("email", req.Email), zap.String("client_ip", c.ClientIP()))
		httpx.Fail(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"tokenType": "Bearer",
		"expiresAt": expires,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	admin, ok := auth.AdminFromGin(c)
	if !ok {
		httpx.Fail(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": admin.Email, "role": admin.Role})
}
