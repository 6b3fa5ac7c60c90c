package auth

import (
	"net/http"
	"strings"

	"github.com/fekuna/boutique-catalog-service/internal/httpx"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAdmin rejects requests without a valid bearer token.
func RequireAdmin(tokens *Tokens, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			httpx.Fail(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}

		admin, err := tokens.Verify(raw)
		if err != nil {
			log.Warn("rejected admin token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			httpx.Fail(c, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		c.Set(ginKey, admin)
		c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), admin))
		c.Next()
	}
}
