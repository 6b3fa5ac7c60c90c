package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

const RoleAdmin = "admin"

type ctxKey struct{}

// ginKey is where RequireAdmin stores the caller on the gin context.
const ginKey = "admin"

// Admin identifies the authenticated back-office user.
type Admin struct {
	Email string
	Role  string
}

func WithAdmin(ctx context.Context, a Admin) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// AdminFromContext returns the caller set by RequireAdmin.
func AdminFromContext(ctx context.Context) (Admin, bool) {
	a, ok := ctx.Value(ctxKey{}).(Admin)
	return a, ok
}

// AdminFromGin reads the caller from a gin context.
func AdminFromGin(c *gin.Context) (Admin, bool) {
	v, ok := c.Get(ginKey)
	if !ok {
		return Admin{}, false
	}
	a, ok := v.(Admin)
	return a, ok
}
