// Package httpx holds the gin helpers shared by the HTTP handlers.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/gin-gonic/gin"
)

// Fail writes {"message": msg, "error": err} with status.
func Fail(c *gin.Context, status int, msg string, err error) {
	body := gin.H{"message": msg}
	if err != nil {
		body["error"] = err.Error()
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, body)
}

// FailFor maps the catalog sentinel errors to a status code.
func FailFor(c *gin.Context, msg string, err error) {
	var verr *errs.ValidationError
	switch {
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msg, "error": err.Error(), "fields": verr.Fields})
	case errors.Is(err, errs.ErrValidation):
		Fail(c, http.StatusBadRequest, msg, err)
	case errors.Is(err, errs.ErrNotFound):
		Fail(c, http.StatusNotFound, msg, err)
	case errors.Is(err, errs.ErrNotConfirmed):
		Fail(c, http.StatusPreconditionRequired, msg, err)
	case errors.Is(err, errs.ErrInvalidTransition):
		Fail(c, http.StatusConflict, msg, err)
	case errors.Is(err, errs.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, msg, err)
	default:
		Fail(c, http.StatusInternalServerError, msg, err)
	}
}

// Confirmed reports whether the request carries ?confirm=true.
func Confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

// Page reads ?page= and ?limit=. Missing or invalid values give page 1 and
// defaultLimit; limit is capped at 100.
func Page(c *gin.Context, defaultLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// OptionalBool parses a query flag; absent or invalid means nil.
func OptionalBool(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
