package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFailFor(t *testing.T) {
	gin.SetMode(gin.TestMode)

	transition := fmt.Errorf("%w: from submitting", errs.ErrInvalidTransition)
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: (&errs.ValidationError{}).Add("name", "is required"), status: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("product p1: %w", errs.ErrNotFound), status: http.StatusNotFound},
		{name: "not confirmed", err: errs.ErrNotConfirmed, status: http.StatusPreconditionRequired},
		{name: "transition", err: transition, status: http.StatusConflict},
		{name: "joined form steps", err: errors.Join(nil, transition, nil), status: http.StatusConflict},
		{name: "unauthorized", err: errs.ErrUnauthorized, status: http.StatusUnauthorized},
		{name: "anything else", err: errors.New("disk full"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			FailFor(c, "could not save", tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "could not save")
			assert.True(t, c.IsAborted())
		})
	}
}

func TestPage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query       string
		page, limit int
	}{
		{query: "", page: 1, limit: 12},
		{query: "?page=3&limit=5", page: 3, limit: 5},
		{query: "?page=-2&limit=0", page: 1, limit: 12},
		{query: "?page=abc&limit=500", page: 1, limit: 100},
		{query: "?page=99999999999999999999999", page: 1, limit: 12},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			page, limit := Page(c, 12)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.limit, limit)
		})
	}
}
