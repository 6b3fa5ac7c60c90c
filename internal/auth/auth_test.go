package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestTokens_IssueVerify(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, exp, err := tokens.Issue("admin@boutique.sn")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	admin, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, Admin{Email: "admin@boutique.sn", Role: RoleAdmin}, admin)

	_, err = NewTokens("other", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issued }
	raw, _, err := tokens.Issue("admin@boutique.sn")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokens_RejectsOtherRoles(t *testing.T) {
	claims := Claims{
		Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "someone@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestAuthenticator_Login(t *testing.T) {
	a := NewAuthenticator(" Admin@Boutique.sn ", testHash(t, "s3cret"), NewTokens("secret", time.Hour))
	require.True(t, a.Enabled())

	raw, _, err := a.Login("admin@boutique.sn", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	_, _, err = a.Login("admin@boutique.sn", "wrong")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	_, _, err = a.Login("intruder@boutique.sn", "s3cret")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	disabled := NewAuthenticator("", "", NewTokens("secret", time.Hour))
	assert.False(t, disabled.Enabled())
	_, _, err = disabled.Login("", "")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pass")))
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokens("secret", time.Hour)

	r := gin.New()
	r.GET("/admin/ping", RequireAdmin(tokens, logger.NewNop()), func(c *gin.Context) {
		fromCtx, ok := AdminFromContext(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, fromCtx.Email)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	raw, _, err := tokens.Issue("admin@boutique.sn")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@boutique.sn", w.Body.String())
}
