package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "boutique-catalog"

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 admin tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(email string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses raw and returns the admin it names. Every failure wraps
// errs.ErrUnauthorized.
func (t *Tokens) Verify(raw string) (Admin, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Admin{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}
	if claims.Role != RoleAdmin {
		return Admin{}, fmt.Errorf("%w: role %q", errs.ErrUnauthorized, claims.Role)
	}
	return Admin{Email: claims.Subject, Role: claims.Role}, nil
}

var errBadCredentials = errors.New("invalid email or password")
