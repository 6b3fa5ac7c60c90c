package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/errs"
	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks the single configured back-office account.
type Authenticator struct {
	email        string
	passwordHash []byte
	tokens       *Tokens
}

func NewAuthenticator(email, passwordHash string, tokens *Tokens) *Authenticator {
	return &Authenticator{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
	}
}

// Enabled reports whether an account is configured. Without one every login
// fails.
func (a *Authenticator) Enabled() bool {
	return a.email != "" && len(a.passwordHash) > 0
}

// Login returns a signed token for valid credentials.
func (a *Authenticator) Login(email, password string) (string, time.Time, error) {
	if !a.Enabled() {
		return "", time.Time{}, fmt.Errorf("%w: no admin account configured", errs.ErrUnauthorized)
	}
	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(a.email)) == 1
	// Always run bcrypt so a wrong email costs as much as a wrong password.
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		return "", time.Time{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, errBadCredentials)
	}
	return a.tokens.Issue(a.email)
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
